package keyboard

import (
	"errors"
	"fmt"
	"sort"

	"uboterm/internal/storepb"
)

// DefaultQuit ends the session when typed.
const DefaultQuit = "q"

// Binding maps an input sequence to a keypad key.
type Binding struct {
	Sequence string
	Key      storepb.KeyCode
}

// Table is an ordered set of bindings.
type Table []Binding

// DefaultTable returns the built-in bindings: digits for the side keys,
// backspace for home, and both arrow keys and vi keys for navigation.
func DefaultTable() Table {
	return Table{
		{Sequence: "1", Key: storepb.KeyL1},
		{Sequence: "2", Key: storepb.KeyL2},
		{Sequence: "3", Key: storepb.KeyL3},
		{Sequence: "\x7f", Key: storepb.KeyHome},
		{Sequence: "\x1b[D", Key: storepb.KeyBack},
		{Sequence: "h", Key: storepb.KeyBack},
		{Sequence: "\x1b[A", Key: storepb.KeyUp},
		{Sequence: "k", Key: storepb.KeyUp},
		{Sequence: "\x1b[B", Key: storepb.KeyDown},
		{Sequence: "j", Key: storepb.KeyDown},
	}
}

// Validate rejects empty sequences and unset keys.
func (t Table) Validate() error {
	var errs []error
	for i, b := range t {
		if b.Sequence == "" {
			errs = append(errs, fmt.Errorf("binding %d: empty sequence", i))
		}
		if b.Key == storepb.KeyUnspecified {
			errs = append(errs, fmt.Errorf("binding %d (%q): no key", i, b.Sequence))
		}
	}
	return errors.Join(errs...)
}

// byLength returns a copy of t ordered by ascending sequence length. Equal
// lengths keep their table order.
func (t Table) byLength() Table {
	out := make(Table, len(t))
	copy(out, t)
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i].Sequence) < len(out[j].Sequence)
	})
	return out
}

func (t Table) longest() int {
	n := 0
	for _, b := range t {
		n = max(n, len(b.Sequence))
	}
	return n
}

// With returns a copy of t with overrides applied. An override whose
// sequence is already bound replaces that binding in place; new sequences
// are appended.
func (t Table) With(overrides ...Binding) Table {
	out := make(Table, len(t), len(t)+len(overrides))
	copy(out, t)
	for _, o := range overrides {
		replaced := false
		for i := range out {
			if out[i].Sequence == o.Sequence {
				out[i].Key = o.Key
				replaced = true
			}
		}
		if !replaced {
			out = append(out, o)
		}
	}
	return out
}
