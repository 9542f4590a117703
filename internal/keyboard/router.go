package keyboard

import (
	"context"
	"strings"

	"uboterm/internal/storepb"
	"uboterm/pkg/logging"
)

// Dispatcher sends actions to the device.
type Dispatcher interface {
	DispatchAction(ctx context.Context, action storepb.Action) error
}

// Router turns a byte stream into key presses. Bytes accumulate in a buffer
// until its tail equals a bound sequence; that binding is dispatched and the
// buffer cleared. Bytes that never complete a sequence are kept, so a
// partial escape sequence can finish on a later byte.
type Router struct {
	table    Table
	quit     string
	dispatch Dispatcher
	keep     int

	buf strings.Builder
}

// NewRouter builds a router over table. An empty quit disables quitting.
func NewRouter(table Table, quit string, d Dispatcher) *Router {
	return &Router{
		table:    table.byLength(),
		quit:     quit,
		dispatch: d,
		keep:     max(table.longest(), len(quit)),
	}
}

// Feed appends b, dispatches the first binding whose sequence ends the
// buffer (shortest first), and reports whether the buffer ends with the quit
// sequence. The quit check looks at the buffer as it was before any match
// cleared it, so a trailing quit always takes effect.
func (r *Router) Feed(ctx context.Context, b byte) (quit bool, err error) {
	r.buf.WriteByte(b)
	pending := r.buf.String()
	quit = r.quit != "" && strings.HasSuffix(pending, r.quit)

	for _, binding := range r.table {
		if !strings.HasSuffix(pending, binding.Sequence) {
			continue
		}
		r.buf.Reset()
		logging.Debug("Keyboard", "Sequence %q -> %s", binding.Sequence, binding.Key)
		return quit, r.dispatch.DispatchAction(ctx, &storepb.KeypadKeyPress{Key: binding.Key, Time: 0})
	}

	if quit {
		r.buf.Reset()
		return true, nil
	}

	// Only the tail can still complete a sequence.
	if r.keep > 0 && len(pending) > r.keep {
		r.buf.Reset()
		r.buf.WriteString(pending[len(pending)-r.keep:])
	}
	return false, nil
}

// Pending returns the bytes waiting to complete a sequence.
func (r *Router) Pending() string {
	return r.buf.String()
}
