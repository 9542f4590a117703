package terminal

import (
	"io"
	"os"
	"time"

	"golang.org/x/term"
)

// Console is the local terminal as seen by the probe and the keyboard loop.
type Console interface {
	io.ReadWriter
	// Acquire applies mode until the returned Restore is called.
	Acquire(mode Mode, policy RestorePolicy) (Restore, error)
	// WaitReadable blocks until input is available or timeout elapses.
	WaitReadable(timeout time.Duration) (bool, error)
	// IsTerminal reports whether input is attached to a terminal.
	IsTerminal() bool
}

// TTY is a Console reading from a terminal file and writing to out.
type TTY struct {
	fd  int
	out io.Writer
}

// NewTTY wraps in (normally os.Stdin) and out (normally os.Stdout).
func NewTTY(in *os.File, out io.Writer) *TTY {
	return &TTY{fd: int(in.Fd()), out: out}
}

func (t *TTY) Acquire(mode Mode, policy RestorePolicy) (Restore, error) {
	return Acquire(t.fd, mode, policy)
}

func (t *TTY) WaitReadable(timeout time.Duration) (bool, error) {
	return waitReadable(t.fd, timeout)
}

// Read reads directly from the descriptor, bypassing the runtime poller, so
// it honours whatever blocking mode Acquire put the descriptor into.
func (t *TTY) Read(p []byte) (int, error) {
	n, err := readFd(t.fd, p)
	if n == 0 && err == nil && len(p) > 0 {
		return 0, io.EOF
	}
	return n, err
}

func (t *TTY) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

func (t *TTY) IsTerminal() bool {
	return term.IsTerminal(t.fd)
}
