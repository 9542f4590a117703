package terminal

import "errors"

// ErrUnsupported is returned by Acquire on platforms without termios.
var ErrUnsupported = errors.New("terminal modes are not supported on this platform")

// Mode is a set of changes applied to a terminal by Acquire.
type Mode uint8

const (
	// CBreak turns off line buffering and echo; input arrives byte by byte.
	CBreak Mode = 1 << iota
	// NonBlocking sets O_NONBLOCK on the descriptor.
	NonBlocking
)

func (m Mode) String() string {
	switch m {
	case 0:
		return "none"
	case CBreak:
		return "cbreak"
	case NonBlocking:
		return "nonblocking"
	case CBreak | NonBlocking:
		return "cbreak+nonblocking"
	default:
		return "unknown"
	}
}

// RestorePolicy selects how pending I/O is handled when the saved terminal
// attributes are put back.
type RestorePolicy int

const (
	// RestoreNow applies the saved attributes immediately.
	RestoreNow RestorePolicy = iota
	// RestoreDrain waits for queued output to be written first.
	RestoreDrain
	// RestoreFlush waits for output and discards unread input, dropping any
	// late replies to terminal queries.
	RestoreFlush
)

// Restore puts the terminal back into the state captured by Acquire. It is
// safe to call more than once; only the first call has an effect.
type Restore func() error
