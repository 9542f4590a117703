// Package keyboard forwards local keypresses to the device as keypad
// presses.
package keyboard

import (
	"context"
	"errors"
	"fmt"
	"io"

	"uboterm/internal/terminal"
	"uboterm/pkg/logging"
)

// ErrQuit is returned by Loop.Run when the quit sequence was typed.
var ErrQuit = errors.New("quit requested")

// Input is where the loop reads keys from.
type Input interface {
	io.Reader
	Acquire(mode terminal.Mode, policy terminal.RestorePolicy) (terminal.Restore, error)
}

// Loop reads input in a worker goroutine and feeds it to a Router. The
// blocking read never runs on the loop itself, so cancellation is observed
// immediately; a worker stuck in a read is abandoned.
type Loop struct {
	In     Input
	Router *Router
}

// Run puts the input into cbreak mode and routes keys until the quit
// sequence (ErrQuit), end of input (io.EOF), a dispatch error, or ctx is
// done. The terminal mode is restored on every return.
func (l *Loop) Run(ctx context.Context) error {
	restore, err := l.In.Acquire(terminal.CBreak, terminal.RestoreDrain)
	if err != nil {
		logging.Warn("Keyboard", "Cannot switch input to cbreak mode, reading it as is: %v", err)
		restore = func() error { return nil }
	}
	defer func() {
		if err := restore(); err != nil {
			logging.Warn("Keyboard", "Failed to restore terminal mode: %v", err)
		}
	}()

	stop := make(chan struct{})
	defer close(stop)

	results := make(chan readResult, 16)
	go readLoop(l.In, results, stop)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case res := <-results:
			if res.err != nil {
				if errors.Is(res.err, io.EOF) {
					logging.Debug("Keyboard", "Input closed")
					return io.EOF
				}
				return fmt.Errorf("read input: %w", res.err)
			}
			for _, b := range res.data {
				quit, err := l.Router.Feed(ctx, b)
				if err != nil {
					return err
				}
				if quit {
					logging.Debug("Keyboard", "Quit sequence typed")
					return ErrQuit
				}
			}
		}
	}
}

// readResult carries either a chunk of input or the error that ended it.
type readResult struct {
	data []byte
	err  error
}

func readLoop(r io.Reader, results chan<- readResult, stop <-chan struct{}) {
	buf := make([]byte, 64)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			data := make([]byte, n)
			copy(data, buf[:n])
			select {
			case results <- readResult{data: data}:
			case <-stop:
				return
			}
		}
		if err != nil {
			select {
			case results <- readResult{err: err}:
			case <-stop:
			}
			return
		}
	}
}
