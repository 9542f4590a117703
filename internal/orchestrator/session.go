package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"uboterm/internal/keyboard"
	"uboterm/internal/remote"
	"uboterm/internal/render"
	"uboterm/internal/storepb"
	"uboterm/pkg/logging"
)

// DefaultShutdownTimeout bounds how long Run waits for the losing task.
const DefaultShutdownTimeout = 5 * time.Second

// ErrStreamTerminated wraps transport errors that ended the subscription.
var ErrStreamTerminated = errors.New("event stream terminated")

// Outcome tells why a session ended.
type Outcome int

const (
	OutcomeQuit         Outcome = iota // The quit sequence was typed
	OutcomeInputClosed                 // Keyboard input reached end of file
	OutcomeStreamEnded                 // The server ended or broke the subscription
	OutcomeInterrupted                 // The parent context was cancelled, e.g. by SIGINT
	OutcomeFailed                      // A dispatch, subscribe or render step failed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeQuit:
		return "quit"
	case OutcomeInputClosed:
		return "input-closed"
	case OutcomeStreamEnded:
		return "stream-ended"
	case OutcomeInterrupted:
		return "interrupted"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Message is the single line shown to the user when the session ends.
func (o Outcome) Message() string {
	switch o {
	case OutcomeQuit:
		return "Bye."
	case OutcomeInputClosed:
		return "Input closed."
	case OutcomeStreamEnded:
		return "Stream terminated."
	case OutcomeInterrupted:
		return "Interrupted."
	default:
		return "Session failed."
	}
}

// Keyboard forwards keys until it returns.
type Keyboard interface {
	Run(ctx context.Context) error
}

// Config holds what a session needs. Link and Renderer are required.
type Config struct {
	Link     remote.Link
	Renderer render.Renderer
	Keyboard Keyboard // Optional; nil mirrors the display without forwarding keys

	Filter          storepb.Event         // Events to subscribe to (default: DisplayRender)
	Announcement    *storepb.Notification // Optional notification sent before the session starts
	ShutdownTimeout time.Duration         // How long to wait for the losing task (default: 5s)
}

// Result summarizes a finished session.
type Result struct {
	Outcome  Outcome
	Err      error // Set for OutcomeFailed and for broken streams
	Frames   int64 // Frames rendered
	Rejected int64 // Events dropped because they carried no valid frame
}

// Session runs the keyboard and display tasks against one link.
type Session struct {
	link     remote.Link
	renderer render.Renderer
	keyboard Keyboard
	filter   storepb.Event
	announce *storepb.Notification
	timeout  time.Duration

	frames   atomic.Int64
	rejected atomic.Int64
}

// New creates a session. It does not touch the link until Run.
func New(cfg Config) *Session {
	s := &Session{
		link:     cfg.Link,
		renderer: cfg.Renderer,
		keyboard: cfg.Keyboard,
		filter:   cfg.Filter,
		announce: cfg.Announcement,
		timeout:  cfg.ShutdownTimeout,
	}
	if s.filter == nil {
		s.filter = &storepb.DisplayRender{}
	}
	if s.timeout <= 0 {
		s.timeout = DefaultShutdownTimeout
	}
	return s
}

const (
	taskKeyboard = "keyboard"
	taskDisplay  = "display"
)

type taskResult struct {
	task string
	err  error
}

// Run announces the client, then runs the keyboard loop and the display
// loop concurrently. Whichever finishes first ends the session: the other
// is cancelled, given up to the shutdown timeout to return, and the link is
// closed in every case.
func (s *Session) Run(ctx context.Context) Result {
	defer func() {
		if err := s.link.Close(); err != nil {
			logging.Warn("Session", "Closing link: %v", err)
		}
	}()

	if s.announce != nil {
		if err := s.link.DispatchAction(ctx, &storepb.NotificationsAdd{Notification: *s.announce}); err != nil {
			return s.result(ctx, taskResult{task: "announce", err: fmt.Errorf("announce client: %w", err)})
		}
		logging.Debug("Session", "Announced client with notification %q", s.announce.Title)
	}

	if err := s.renderer.Begin(); err != nil {
		return s.result(ctx, taskResult{task: taskDisplay, err: fmt.Errorf("prepare display: %w", err)})
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan taskResult, 2)
	running := 1
	go func() {
		results <- taskResult{task: taskDisplay, err: s.displayLoop(runCtx)}
	}()
	if s.keyboard != nil {
		running++
		go func() {
			results <- taskResult{task: taskKeyboard, err: s.keyboard.Run(runCtx)}
		}()
	}

	first := <-results
	running--
	logging.Debug("Session", "Task %s finished first: %v", first.task, first.err)

	cancel()
	if err := s.link.Close(); err != nil {
		logging.Warn("Session", "Closing link: %v", err)
	}

	if running > 0 {
		select {
		case loser := <-results:
			logging.Debug("Session", "Task %s stopped: %v", loser.task, loser.err)
		case <-time.After(s.timeout):
			logging.Warn("Session", "Timeout waiting for the remaining task to stop")
		}
	}

	return s.result(ctx, first)
}

func (s *Session) displayLoop(ctx context.Context) error {
	stream, err := s.link.Subscribe(ctx, s.filter)
	if err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}

	for {
		ev, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			if ctx.Err() != nil && remote.IsCanceled(err) {
				return ctx.Err()
			}
			return fmt.Errorf("%w: %w", ErrStreamTerminated, err)
		}

		frame, err := render.FrameFromEvent(ev)
		if err != nil {
			s.rejected.Add(1)
			logging.Warn("Session", "Rejected %s event: %v", storepb.EventKind(ev), err)
			continue
		}
		if err := s.renderer.Render(frame); err != nil {
			return fmt.Errorf("render frame: %w", err)
		}
		s.frames.Add(1)
	}
}

func (s *Session) result(ctx context.Context, first taskResult) Result {
	r := Result{
		Frames:   s.frames.Load(),
		Rejected: s.rejected.Load(),
	}

	switch {
	case ctx.Err() != nil:
		r.Outcome = OutcomeInterrupted
	case first.task == taskKeyboard && (first.err == nil || errors.Is(first.err, keyboard.ErrQuit)):
		r.Outcome = OutcomeQuit
	case first.task == taskKeyboard && errors.Is(first.err, io.EOF):
		r.Outcome = OutcomeInputClosed
	case first.task == taskDisplay && first.err == nil:
		r.Outcome = OutcomeStreamEnded
	case errors.Is(first.err, ErrStreamTerminated):
		r.Outcome = OutcomeStreamEnded
		r.Err = first.err
	default:
		r.Outcome = OutcomeFailed
		r.Err = first.err
	}

	logging.Info("Session", "Session ended (%s) after %d frames, %d rejected", r.Outcome, r.Frames, r.Rejected)
	return r
}
