// Package orchestrator runs a mirroring session against the remote device.
//
// A session has two tasks that share one cancellable context:
//
//   - The display task subscribes to render events and draws every valid
//     frame, in the order the server sent them.
//   - The keyboard task reads local keys and dispatches keypad presses.
//
// Whichever task finishes first decides the session's Outcome. The other
// task is cancelled and given a bounded grace period, then the link to the
// device is closed. A keyboard task blocked on a read is abandoned rather
// than waited for.
//
// Before the tasks start the session can announce itself by dispatching a
// NotificationsAdd action, and the renderer prepares the screen.
//
// # Usage Example
//
//	s := orchestrator.New(orchestrator.Config{
//	    Link:     link,
//	    Renderer: renderer,
//	    Keyboard: &keyboard.Loop{In: tty, Router: router},
//	})
//	res := s.Run(ctx)
//	fmt.Println(res.Outcome.Message())
//
// # Outcomes
//
// Events whose pixel data does not match their rectangle are logged and
// skipped; they never end the session. Transport errors on the
// subscription end it with OutcomeStreamEnded, and cancellation of the
// parent context (SIGINT, SIGTERM) ends it with OutcomeInterrupted.
package orchestrator
