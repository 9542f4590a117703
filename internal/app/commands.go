package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"uboterm/internal/storepb"
	"uboterm/internal/terminal"
	"uboterm/pkg/logging"
)

// NotifyOptions describes a notification sent with Notify.
type NotifyOptions struct {
	Title   string
	Content string
	Color   string
	Icon    string
	Chime   storepb.Chime
}

// Press dispatches one keypad press per key, in order, and stops at the
// first failure.
func (a *Application) Press(ctx context.Context, keys []storepb.KeyCode) error {
	return a.oneShot(ctx, func(ctx context.Context, d dispatcher) error {
		for _, k := range keys {
			if err := d.DispatchAction(ctx, &storepb.KeypadKeyPress{Key: k}); err != nil {
				return fmt.Errorf("failed to press %s: %w", k, err)
			}
			logging.Debug("Press", "Pressed %s", k)
		}
		return nil
	})
}

// Notify shows a notification on the device and returns its ID.
func (a *Application) Notify(ctx context.Context, opts NotifyOptions) (string, error) {
	if opts.Title == "" && opts.Content == "" {
		return "", fmt.Errorf("notification needs a title or content")
	}
	n := storepb.Notification{
		ID:      uuid.NewString(),
		Title:   opts.Title,
		Content: opts.Content,
		Color:   opts.Color,
		Icon:    opts.Icon,
		Chime:   opts.Chime,
	}
	err := a.oneShot(ctx, func(ctx context.Context, d dispatcher) error {
		if err := d.DispatchAction(ctx, &storepb.NotificationsAdd{Notification: n}); err != nil {
			return fmt.Errorf("failed to add notification: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return n.ID, nil
}

// PlayChime plays one of the device's chimes.
func (a *Application) PlayChime(ctx context.Context, c storepb.Chime) error {
	if c == storepb.ChimeUnspecified {
		return fmt.Errorf("no chime given")
	}
	return a.oneShot(ctx, func(ctx context.Context, d dispatcher) error {
		name := strings.ToLower(c.String())
		if err := d.DispatchAction(ctx, &storepb.AudioPlayChime{Name: name}); err != nil {
			return fmt.Errorf("failed to play chime %s: %w", name, err)
		}
		return nil
	})
}

// Probe reports which protocol a session would draw with.
func (a *Application) Probe(ctx context.Context) terminal.Protocol {
	forced, _ := terminal.ParseProtocol(a.settings.Display.Protocol)
	return terminal.Detect(ctx, a.console, terminal.DetectOptions{
		Forced:      forced,
		TermProgram: a.settings.Display.TermProgram,
		Timeout:     a.settings.Display.ProbeTimeout,
	})
}

type dispatcher interface {
	DispatchAction(ctx context.Context, action storepb.Action) error
}

// oneShot opens a link, runs fn under the configured call deadline and
// closes the link.
func (a *Application) oneShot(ctx context.Context, fn func(context.Context, dispatcher) error) error {
	link, err := a.connect()
	if err != nil {
		return err
	}
	defer func() {
		if err := link.Close(); err != nil {
			logging.Warn("Link", "Closing link: %v", err)
		}
	}()

	if t := a.settings.Server.DialTimeout; t > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t)
		defer cancel()
	}
	return fn(ctx, link)
}
