package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"

	"uboterm/internal/color"
	"uboterm/internal/keyboard"
	"uboterm/internal/orchestrator"
	"uboterm/internal/render"
	"uboterm/internal/storepb"
	"uboterm/internal/terminal"
	"uboterm/pkg/logging"
)

// imageLines is how far the cursor moves down past a drawn frame before the
// closing message.
const imageLines = 9

// Run mirrors the device display and forwards keys until the session ends.
// It prints one line saying why. Only a failed session returns an error.
func (a *Application) Run(ctx context.Context) error {
	closeLog, err := a.sessionLogging()
	if err != nil {
		return err
	}
	defer closeLog()

	link, err := a.connect()
	if err != nil {
		return err
	}

	display := a.settings.Display
	forced, _ := terminal.ParseProtocol(display.Protocol)
	protocol := terminal.Detect(ctx, a.console, terminal.DetectOptions{
		Forced:      forced,
		TermProgram: display.TermProgram,
		Timeout:     display.ProbeTimeout,
	})

	renderer, err := render.New(protocol, a.out, display.DumpFile, render.DumpCompression(display.DumpCompression))
	if err != nil {
		_ = link.Close()
		return fmt.Errorf("failed to prepare %s output: %w", protocol, err)
	}

	var filter storepb.Event = &storepb.DisplayRender{}
	if display.UseCompressedEvents() {
		filter = &storepb.DisplayCompressedRender{}
	}

	kb := a.settings.Keyboard
	session := orchestrator.New(orchestrator.Config{
		Link:     link,
		Renderer: renderer,
		Keyboard: &keyboard.Loop{
			In:     a.console,
			Router: keyboard.NewRouter(kb.KeyTable(), kb.Quit, link),
		},
		Filter:       filter,
		Announcement: a.announcement(),
	})

	res := session.Run(ctx)
	a.report(protocol, res)

	if res.Outcome == orchestrator.OutcomeFailed {
		return fmt.Errorf("session failed: %w", res.Err)
	}
	return nil
}

// sessionLogging sends logs to the configured file while frames are being
// drawn, or discards them.
func (a *Application) sessionLogging() (func(), error) {
	level, _ := logging.ParseLevel(a.settings.Logging.Level)
	path := a.settings.Logging.File
	if path == "" {
		logging.InitForSession(level, nil)
		return func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	logging.InitForSession(level, f)
	return func() {
		logging.InitForCLI(level, os.Stderr)
		_ = f.Close()
	}, nil
}

// announcement builds the notification shown on the device when the session
// starts. Its action button sends the device home.
func (a *Application) announcement() *storepb.Notification {
	s := a.settings.Session
	if !s.AnnounceEnabled() {
		return nil
	}
	return &storepb.Notification{
		ID:      uuid.NewString(),
		Title:   s.Title,
		Content: s.Content,
		Actions: []storepb.NotificationAction{
			{
				Label:           "custom action",
				Color:           "#ff0000",
				BackgroundColor: "#00ff00",
				Icon:            "\U000f0463",
				Operation:       &storepb.KeypadKeyPress{Key: storepb.KeyHome},
			},
		},
	}
}

func (a *Application) report(protocol terminal.Protocol, res orchestrator.Result) {
	if res.Err != nil {
		logging.Warn("Session", "Session ended with error: %v", res.Err)
	}

	var pad string
	if protocol == terminal.ProtocolKitty || protocol == terminal.ProtocolITerm2 {
		pad = strings.Repeat("\n", imageLines)
	}

	msg := res.Outcome.Message()
	if res.Rejected > 0 {
		msg += fmt.Sprintf(" %d invalid frames skipped.", res.Rejected)
	}
	switch res.Outcome {
	case orchestrator.OutcomeQuit, orchestrator.OutcomeInputClosed:
		msg = color.Ok(msg)
	case orchestrator.OutcomeStreamEnded, orchestrator.OutcomeInterrupted:
		msg = color.Warn(msg)
	default:
		msg = color.Fail(msg)
	}
	_, _ = io.WriteString(a.out, pad+msg+"\n")
}
