package config

import (
	"errors"
	"fmt"

	"uboterm/internal/keyboard"
	"uboterm/internal/render"
	"uboterm/internal/storepb"
	"uboterm/internal/terminal"
	"uboterm/pkg/logging"
)

// ErrInvalidConfig is wrapped by every Validate error.
var ErrInvalidConfig = errors.New("invalid config")

// Validate reports every problem with c at once.
func (c UbotermConfig) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if c.Server.Host == "" {
		add("server.host is empty")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		add("server.port %d out of range", c.Server.Port)
	}
	switch c.Server.Compression {
	case "", "none", "gzip":
	default:
		add("server.compression %q (want none or gzip)", c.Server.Compression)
	}
	if c.Server.KeepaliveTime < 0 || c.Server.DialTimeout < 0 {
		add("server timeouts must not be negative")
	}

	if _, err := terminal.ParseProtocol(c.Display.Protocol); err != nil {
		add("display.protocol: %v", err)
	}
	switch render.DumpCompression(c.Display.DumpCompression) {
	case "", render.DumpRaw, render.DumpZstd:
	default:
		add("display.dumpCompression %q (want none or zstd)", c.Display.DumpCompression)
	}
	if c.Display.ProbeTimeout < 0 {
		add("display.probeTimeout must not be negative")
	}

	for i, b := range c.Keyboard.Bindings {
		if b.Sequence == "" {
			add("keyboard.bindings[%d]: empty sequence", i)
		}
		if b.Key == storepb.KeyUnspecified {
			add("keyboard.bindings[%d] (%q): no key", i, b.Sequence)
		}
	}
	if c.Keyboard.Quit != "" {
		for _, b := range c.Keyboard.KeyTable() {
			if b.Sequence == c.Keyboard.Quit {
				add("keyboard.quit: %q is also bound to %s and cannot be the quit sequence", b.Sequence, b.Key)
			}
		}
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		add("logging.level: %v", err)
	}

	return errors.Join(errs...)
}

// KeyTable returns the built-in key table with the configured bindings
// layered on top.
func (c KeyboardConfig) KeyTable() keyboard.Table {
	overrides := make([]keyboard.Binding, 0, len(c.Bindings))
	for _, b := range c.Bindings {
		overrides = append(overrides, keyboard.Binding{Sequence: b.Sequence, Key: b.Key})
	}
	return keyboard.DefaultTable().With(overrides...)
}
