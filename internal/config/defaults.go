package config

import (
	"time"

	"uboterm/internal/keyboard"
	"uboterm/internal/render"
	"uboterm/internal/terminal"
)

const (
	DefaultHost     = "127.0.0.1"
	DefaultPort     = 50051
	DefaultDumpFile = "display.raw"
)

// GetDefaultConfig returns the built-in configuration every layer is merged
// onto.
func GetDefaultConfig() UbotermConfig {
	announce := true
	compressed := false
	return UbotermConfig{
		Server: ServerConfig{
			Host:          DefaultHost,
			Port:          DefaultPort,
			Compression:   "none",
			KeepaliveTime: 5 * time.Minute,
			DialTimeout:   10 * time.Second,
		},
		Display: DisplayConfig{
			Protocol:         string(terminal.ProtocolAuto),
			DumpFile:         DefaultDumpFile,
			DumpCompression:  string(render.DumpRaw),
			CompressedEvents: &compressed,
			ProbeTimeout:     terminal.DefaultProbeTimeout,
		},
		Keyboard: KeyboardConfig{
			Quit: keyboard.DefaultQuit,
		},
		Session: SessionConfig{
			Announce: &announce,
			Title:    "Hello",
			Content:  "uboterm client connected.",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
