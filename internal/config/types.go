package config

import (
	"time"

	"uboterm/internal/storepb"
)

// UbotermConfig is the top-level configuration structure for uboterm.
type UbotermConfig struct {
	Server   ServerConfig   `yaml:"server"`
	Display  DisplayConfig  `yaml:"display"`
	Keyboard KeyboardConfig `yaml:"keyboard"`
	Session  SessionConfig  `yaml:"session"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig describes how to reach the device's store service.
type ServerConfig struct {
	Host          string        `yaml:"host,omitempty"`
	Port          int           `yaml:"port,omitempty"`
	Compression   string        `yaml:"compression,omitempty"`   // "none" or "gzip"
	KeepaliveTime time.Duration `yaml:"keepaliveTime,omitempty"` // 0 disables keepalive pings
	DialTimeout   time.Duration `yaml:"dialTimeout,omitempty"`   // Deadline for one-shot calls (press, notify)
}

// DisplayConfig controls how frames are shown locally.
type DisplayConfig struct {
	Protocol         string        `yaml:"protocol,omitempty"` // auto, kitty, iterm2 or file
	TermProgram      string        `yaml:"termProgram,omitempty"`
	DumpFile         string        `yaml:"dumpFile,omitempty"`
	DumpCompression  string        `yaml:"dumpCompression,omitempty"` // "none" or "zstd"
	CompressedEvents *bool         `yaml:"compressedEvents,omitempty"`
	ProbeTimeout     time.Duration `yaml:"probeTimeout,omitempty"`
}

// KeyboardConfig holds the quit sequence and extra key bindings. Bindings
// are layered over the built-in table by sequence.
type KeyboardConfig struct {
	Quit     string          `yaml:"quit,omitempty"`
	Bindings []BindingConfig `yaml:"bindings,omitempty"`
}

// BindingConfig binds one input sequence to a keypad key, e.g.
//
//	- sequence: "x"
//	  key: HOME
type BindingConfig struct {
	Sequence string          `yaml:"sequence"`
	Key      storepb.KeyCode `yaml:"key"`
}

// SessionConfig describes the notification sent when a session starts.
type SessionConfig struct {
	Announce *bool  `yaml:"announce,omitempty"`
	Title    string `yaml:"title,omitempty"`
	Content  string `yaml:"content,omitempty"`
}

// LoggingConfig controls log verbosity and destination. Without a file,
// session logs are discarded so they never mix with the drawn frames.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty"`
	File  string `yaml:"file,omitempty"`
}

// AnnounceEnabled reports whether a session should announce itself.
func (c SessionConfig) AnnounceEnabled() bool {
	return c.Announce == nil || *c.Announce
}

// UseCompressedEvents reports whether the session subscribes to compressed
// render events.
func (c DisplayConfig) UseCompressedEvents() bool {
	return c.CompressedEvents != nil && *c.CompressedEvents
}
