package app

import (
	"uboterm/internal/config"
)

// Config holds the application configuration
type Config struct {
	// Path of an explicit config file layered over the user and project files
	ConfigPath string

	// Debug settings
	Debug bool

	// Command line overrides; zero values keep the loaded settings
	Host       string
	Port       int
	Protocol   string
	LogFile    string
	NoAnnounce bool
	Compressed bool

	// Loaded configuration, set by NewApplication
	Uboterm *config.UbotermConfig
}

// NewConfig creates a new application configuration
func NewConfig(configPath string, debug bool) *Config {
	return &Config{
		ConfigPath: configPath,
		Debug:      debug,
	}
}

// applyFlags layers the command line overrides onto the loaded settings.
func (c *Config) applyFlags(uc *config.UbotermConfig) {
	if c.Host != "" {
		uc.Server.Host = c.Host
	}
	if c.Port != 0 {
		uc.Server.Port = c.Port
	}
	if c.Protocol != "" {
		uc.Display.Protocol = c.Protocol
	}
	if c.LogFile != "" {
		uc.Logging.File = c.LogFile
	}
	if c.Debug {
		uc.Logging.Level = "debug"
	}
	if c.NoAnnounce {
		off := false
		uc.Session.Announce = &off
	}
	if c.Compressed {
		on := true
		uc.Display.CompressedEvents = &on
	}
}
