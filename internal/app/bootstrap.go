package app

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"uboterm/internal/color"
	"uboterm/internal/config"
	"uboterm/internal/remote"
	"uboterm/internal/terminal"
	"uboterm/pkg/logging"
)

// hasDarkBackground queries the terminal for its background color.
var hasDarkBackground = lipgloss.HasDarkBackground

// Application is the main application structure that bootstraps and runs uboterm
type Application struct {
	config   *Config
	settings config.UbotermConfig

	console terminal.Console
	out     io.Writer
	dial    func(remote.Options) (remote.Link, error)
}

// NewApplication loads the layered configuration, applies the command line
// overrides and prepares CLI logging.
func NewApplication(cfg *Config) (*Application, error) {
	// Configure logging based on debug flag until the settings are known
	appLogLevel := logging.LevelInfo
	if cfg.Debug {
		appLogLevel = logging.LevelDebug
	}
	logging.InitForCLI(appLogLevel, os.Stderr)

	settings, err := config.LoadConfig(cfg.ConfigPath)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to load uboterm configuration")
		return nil, fmt.Errorf("failed to load uboterm configuration: %w", err)
	}

	cfg.applyFlags(&settings)
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid command line options: %w", err)
	}
	cfg.Uboterm = &settings

	level, _ := logging.ParseLevel(settings.Logging.Level)
	logging.InitForCLI(level, os.Stderr)
	logging.Debug("Bootstrap", "Loaded configuration, server %s:%d", settings.Server.Host, settings.Server.Port)

	color.Initialize(hasDarkBackground())

	return &Application{
		config:   cfg,
		settings: settings,
		console:  terminal.NewTTY(os.Stdin, os.Stdout),
		out:      os.Stdout,
		dial:     dialLink,
	}, nil
}

// Settings returns the effective configuration.
func (a *Application) Settings() config.UbotermConfig {
	return a.settings
}

func dialLink(opts remote.Options) (remote.Link, error) {
	return remote.Dial(opts)
}

func (a *Application) linkOptions() remote.Options {
	return remote.Options{
		Host:          a.settings.Server.Host,
		Port:          a.settings.Server.Port,
		Compression:   a.settings.Server.Compression,
		KeepaliveTime: a.settings.Server.KeepaliveTime,
	}
}

func (a *Application) connect() (remote.Link, error) {
	opts := a.linkOptions()
	link, err := a.dial(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", opts.Target(), err)
	}
	return link, nil
}
