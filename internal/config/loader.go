package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd

const (
	userConfigDir    = ".config/uboterm"
	projectConfigDir = ".uboterm"
	configFileName   = "config.yaml"
)

// EnvOverrides are the environment variables that take precedence over
// every configuration file.
type EnvOverrides struct {
	Host        string `env:"GRPC_HOST"`
	Port        int    `env:"GRPC_PORT"`
	TermProgram string `env:"TERM_PROGRAM"`
	LogLevel    string `env:"UBOTERM_LOG_LEVEL"`
	Protocol    string `env:"UBOTERM_PROTOCOL"`
}

// LoadConfig loads the uboterm configuration by layering default, user,
// project and explicit file settings, then the environment. explicitPath is
// optional, but when given the file must exist.
func LoadConfig(explicitPath string) (UbotermConfig, error) {
	// 1. Start with the default configuration
	config := GetDefaultConfig()

	// 2. User and project files are optional
	for _, layer := range []struct {
		name string
		path func() (string, error)
	}{
		{name: "user", path: getUserConfigPath},
		{name: "project", path: getProjectConfigPath},
	} {
		path, err := layer.path()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Could not determine %s config path: %v\n", layer.name, err)
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		fileConfig, err := loadConfigFromFile(path)
		if err != nil {
			return UbotermConfig{}, fmt.Errorf("error loading %s config from %s: %w", layer.name, path, err)
		}
		config = mergeConfigs(config, fileConfig)
	}

	// 3. An explicit file must exist
	if explicitPath != "" {
		fileConfig, err := loadConfigFromFile(explicitPath)
		if err != nil {
			return UbotermConfig{}, fmt.Errorf("error loading config from %s: %w", explicitPath, err)
		}
		config = mergeConfigs(config, fileConfig)
	}

	// 4. Environment
	overrides, err := env.ParseAs[EnvOverrides]()
	if err != nil {
		return UbotermConfig{}, fmt.Errorf("failed to parse environment overrides: %w", err)
	}
	config = applyEnv(config, overrides)

	if err := config.Validate(); err != nil {
		return UbotermConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

func loadConfigFromFile(filePath string) (UbotermConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return UbotermConfig{}, fmt.Errorf("failed to read config file %s: %w", filePath, err)
	}

	var config UbotermConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return UbotermConfig{}, fmt.Errorf("failed to unmarshal YAML from %s: %w", filePath, err)
	}
	return config, nil
}

// mergeConfigs overlays the set fields of overlay onto base. Bindings are
// merged by sequence.
func mergeConfigs(base, overlay UbotermConfig) UbotermConfig {
	merged := base

	// Server
	if overlay.Server.Host != "" {
		merged.Server.Host = overlay.Server.Host
	}
	if overlay.Server.Port != 0 {
		merged.Server.Port = overlay.Server.Port
	}
	if overlay.Server.Compression != "" {
		merged.Server.Compression = overlay.Server.Compression
	}
	if overlay.Server.KeepaliveTime != 0 {
		merged.Server.KeepaliveTime = overlay.Server.KeepaliveTime
	}
	if overlay.Server.DialTimeout != 0 {
		merged.Server.DialTimeout = overlay.Server.DialTimeout
	}

	// Display
	if overlay.Display.Protocol != "" {
		merged.Display.Protocol = overlay.Display.Protocol
	}
	if overlay.Display.TermProgram != "" {
		merged.Display.TermProgram = overlay.Display.TermProgram
	}
	if overlay.Display.DumpFile != "" {
		merged.Display.DumpFile = overlay.Display.DumpFile
	}
	if overlay.Display.DumpCompression != "" {
		merged.Display.DumpCompression = overlay.Display.DumpCompression
	}
	if overlay.Display.CompressedEvents != nil {
		merged.Display.CompressedEvents = overlay.Display.CompressedEvents
	}
	if overlay.Display.ProbeTimeout != 0 {
		merged.Display.ProbeTimeout = overlay.Display.ProbeTimeout
	}

	// Keyboard
	if overlay.Keyboard.Quit != "" {
		merged.Keyboard.Quit = overlay.Keyboard.Quit
	}
	if len(overlay.Keyboard.Bindings) > 0 {
		bindings := make([]BindingConfig, len(base.Keyboard.Bindings))
		copy(bindings, base.Keyboard.Bindings)
		for _, b := range overlay.Keyboard.Bindings {
			found := false
			for i := range bindings {
				if bindings[i].Sequence == b.Sequence {
					bindings[i] = b
					found = true
					break
				}
			}
			if !found {
				bindings = append(bindings, b)
			}
		}
		merged.Keyboard.Bindings = bindings
	}

	// Session
	if overlay.Session.Announce != nil {
		merged.Session.Announce = overlay.Session.Announce
	}
	if overlay.Session.Title != "" {
		merged.Session.Title = overlay.Session.Title
	}
	if overlay.Session.Content != "" {
		merged.Session.Content = overlay.Session.Content
	}

	// Logging
	if overlay.Logging.Level != "" {
		merged.Logging.Level = overlay.Logging.Level
	}
	if overlay.Logging.File != "" {
		merged.Logging.File = overlay.Logging.File
	}

	return merged
}

func applyEnv(config UbotermConfig, e EnvOverrides) UbotermConfig {
	return mergeConfigs(config, UbotermConfig{
		Server:  ServerConfig{Host: e.Host, Port: e.Port},
		Display: DisplayConfig{Protocol: e.Protocol, TermProgram: e.TermProgram},
		Logging: LoggingConfig{Level: e.LogLevel},
	})
}
