// Package cliconf loads the sqlinst-go CLI configuration file.
package cliconf

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the YAML configuration of the CLI. Everything is optional; the
// zero value is a valid configuration.
type Config struct {
	// OverrideVersion pins the native API version.
	OverrideVersion string `yaml:"override_version"`
	// LanguageID selects the locale for native error messages; 0 lets the
	// native API pick.
	LanguageID uint32 `yaml:"language_id"`
	// LogLevel is one of debug, info, warn, error. Default warn.
	LogLevel string `yaml:"log_level"`
}

// DefaultPath returns the conventional config location under the user's home
// directory.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sqlinst.yaml"
	}
	return filepath.Join(home, ".sqlinst.yaml")
}

// Load reads the configuration at path. A missing file is not an error and
// yields the zero Config.
func Load(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// SlogLevel maps LogLevel to a slog level, defaulting to warn.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
