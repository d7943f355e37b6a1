// Package config loads chatvault configuration from an optional YAML file
// with environment variable overrides, and wires up logging.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mkeller/chatvault/internal/models"
)

// Config holds all configuration values.
type Config struct {
	// Logging
	LogFile  string
	LogLevel slog.Level

	// Presentation
	SidePolicy models.SidePolicy
	NameLimit  int // display-name length cap before truncation

	// MediaExtensions adds entries to the classifier table,
	// extension -> image|video|audio.
	MediaExtensions map[string]string
}

// fileConfig is the YAML config file shape.
type fileConfig struct {
	LogFile         string            `yaml:"log_file"`
	LogLevel        string            `yaml:"log_level"`
	SidePolicy      string            `yaml:"side_policy"`
	NameLimit       int               `yaml:"name_limit"`
	MediaExtensions map[string]string `yaml:"media_extensions"`
}

// Load builds the configuration: defaults, then the YAML file at path (or
// the default location when path is empty; a missing file is fine), then
// CHATVAULT_* environment variables on top.
func Load(path string) (Config, error) {
	cfg := Config{
		LogFile:    defaultLogFile(),
		LogLevel:   slog.LevelInfo,
		SidePolicy: models.FirstSenderIsPeer,
		NameLimit:  50,
	}

	explicit := path != ""
	if path == "" {
		path = defaultConfigPath()
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case err == nil:
			var fc fileConfig
			if err := yaml.Unmarshal(raw, &fc); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
			applyFile(&cfg, fc)
		case explicit:
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	if v := os.Getenv("CHATVAULT_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("CHATVAULT_LOG_LEVEL"); v != "" {
		cfg.LogLevel = ParseLogLevel(v)
	}
	if v := os.Getenv("CHATVAULT_SIDE_POLICY"); v != "" {
		cfg.SidePolicy = models.SidePolicy(v)
	}

	return cfg, nil
}

func applyFile(cfg *Config, fc fileConfig) {
	if fc.LogFile != "" {
		cfg.LogFile = fc.LogFile
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = ParseLogLevel(fc.LogLevel)
	}
	if fc.SidePolicy != "" {
		cfg.SidePolicy = models.SidePolicy(fc.SidePolicy)
	}
	if fc.NameLimit > 0 {
		cfg.NameLimit = fc.NameLimit
	}
	if len(fc.MediaExtensions) > 0 {
		cfg.MediaExtensions = fc.MediaExtensions
	}
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "chatvault", "config.yaml")
}

func defaultLogFile() string {
	return filepath.Join(os.TempDir(), "chatvault.log")
}

// ParseLogLevel maps a level name to a slog level, defaulting to info.
func ParseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
