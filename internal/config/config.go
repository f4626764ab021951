// Package config loads portage settings from defaults, an optional YAML
// file, environment variables and command-line flags, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DatabaseConfig selects the store backend.
type DatabaseConfig struct {
	// Driver is sqlite, postgres or mysql.
	Driver string `yaml:"driver"`
	// Path is the SQLite file. Empty means the default data location.
	Path string `yaml:"path"`
	// URL is the connection string for postgres and mysql.
	URL string `yaml:"url"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ReportConfig holds report defaults.
type ReportConfig struct {
	// Narrative asks the configured LLM provider for recommendations.
	Narrative bool `yaml:"narrative"`
}

// Config is the complete application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Report   ReportConfig   `yaml:"report"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{Driver: "sqlite"},
		Log:      LogConfig{Level: "warn", Format: "console"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/portage/config.yaml, falling back to
// ~/.config/portage/config.yaml.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "portage", "config.yaml"), nil
}

// Load reads the YAML file at path over the defaults. A missing file is not
// an error; a malformed one is.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides settings from PORTAGE_* environment variables.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("PORTAGE_DB"); v != "" {
		c.Database.Path = v
	}
	if v := getenv("PORTAGE_DB_DRIVER"); v != "" {
		c.Database.Driver = v
	}
	if v := getenv("PORTAGE_DB_URL"); v != "" {
		c.Database.URL = v
	}
	if v := getenv("PORTAGE_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := getenv("PORTAGE_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
}

// MergeWithFlags applies flag values. Empty strings leave the setting alone.
func (c *Config) MergeWithFlags(dbPath, driver, logLevel string) {
	if dbPath != "" {
		c.Database.Path = dbPath
	}
	if driver != "" {
		c.Database.Driver = driver
	}
	if logLevel != "" {
		c.Log.Level = logLevel
	}
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	c.Database.Driver = strings.ToLower(c.Database.Driver)
	switch c.Database.Driver {
	case "sqlite":
	case "postgres", "mysql":
		if c.Database.URL == "" {
			return fmt.Errorf("database.url is required for driver %q", c.Database.Driver)
		}
	default:
		return fmt.Errorf("invalid database.driver %q, must be one of: sqlite, postgres, mysql", c.Database.Driver)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Log.Level] {
		return fmt.Errorf("invalid log.level %q, must be one of: debug, info, warn, error", c.Log.Level)
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("invalid log.format %q, must be json or console", c.Log.Format)
	}
	return nil
}

// DSN returns the connection string for the configured driver. For SQLite an
// empty path resolves through defaultPath.
func (c *Config) DSN(defaultPath func() (string, error)) (string, error) {
	if c.Database.Driver != "sqlite" {
		return c.Database.URL, nil
	}
	if c.Database.Path != "" {
		return c.Database.Path, nil
	}
	return defaultPath()
}
