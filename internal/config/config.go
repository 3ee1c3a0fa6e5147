package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"teamhours-backend/internal/attendance"
)

// Config holds all service configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Rules   RulesConfig   `yaml:"rules"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig configures the HTTP upload endpoint.
type ServerConfig struct {
	Addr            string `yaml:"addr"`
	Mode            string `yaml:"mode"` // debug, release, test
	MaxUploadBytes  int64  `yaml:"max_upload_bytes"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
}

// RulesConfig sets the event-name markers that exclude pseudo-events.
type RulesConfig struct {
	ManualHoursMarker string `yaml:"manual_hours_marker"`
	PlaceholderMarker string `yaml:"placeholder_marker"`
}

type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			Mode:            "release",
			MaxUploadBytes:  32 << 20,
			ShutdownTimeout: "10s",
		},
		Rules: RulesConfig{
			ManualHoursMarker: attendance.DefaultManualHoursMarker,
			PlaceholderMarker: attendance.DefaultPlaceholderMarker,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment variables override file values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Addr = ":" + strings.TrimPrefix(port, ":")
	}
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		c.Server.Mode = mode
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if m := os.Getenv("MANUAL_HOURS_MARKER"); m != "" {
		c.Rules.ManualHoursMarker = m
	}
	if m := os.Getenv("PLACEHOLDER_MARKER"); m != "" {
		c.Rules.PlaceholderMarker = m
	}
}

// Validate checks values that would otherwise fail later at startup.
func (c *Config) Validate() error {
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("invalid server.mode %q (use debug, release or test)", c.Server.Mode)
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("server.max_upload_bytes must be positive")
	}
	if _, err := time.ParseDuration(c.Server.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid server.shutdown_timeout: %w", err)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level %q", c.Logging.Level)
	}
	return nil
}

// GetShutdownTimeout returns the shutdown timeout, defaulting to 10s.
func (c *Config) GetShutdownTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.ShutdownTimeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// AttendanceRules converts the configured markers into aggregator rules.
func (c *Config) AttendanceRules() attendance.Rules {
	return attendance.Rules{
		ManualHoursMarker: c.Rules.ManualHoursMarker,
		PlaceholderMarker: c.Rules.PlaceholderMarker,
	}
}
