// Package logging builds the zap loggers used by the server and the CLI.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"teamhours-backend/internal/config"
)

// New builds a logger from config. Development mode switches to the console
// encoder with stack traces on warnings.
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// Verbose raises the level of cfg to debug.
func Verbose(cfg config.LoggingConfig) config.LoggingConfig {
	cfg.Level = zapcore.DebugLevel.String()
	return cfg
}
