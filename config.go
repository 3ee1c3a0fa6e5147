package main

import (
	"os"

	"github.com/joho/godotenv"

	"teamhours-backend/internal/config"
)

const defaultConfigPath = "config.yaml"

// LoadEnv loads .env into the process environment. It reports whether a
// .env file was found; a missing file is not an error.
func LoadEnv() bool {
	return godotenv.Load() == nil
}

// loadConfig reads the YAML config named by ATTENDANCE_CONFIG (default
// config.yaml). Environment variables, including ones from .env, win over
// the file.
func loadConfig() (*config.Config, error) {
	path := os.Getenv("ATTENDANCE_CONFIG")
	if path == "" {
		path = defaultConfigPath
	}
	return config.Load(path)
}
