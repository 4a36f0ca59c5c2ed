// Package config loads service configuration from environment variables,
// with an optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	Port       int
	LogLevel   string
	LogFormat  string // "json" or "text"
	CatalogDir string // directory holding catalog.yaml; empty disables the file layer

	// Event cadence overrides; zero keeps the engine defaults.
	ItemsPerEvent   float64
	SecondsPerEvent float64
}

// Load reads the configuration from environment variables. A missing .env
// file is fine; real environment variables always win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:   getEnv("LOG_LEVEL", "INFO"),
		LogFormat:  getEnv("LOG_FORMAT", "text"),
		CatalogDir: getEnv("CATALOG_DIR", ""),
	}

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if cfg.ItemsPerEvent, err = getEnvFloat("ITEMS_PER_EVENT"); err != nil {
		return nil, err
	}
	if cfg.SecondsPerEvent, err = getEnvFloat("SECONDS_PER_EVENT"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvFloat parses an optional float variable; unset yields zero.
func getEnvFloat(key string) (float64, error) {
	s, exists := os.LookupEnv(key)
	if !exists || s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}
