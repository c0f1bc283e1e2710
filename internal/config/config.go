package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"

	"github.com/studysmarter/studysmarter/internal/slot"
)

// Config holds the configuration for the study service.
// Environment variables are parsed from the STUDYSMARTER_ prefix.
type Config struct {
	// Storage driver selects the slot store: file or sqlite.
	StorageDriver string `envconfig:"STORAGE_DRIVER" default:"file"`

	// StateDir overrides the slot directory for the file driver.
	// Empty means ~/.studysmarter (or $STUDYSMARTER_HOME).
	StateDir string `envconfig:"STATE_DIR" default:""`

	// SQLitePath overrides the database file for the sqlite driver.
	SQLitePath string `envconfig:"SQLITE_PATH" default:""`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Concept expansion backend
	OllamaURL   string `envconfig:"OLLAMA_URL" default:"http://localhost:11434"`
	OllamaModel string `envconfig:"OLLAMA_MODEL" default:"llama3"`

	// Cross-process slot watching
	WatchIntervalMS int `envconfig:"WATCH_INTERVAL_MS" default:"500"`

	// Health checking
	HealthIntervalSeconds     int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"30"`
	HealthProbeTimeoutSeconds int `envconfig:"HEALTH_PROBE_TIMEOUT_SECONDS" default:"2"`
}

// ResolveDefaults validates the storage driver and derives file-system paths
// left empty.
func (c *Config) ResolveDefaults() error {
	allowed := map[string]bool{"file": true, "sqlite": true}
	if !allowed[c.StorageDriver] {
		return fmt.Errorf("unsupported STORAGE_DRIVER: %s", c.StorageDriver)
	}

	if c.StateDir == "" {
		dir, err := slot.DataDir()
		if err != nil {
			return err
		}
		c.StateDir = dir
	}
	if c.StorageDriver == "sqlite" && c.SQLitePath == "" {
		path, err := slot.DBPath()
		if err != nil {
			return err
		}
		c.SQLitePath = path
	}
	if c.WatchIntervalMS <= 0 {
		c.WatchIntervalMS = 500
	}
	return nil
}

// New creates a Config by parsing environment variables.
// Example: STUDYSMARTER_HTTP_PORT, STUDYSMARTER_STORAGE_DRIVER.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("STUDYSMARTER", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("storage_driver", cfg.StorageDriver).
		Str("state_dir", cfg.StateDir).
		Int("port", cfg.HTTPPort).
		Str("ollama_url", cfg.OllamaURL).
		Str("ollama_model", cfg.OllamaModel).
		Msg("Configuration loaded")

	return &cfg, nil
}

// GetHTTPAddr returns the HTTP server address.
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
