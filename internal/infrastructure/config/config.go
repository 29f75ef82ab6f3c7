package config

import (
	"fmt"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Engine  EngineConfig
	Auth    AuthConfig
	Logging LogConfig
}

// EngineConfig holds sandbox and engine tuning configuration.
type EngineConfig struct {
	Root         string `envconfig:"FILEENGINE_ROOT" default:"file_management_system"`
	AuditLog     string `envconfig:"FILEENGINE_AUDIT_LOG" default:"operations.log"`
	Bookmarks    string `envconfig:"FILEENGINE_BOOKMARKS" default:"bookmarks.txt"`
	PreviewLines int    `envconfig:"FILEENGINE_PREVIEW_LINES" default:"10"`
	RecentCount  int    `envconfig:"FILEENGINE_RECENT_COUNT" default:"5"`
	ScanWorkers  int    `envconfig:"FILEENGINE_SCAN_WORKERS" default:"4"`
}

// AuthConfig holds credential store configuration.
type AuthConfig struct {
	UsersFile string `envconfig:"FILEENGINE_USERS" default:"users.yaml"`
	// SeedAdmin, when non-empty, is the password given to an "admin" account
	// created on first start if the users file does not exist yet.
	SeedAdmin string `envconfig:"FILEENGINE_SEED_ADMIN"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
	File        string `envconfig:"LOG_FILE"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			Root:         "file_management_system",
			AuditLog:     "operations.log",
			Bookmarks:    "bookmarks.txt",
			PreviewLines: 10,
			RecentCount:  5,
			ScanWorkers:  4,
		},
		Auth: AuthConfig{
			UsersFile: "users.yaml",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}

// Validate rejects values the engine cannot work with.
func (c *Config) Validate() error {
	if c.Engine.Root == "" {
		return fmt.Errorf("FILEENGINE_ROOT must not be empty")
	}
	if c.Engine.PreviewLines <= 0 {
		return fmt.Errorf("FILEENGINE_PREVIEW_LINES must be positive, got %d", c.Engine.PreviewLines)
	}
	if c.Engine.RecentCount <= 0 {
		return fmt.Errorf("FILEENGINE_RECENT_COUNT must be positive, got %d", c.Engine.RecentCount)
	}
	if c.Engine.ScanWorkers <= 0 {
		return fmt.Errorf("FILEENGINE_SCAN_WORKERS must be positive, got %d", c.Engine.ScanWorkers)
	}
	return nil
}

// AbsRoot returns the sandbox root as an absolute, cleaned path.
func (c *Config) AbsRoot() (string, error) {
	root, err := filepath.Abs(c.Engine.Root)
	if err != nil {
		return "", fmt.Errorf("resolve root %q: %w", c.Engine.Root, err)
	}
	return root, nil
}
