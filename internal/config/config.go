// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"proposal-cost/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Server contains API server configuration
	Server ServerConfig `json:"server"`

	// Storage contains persistence gateway configuration
	Storage StorageConfig `json:"storage"`

	// Rates contains hourly-rate table configuration
	Rates RatesConfig `json:"rates"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// ServerConfig contains API server settings
type ServerConfig struct {
	// Address is the listen address
	Address string `json:"address"`

	// ReadTimeoutSeconds bounds request reads
	ReadTimeoutSeconds int `json:"read_timeout_seconds"`

	// WriteTimeoutSeconds bounds response writes
	WriteTimeoutSeconds int `json:"write_timeout_seconds"`
}

// StorageConfig contains persistence gateway settings
type StorageConfig struct {
	// Backend selects the storage backend (remote, file, memory)
	Backend string `json:"backend"`

	// BaseURL is the remote proposal store endpoint
	BaseURL string `json:"base_url"`

	// APIKey authenticates against the remote store
	APIKey string `json:"api_key,omitempty"`

	// Path is the base directory for the file backend
	Path string `json:"path,omitempty"`

	// TimeoutSeconds bounds gateway requests
	TimeoutSeconds int `json:"timeout_seconds"`
}

// RatesConfig contains hourly-rate table settings
type RatesConfig struct {
	// DatabaseURL is the Postgres connection string for the rate table
	DatabaseURL string `json:"database_url,omitempty"`

	// RefreshOnStart reloads the rate table on startup
	RefreshOnStart bool `json:"refresh_on_start"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format
	DefaultFormat string `json:"default_format"`

	// ShowBreakdown shows the per-category breakdown
	ShowBreakdown bool `json:"show_breakdown"`
}

// Default returns a default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	storagePath := filepath.Join(homeDir, ".proposal-cost", "proposals")

	return &Config{
		Version: "1.0",
		Server: ServerConfig{
			Address:             ":8080",
			ReadTimeoutSeconds:  30,
			WriteTimeoutSeconds: 60,
		},
		Storage: StorageConfig{
			Backend:        "remote",
			BaseURL:        "http://localhost:8090",
			Path:           storagePath,
			TimeoutSeconds: 30,
		},
		Rates: RatesConfig{
			RefreshOnStart: true,
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
			ShowBreakdown: true,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
