// Copyright 2026 The Opsdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the operator
// console.
//
// Configuration is loaded from a single YAML file named by the
// OPSDESK_CONFIG environment variable. There are no fallbacks or
// automatic discovery; with the variable unset the built-in defaults
// apply. A .env file in the working directory, when
// present, is loaded into the environment before the config file is
// read, matching how the backend picks up its own settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// defaultPageLimit is the ticket list page size when the config file
// does not set one.
const defaultPageLimit = 20

// Config is the operator console configuration.
type Config struct {
	// Backend configures the ticket backend connection.
	Backend BackendConfig `yaml:"backend"`

	// Console configures list and export behavior.
	Console ConsoleConfig `yaml:"console"`
}

// BackendConfig configures the ticket backend connection.
type BackendConfig struct {
	// BaseURL is the backend root. Default: http://localhost:8000.
	// A base URL stored in the operator's session takes precedence,
	// so one login can point the console at a non-default host.
	BaseURL string `yaml:"base_url"`

	// Timeout is the per-request HTTP timeout as a Go duration
	// string ("30s", "2m"). Parsed by time.ParseDuration.
	// Default: "30s".
	Timeout string `yaml:"timeout"`
}

// ConsoleConfig configures list and export behavior.
type ConsoleConfig struct {
	// PageLimit is the ticket list page size. Default: 20.
	PageLimit int `yaml:"page_limit"`

	// ExportDirectory is where spreadsheet exports are written.
	// Default: the current working directory.
	ExportDirectory string `yaml:"export_directory"`
}

// Default returns the default configuration, used as the base before
// loading a config file.
func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			BaseURL: "http://localhost:8000",
			Timeout: "30s",
		},
		Console: ConsoleConfig{
			PageLimit:       defaultPageLimit,
			ExportDirectory: ".",
		},
	}
}

// Load loads configuration from the OPSDESK_CONFIG environment
// variable, or returns defaults when it is unset. A .env file in the
// working directory is applied to the environment first, so
// OPSDESK_CONFIG itself may come from it.
func Load() (*Config, error) {
	// Missing .env is the normal case; real read errors surface
	// through the config path below if they matter.
	_ = godotenv.Load()

	configPath := os.Getenv("OPSDESK_CONFIG")
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, merging over
// the defaults. Environment variables do not override file values.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url is required")
	}
	timeout, err := time.ParseDuration(c.Backend.Timeout)
	if err != nil {
		return fmt.Errorf("backend.timeout: %w", err)
	}
	if timeout <= 0 {
		return fmt.Errorf("backend.timeout must be positive")
	}
	if c.Console.PageLimit <= 0 {
		return fmt.Errorf("console.page_limit must be positive")
	}
	return nil
}

// RequestTimeout returns the parsed backend.timeout. Falls back to
// the default for a config that skipped Validate.
func (c *Config) RequestTimeout() time.Duration {
	timeout, err := time.ParseDuration(c.Backend.Timeout)
	if err != nil || timeout <= 0 {
		return 30 * time.Second
	}
	return timeout
}

// ExportPath returns the destination path for an export file with the
// given name, creating the export directory if needed.
func (c *Config) ExportPath(name string) (string, error) {
	directory := c.Console.ExportDirectory
	if directory == "" {
		directory = "."
	}
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return "", fmt.Errorf("config: creating export directory: %w", err)
	}
	return filepath.Join(directory, name), nil
}
