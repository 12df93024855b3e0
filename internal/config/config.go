// Pulse - Personalized Post Recommendations for Crown Social
// Copyright 2026 Crown Social
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crown-social/pulse

// Package config loads and validates Pulse service configuration.
//
// Configuration is layered via koanf: built-in defaults, then an optional
// YAML config file, then environment variables (highest priority).
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the Pulse service.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Cache    CacheConfig    `koanf:"cache"`
	Logging  LoggingConfig  `koanf:"logging"`
	API      APIConfig      `koanf:"api"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the listen address.
	Host string `koanf:"host"`

	// Port is the listen port.
	Port int `koanf:"port"`

	// Timeout is the per-request read/write timeout.
	Timeout time.Duration `koanf:"timeout"`

	// Environment is "development" or "production".
	Environment string `koanf:"environment"`
}

// DatabaseConfig holds DuckDB settings for the post/interaction store.
type DatabaseConfig struct {
	// Path is the database file path. Empty means in-memory.
	Path string `koanf:"path"`

	// MaxMemory caps DuckDB memory usage (e.g. "1GB").
	MaxMemory string `koanf:"max_memory"`

	// Threads is the DuckDB thread count. 0 means runtime.NumCPU().
	Threads int `koanf:"threads"`

	// SeedMockData populates the store with sample posts and interactions
	// on startup. Development only.
	SeedMockData bool `koanf:"seed_mock_data"`
}

// CacheConfig holds BadgerDB settings for the recommendation cache.
type CacheConfig struct {
	// Dir is the Badger data directory. Ignored when InMemory is true.
	Dir string `koanf:"dir"`

	// InMemory keeps the cache purely in memory.
	InMemory bool `koanf:"in_memory"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`
}

// APIConfig holds API behavior settings.
type APIConfig struct {
	// RateLimitRequests is the number of requests allowed per window per IP.
	RateLimitRequests int `koanf:"rate_limit_requests"`

	// RateLimitWindow is the rate limiting window.
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8084,
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Database: DatabaseConfig{
			Path:      "/data/pulse.duckdb",
			MaxMemory: "1GB",
			Threads:   0,
		},
		Cache: CacheConfig{
			Dir:      "/data/pulse-cache",
			InMemory: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		API: APIConfig{
			RateLimitRequests: 100,
			RateLimitWindow:   1 * time.Minute,
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}
	if c.Server.Environment != "development" && c.Server.Environment != "production" {
		return fmt.Errorf("server.environment must be development or production, got %q", c.Server.Environment)
	}
	if !c.Cache.InMemory && c.Cache.Dir == "" {
		return fmt.Errorf("cache.dir is required unless cache.in_memory is set")
	}
	if c.API.RateLimitRequests <= 0 {
		return fmt.Errorf("api.rate_limit_requests must be positive, got %d", c.API.RateLimitRequests)
	}
	if c.API.RateLimitWindow <= 0 {
		return fmt.Errorf("api.rate_limit_window must be positive, got %s", c.API.RateLimitWindow)
	}
	return nil
}
