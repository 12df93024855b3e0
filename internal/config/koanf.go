// Pulse - Personalized Post Recommendations for Crown Social
// Copyright 2026 Crown Social
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crown-social/pulse

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists where config files are searched, in order.
// The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/pulse/config.yaml",
	"/etc/pulse/config.yml",
}

// ConfigPathEnvVar overrides the config file path when set.
const ConfigPathEnvVar = "CONFIG_PATH"

// Load builds the configuration with layered precedence:
//
//  1. Built-in defaults
//  2. Optional YAML config file
//  3. Environment variables (highest priority)
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", configPath, err)
		}
	}

	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file path, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envMappings translates environment variable names to koanf paths.
// Only listed variables are honored; everything else is ignored so that
// unrelated process env does not leak into the configuration.
var envMappings = map[string]string{
	"pulse_host":        "server.host",
	"pulse_port":        "server.port",
	"pulse_timeout":     "server.timeout",
	"environment":       "server.environment",
	"database_path":     "database.path",
	"database_memory":   "database.max_memory",
	"database_threads":  "database.threads",
	"seed_mock_data":    "database.seed_mock_data",
	"cache_dir":         "cache.dir",
	"cache_in_memory":   "cache.in_memory",
	"log_level":         "logging.level",
	"log_format":        "logging.format",
	"rate_limit_reqs":   "api.rate_limit_requests",
	"rate_limit_window": "api.rate_limit_window",
}

// envTransformFunc maps an environment variable name to its koanf path.
// Returning "" skips the variable.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
