// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hjson/hjson-go/v4"
	"github.com/wingedpig/crashscan/internal/crashlog"
)

// Loader handles configuration file loading.
type Loader struct{}

// NewLoader creates a new config loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and parses the configuration from the given path.
func (l *Loader) Load(ctx context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return l.Parse(data)
}

// Parse parses HJSON configuration data.
func (l *Loader) Parse(data []byte) (*Config, error) {
	// Parse HJSON to intermediate map
	var raw map[string]interface{}
	if err := hjson.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse hjson: %w", err)
	}

	// Convert to JSON and unmarshal to struct (for type safety)
	jsonData, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("convert to json: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(jsonData, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

// LoadWithDefaults loads config with default values applied and validates it.
func (l *Loader) LoadWithDefaults(ctx context.Context, path string) (*Config, error) {
	cfg, err := l.Load(ctx, path)
	if err != nil {
		return nil, err
	}

	ApplyDefaults(cfg)
	if err := NewValidator().Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Default returns a validated configuration with all defaults applied, for
// running without a config file.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// FindConfig searches for a config file in the current directory.
// It looks for crashscan.hjson first, then crashscan.json.
func (l *Loader) FindConfig() (string, error) {
	candidates := []string{
		"crashscan.hjson",
		"crashscan.json",
	}

	for _, name := range candidates {
		path := filepath.Join(".", name)
		if _, err := os.Stat(path); err == nil {
			abs, err := filepath.Abs(path)
			if err != nil {
				return path, nil
			}
			return abs, nil
		}
	}

	return "", fmt.Errorf("config file not found (looked for crashscan.hjson, crashscan.json)")
}

// ApplyDefaults sets default values for missing config fields.
func ApplyDefaults(cfg *Config) {
	if cfg.Version == "" {
		cfg.Version = "1.0"
	}

	// Server defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 1357
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "127.0.0.1"
	}

	// Reports defaults
	if cfg.Reports.Dir == "" {
		if dir, err := crashlog.DefaultReportsDir(); err == nil {
			cfg.Reports.Dir = dir
		}
	}
	cfg.Reports.Dir = ExpandPath(cfg.Reports.Dir)
	if len(cfg.Reports.Extensions) == 0 {
		cfg.Reports.Extensions = append([]string(nil), crashlog.DefaultExtensions...)
	}
	if cfg.Reports.MaxDepth == nil {
		depth := crashlog.DefaultMaxDepth
		cfg.Reports.MaxDepth = &depth
	}
	if cfg.Reports.Workers == 0 {
		cfg.Reports.Workers = crashlog.DefaultWorkers
	}
	if cfg.Reports.Lookback == "" {
		cfg.Reports.Lookback = "7d"
	}
}
