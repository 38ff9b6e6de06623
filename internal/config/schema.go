// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package config handles HJSON configuration loading for crashscan.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wingedpig/crashscan/internal/crashlog"
)

// Config is the root configuration structure.
type Config struct {
	Version    string           `json:"version"`
	Server     ServerConfig     `json:"server"`
	Reports    ReportsConfig    `json:"reports"`
	Classifier ClassifierConfig `json:"classifier"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port    int    `json:"port"`
	Host    string `json:"host"`
	TLSCert string `json:"tls_cert"` // Path to TLS certificate (supports ~)
	TLSKey  string `json:"tls_key"`  // Path to TLS private key (supports ~)
}

// ReportsConfig configures where and how crash reports are collected.
type ReportsConfig struct {
	Dir        string   `json:"dir"`        // Diagnostic reports directory (supports ~)
	Extensions []string `json:"extensions"` // Candidate file extensions
	MaxDepth   *int     `json:"max_depth"`  // Subdirectory levels to descend (default 1)
	Workers    int      `json:"workers"`    // Files parsed concurrently
	Lookback   string   `json:"lookback"`   // Default collection window (e.g., "24h", "7d")
}

// ClassifierConfig overrides the process classification rules.
// Empty lists keep the built-in rules.
type ClassifierConfig struct {
	SystemPaths      []string `json:"system_paths"`
	AgentPaths       []string `json:"agent_paths"`
	AgentNames       []string `json:"agent_names"`
	ApplicationPaths []string `json:"application_paths"`
}

// Rules converts the classifier config to classification rules.
func (c ClassifierConfig) Rules() crashlog.Rules {
	return crashlog.Rules{
		SystemPaths:      c.SystemPaths,
		AgentPaths:       c.AgentPaths,
		AgentNames:       c.AgentNames,
		ApplicationPaths: c.ApplicationPaths,
	}
}

// Depth returns the configured scan depth.
func (r ReportsConfig) Depth() int {
	if r.MaxDepth == nil {
		return crashlog.DefaultMaxDepth
	}
	return *r.MaxDepth
}

// LookbackDuration returns the lookback window, or defaultVal if unset or invalid.
func (r ReportsConfig) LookbackDuration(defaultVal time.Duration) time.Duration {
	return ParseDuration(r.Lookback, defaultVal)
}

// ParseDuration parses a duration string that may use a day suffix,
// returning a default if empty or invalid.
func ParseDuration(s string, defaultVal time.Duration) time.Duration {
	if s == "" {
		return defaultVal
	}
	d, err := parseDurationWithDays(s)
	if err != nil {
		return defaultVal
	}
	return d
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
