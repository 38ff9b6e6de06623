// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package crashes answers queries over a directory of crash reports.
package crashes

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/wingedpig/crashscan/internal/crashlog"
)

// ErrNotFound is returned when no crash report matches.
var ErrNotFound = errors.New("crash not found")

// Config holds configuration for crash collection.
type Config struct {
	ReportsDir string         // Directory holding crash reports
	Extensions []string       // Candidate file extensions
	MaxDepth   int            // Subdirectory levels to descend
	Workers    int            // Files parsed concurrently
	Lookback   time.Duration  // Default window when a query has no Since
	Rules      crashlog.Rules // Classification rules
}

// Manager scans the reports directory on every call. It keeps no index.
type Manager struct {
	mu     sync.RWMutex
	config Config
	parser *crashlog.Parser
	now    func() time.Time
}

// NewManager creates a new crash manager.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.ReportsDir == "" {
		return nil, fmt.Errorf("reports directory is required")
	}
	if cfg.Lookback == 0 {
		cfg.Lookback = 7 * 24 * time.Hour
	}

	return &Manager{
		config: cfg,
		parser: crashlog.NewParser(crashlog.NewClassifier(cfg.Rules)),
		now:    time.Now,
	}, nil
}

// ReportsDir returns the directory being scanned.
func (m *Manager) ReportsDir() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config.ReportsDir
}

// List returns the records matching q, sorted newest first.
// A query without Since uses the configured lookback window.
func (m *Manager) List(ctx context.Context, q Query) ([]crashlog.Record, error) {
	if q.Since.IsZero() {
		q.Since = m.now().Add(-m.lookback())
	}

	set, err := m.collect(ctx, q.Since)
	if err != nil {
		return nil, err
	}

	records := set.Filter(q.Predicates()...).SortedByTime()
	if q.Limit > 0 && len(records) > q.Limit {
		records = records[:q.Limit]
	}
	return records, nil
}

// Get returns the record of the report with the given file name,
// regardless of its age. Reports in subdirectories can share a file name;
// pass the path relative to the reports directory ("MyApp/MyApp.crash") to
// pick one. An ambiguous bare name picks the lexically smallest path.
func (m *Manager) Get(ctx context.Context, name string) (*crashlog.Record, error) {
	set, err := m.collect(ctx, time.Time{})
	if err != nil {
		return nil, err
	}

	rec, ok := set.Find(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return &rec, nil
}

// Newest returns the most recent crash at or after since. A zero since uses
// the configured lookback window.
func (m *Manager) Newest(ctx context.Context, since time.Time) (*crashlog.Record, error) {
	if since.IsZero() {
		since = m.now().Add(-m.lookback())
	}

	set, err := m.collect(ctx, since)
	if err != nil {
		return nil, err
	}

	rec, ok := set.Filter(crashlog.NewerThan(since)).Newest()
	if !ok {
		return nil, ErrNotFound
	}
	return &rec, nil
}

// Diagnostic returns the named report packaged as a diagnostic.
func (m *Manager) Diagnostic(ctx context.Context, name string) (*Diagnostic, error) {
	rec, err := m.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	return NewDiagnostic(*rec), nil
}

// Parse parses report content that is not backed by the reports directory.
// The record's Path is name as given, usually an upload name rather than an
// absolute path.
func (m *Manager) Parse(name string, data []byte) (crashlog.Record, error) {
	m.mu.RLock()
	parser := m.parser
	m.mu.RUnlock()

	return parser.Parse(name, data)
}

// UpdateConfig replaces the manager configuration.
func (m *Manager) UpdateConfig(cfg Config) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cfg.ReportsDir != "" {
		m.config.ReportsDir = cfg.ReportsDir
	}
	if cfg.Lookback > 0 {
		m.config.Lookback = cfg.Lookback
	}
	m.config.Extensions = cfg.Extensions
	m.config.MaxDepth = cfg.MaxDepth
	m.config.Workers = cfg.Workers
	m.config.Rules = cfg.Rules
	m.parser = crashlog.NewParser(crashlog.NewClassifier(cfg.Rules))
}

func (m *Manager) lookback() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config.Lookback
}

// collect scans the reports directory for files modified at or after cutoff.
func (m *Manager) collect(ctx context.Context, cutoff time.Time) (crashlog.Set, error) {
	m.mu.RLock()
	scanner := &crashlog.Scanner{
		Root:       m.config.ReportsDir,
		Extensions: m.config.Extensions,
		MaxDepth:   m.config.MaxDepth,
		Workers:    m.config.Workers,
		Parser:     m.parser,
		OnSkip: func(path string, err error) {
			log.Printf("Skipping crash report %s: %v", path, err)
		},
	}
	m.mu.RUnlock()

	set, err := scanner.CollectSince(ctx, cutoff)
	if err != nil {
		return crashlog.Set{}, fmt.Errorf("failed to scan %s: %w", scanner.Root, err)
	}
	return set, nil
}
