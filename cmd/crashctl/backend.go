// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/wingedpig/crashscan/internal/app"
	"github.com/wingedpig/crashscan/internal/config"
	"github.com/wingedpig/crashscan/internal/crashes"
	"github.com/wingedpig/crashscan/internal/crashlog"
	"github.com/wingedpig/crashscan/internal/timearg"
	"github.com/wingedpig/crashscan/pkg/client"
)

// backend answers crash queries. *client.CrashClient satisfies it directly.
type backend interface {
	List(ctx context.Context, opts client.ListOptions) ([]client.Crash, error)
	Newest(ctx context.Context, since string) (*client.Crash, error)
	Get(ctx context.Context, name string) (*client.Crash, error)
	Diagnostic(ctx context.Context, name string) (*client.Diagnostic, error)
	Parse(ctx context.Context, name string, report []byte) (*client.Crash, error)
}

// newBackend returns the remote backend when --api is set, otherwise a
// local scanner over the configured reports directory.
func newBackend() (backend, error) {
	if flagAPI != "" {
		return client.New(flagAPI, client.WithTimeout(2*time.Minute)).Crashes, nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	mgr, err := crashes.NewManager(app.ManagerConfig(cfg))
	if err != nil {
		return nil, err
	}
	return &localBackend{manager: mgr, now: time.Now}, nil
}

// loadConfig loads the config named by --config, or crashscan.hjson from
// the current directory when present, and applies --dir.
func loadConfig() (*config.Config, error) {
	loader := config.NewLoader()
	path := flagConfig
	if path == "" {
		if found, err := loader.FindConfig(); err == nil {
			path = found
		}
	}

	var cfg *config.Config
	if path != "" {
		loaded, err := loader.LoadWithDefaults(context.Background(), path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = config.Default()
	}

	if flagDir != "" {
		cfg.Reports.Dir = config.ExpandPath(flagDir)
	}
	if cfg.Reports.Dir == "" {
		return nil, fmt.Errorf("no reports directory; pass --dir")
	}
	return cfg, nil
}

// localBackend scans the reports directory in-process.
type localBackend struct {
	manager *crashes.Manager
	now     func() time.Time
}

func (b *localBackend) List(ctx context.Context, opts client.ListOptions) ([]client.Crash, error) {
	q := crashes.Query{
		ProcessID:       opts.ProcessID,
		ParentProcessID: opts.ParentProcessID,
		Identifier:      opts.Identifier,
		Name:            opts.Name,
		ProcessName:     opts.Process,
		Limit:           opts.Limit,
	}
	var err error
	if q.Since, err = b.parseTime(opts.Since); err != nil {
		return nil, err
	}
	if q.Until, err = b.parseTime(opts.Until); err != nil {
		return nil, err
	}
	if opts.Type != "" {
		if q.Type, err = crashlog.ParseProcessType(opts.Type); err != nil {
			return nil, err
		}
	}

	records, err := b.manager.List(ctx, q)
	if err != nil {
		return nil, err
	}
	out := make([]client.Crash, len(records))
	for i, rec := range records {
		out[i] = fromRecord(rec)
	}
	return out, nil
}

func (b *localBackend) Newest(ctx context.Context, since string) (*client.Crash, error) {
	t, err := b.parseTime(since)
	if err != nil {
		return nil, err
	}
	rec, err := b.manager.Newest(ctx, t)
	if err != nil {
		return nil, err
	}
	c := fromRecord(*rec)
	return &c, nil
}

func (b *localBackend) Get(ctx context.Context, name string) (*client.Crash, error) {
	rec, err := b.manager.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	c := fromRecord(*rec)
	return &c, nil
}

func (b *localBackend) Diagnostic(ctx context.Context, name string) (*client.Diagnostic, error) {
	d, err := b.manager.Diagnostic(ctx, name)
	if err != nil {
		return nil, err
	}
	return &client.Diagnostic{
		ShortName: d.ShortName,
		FileType:  d.FileType,
		Path:      d.Path,
		Timestamp: d.Timestamp,
		Metadata:  d.Metadata,
	}, nil
}

func (b *localBackend) Parse(ctx context.Context, name string, report []byte) (*client.Crash, error) {
	rec, err := b.manager.Parse(name, report)
	if err != nil {
		return nil, err
	}
	c := fromRecord(rec)
	return &c, nil
}

func (b *localBackend) parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return timearg.Parse(s, b.now())
}

// fromRecord converts a record to the API representation so both backends
// print the same way.
func fromRecord(rec crashlog.Record) client.Crash {
	types := rec.ProcessType.Names()
	if types == nil {
		types = []string{}
	}
	return client.Crash{
		Name:              rec.Name,
		Path:              rec.Path,
		Identifier:        rec.Identifier,
		ExecutablePath:    rec.ExecutablePath,
		ProcessName:       rec.ProcessName,
		ProcessID:         rec.ProcessID,
		ParentProcessName: rec.ParentProcessName,
		ParentProcessID:   rec.ParentProcessID,
		Timestamp:         rec.Timestamp,
		ProcessType:       types,
		Format:            rec.Format,
		IncidentID:        rec.IncidentID,
		OSVersion:         rec.OSVersion,
	}
}
