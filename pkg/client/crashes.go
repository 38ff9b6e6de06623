// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// CrashClient provides access to crash report queries.
type CrashClient struct {
	c *Client
}

// ListOptions filters a crash listing. Zero-valued fields are not sent.
type ListOptions struct {
	Since           string // e.g. "1h", "2d", "6:30am", "2024-01-15"
	Until           string
	ProcessID       *int
	ParentProcessID *int
	Identifier      string
	Name            string
	Process         string
	Type            string // e.g. "system", "application|agent"
	Limit           int
}

func (o ListOptions) values() url.Values {
	v := url.Values{}
	set := func(key, value string) {
		if value != "" {
			v.Set(key, value)
		}
	}
	set("since", o.Since)
	set("until", o.Until)
	set("identifier", o.Identifier)
	set("name", o.Name)
	set("process", o.Process)
	set("type", o.Type)
	if o.ProcessID != nil {
		v.Set("pid", strconv.Itoa(*o.ProcessID))
	}
	if o.ParentProcessID != nil {
		v.Set("parent_pid", strconv.Itoa(*o.ParentProcessID))
	}
	if o.Limit > 0 {
		v.Set("limit", strconv.Itoa(o.Limit))
	}
	return v
}

// List returns the crashes matching opts, newest first.
func (c *CrashClient) List(ctx context.Context, opts ListOptions) ([]Crash, error) {
	path := "/api/v1/crashes"
	if q := opts.values().Encode(); q != "" {
		path += "?" + q
	}

	data, err := c.c.get(ctx, path)
	if err != nil {
		return nil, err
	}

	var crashes []Crash
	if err := json.Unmarshal(data, &crashes); err != nil {
		return nil, fmt.Errorf("failed to parse crashes: %w", err)
	}

	return crashes, nil
}

// Get retrieves a crash by report file name.
func (c *CrashClient) Get(ctx context.Context, name string) (*Crash, error) {
	data, err := c.c.get(ctx, "/api/v1/crashes/"+escapeName(name))
	if err != nil {
		return nil, err
	}

	var crash Crash
	if err := json.Unmarshal(data, &crash); err != nil {
		return nil, fmt.Errorf("failed to parse crash: %w", err)
	}

	return &crash, nil
}

// Newest returns the most recent crash at or after since. An empty since
// uses the server's lookback window. It returns an *APIError with code
// CodeNotFound when there is none.
func (c *CrashClient) Newest(ctx context.Context, since string) (*Crash, error) {
	path := "/api/v1/crashes/newest"
	if since != "" {
		path += "?since=" + url.QueryEscape(since)
	}

	data, err := c.c.get(ctx, path)
	if err != nil {
		return nil, err
	}

	var crash Crash
	if err := json.Unmarshal(data, &crash); err != nil {
		return nil, fmt.Errorf("failed to parse crash: %w", err)
	}

	return &crash, nil
}

// Diagnostic returns a crash packaged for a diagnostic bundle.
func (c *CrashClient) Diagnostic(ctx context.Context, name string) (*Diagnostic, error) {
	data, err := c.c.get(ctx, "/api/v1/crashes/"+escapeName(name)+"/diagnostic")
	if err != nil {
		return nil, err
	}

	var diag Diagnostic
	if err := json.Unmarshal(data, &diag); err != nil {
		return nil, fmt.Errorf("failed to parse diagnostic: %w", err)
	}

	return &diag, nil
}

// Parse asks the server to parse report content. name becomes the
// record's Name and Path.
func (c *CrashClient) Parse(ctx context.Context, name string, report []byte) (*Crash, error) {
	path := "/api/v1/parse?name=" + url.QueryEscape(name)

	data, err := c.c.postRaw(ctx, path, "text/plain", bytes.NewReader(report))
	if err != nil {
		return nil, err
	}

	var crash Crash
	if err := json.Unmarshal(data, &crash); err != nil {
		return nil, fmt.Errorf("failed to parse crash: %w", err)
	}

	return &crash, nil
}

// escapeName escapes each segment of a report name. Names may carry a
// reports subdirectory ("MyApp/MyApp.crash").
func escapeName(name string) string {
	parts := strings.Split(name, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
