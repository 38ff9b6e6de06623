// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"strings"
	"time"
)

// Crash is the parsed metadata of one crash report on the server.
type Crash struct {
	// Name is the report's file name. It is the key for [CrashClient.Get].
	Name string `json:"name"`

	// Path is the report's location on the server.
	Path string `json:"path"`

	// Identifier is the bundle identifier, incident id, or a derived id.
	Identifier string `json:"identifier"`

	// ExecutablePath is the image that crashed.
	ExecutablePath string `json:"executable_path"`

	ProcessName       string    `json:"process_name"`
	ProcessID         int       `json:"process_id"`
	ParentProcessName string    `json:"parent_process_name"`
	ParentProcessID   int       `json:"parent_process_id"`
	Timestamp         time.Time `json:"timestamp"`

	// ProcessType lists the classification flags: "system", "application"
	// and "agent".
	ProcessType []string `json:"process_type"`

	// Format is "crash" for classic text reports or "ips" for JSON reports.
	Format     string `json:"format"`
	IncidentID string `json:"incident_id,omitempty"`
	OSVersion  string `json:"os_version,omitempty"`
}

// HasType reports whether the crash carries the given classification flag.
func (c Crash) HasType(t string) bool {
	for _, pt := range c.ProcessType {
		if strings.EqualFold(pt, t) {
			return true
		}
	}
	return false
}

// Diagnostic is a crash report packaged for a diagnostic bundle.
type Diagnostic struct {
	ShortName string            `json:"short_name"`
	FileType  string            `json:"file_type"`
	Path      string            `json:"path"`
	Timestamp time.Time         `json:"timestamp"`
	Metadata  map[string]string `json:"metadata"`
}
