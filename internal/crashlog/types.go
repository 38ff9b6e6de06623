// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package crashlog discovers, parses and classifies crash report files and
// provides predicates for querying the parsed records.
package crashlog

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ProcessType classifies the process that produced a crash report.
// It is a bit set because the path heuristics used to derive it can overlap.
type ProcessType uint

const (
	ProcessTypeSystem      ProcessType = 1 << iota // System application or daemon
	ProcessTypeApplication                         // Application inside an app container
	ProcessTypeCustomAgent                         // Custom launched agent or helper tool
)

var processTypeNames = []struct {
	t    ProcessType
	name string
}{
	{ProcessTypeSystem, "system"},
	{ProcessTypeApplication, "application"},
	{ProcessTypeCustomAgent, "agent"},
}

// Has reports whether all bits of other are set in t.
func (t ProcessType) Has(other ProcessType) bool {
	return other != 0 && t&other == other
}

// Names returns the names of the set bits in a fixed order.
func (t ProcessType) Names() []string {
	var names []string
	for _, n := range processTypeNames {
		if t&n.t != 0 {
			names = append(names, n.name)
		}
	}
	return names
}

// String returns the set bits joined by "|", or "none".
func (t ProcessType) String() string {
	names := t.Names()
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// MarshalJSON encodes the process type as a list of names.
func (t ProcessType) MarshalJSON() ([]byte, error) {
	names := t.Names()
	if names == nil {
		names = []string{}
	}
	return json.Marshal(names)
}

// UnmarshalJSON decodes a list of names.
func (t *ProcessType) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	parsed, err := ParseProcessType(strings.Join(names, ","))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseProcessType parses a comma or "|" separated list of process type
// names. "app" and "custom_agent" are accepted as aliases.
func ParseProcessType(s string) (ProcessType, error) {
	var t ProcessType
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '|' })
	for _, f := range fields {
		switch strings.ToLower(strings.TrimSpace(f)) {
		case "":
		case "system":
			t |= ProcessTypeSystem
		case "application", "app":
			t |= ProcessTypeApplication
		case "agent", "custom_agent", "customagent":
			t |= ProcessTypeCustomAgent
		default:
			return 0, fmt.Errorf("unknown process type: %q", f)
		}
	}
	return t, nil
}

// Report formats.
const (
	FormatCrash = "crash" // Classic "Key: Value" text report
	FormatIPS   = "ips"   // JSON header line followed by a JSON body
)

// Record is the parsed metadata of one crash report.
// Records are values; they are never modified once returned by the parser.
type Record struct {
	Name              string      `json:"name"`                  // Last path segment of Path
	Path              string      `json:"path"`                  // Report file path, or the name given to Parse
	Identifier        string      `json:"identifier"`            // Bundle identifier, incident id, or derived id
	ExecutablePath    string      `json:"executable_path"`       // Image that crashed
	ProcessName       string      `json:"process_name"`          // Crashed process
	ProcessID         int         `json:"process_id"`            // Crashed process pid
	ParentProcessName string      `json:"parent_process_name"`   // Empty when the report has none
	ParentProcessID   int         `json:"parent_process_id"`     // Zero when the report has none
	Timestamp         time.Time   `json:"timestamp"`             // When the crash occurred
	ProcessType       ProcessType `json:"process_type"`          // Classification flags
	Format            string      `json:"format"`                // FormatCrash or FormatIPS
	IncidentID        string      `json:"incident_id,omitempty"` // Incident identifier, if present
	OSVersion         string      `json:"os_version,omitempty"`  // OS version line, if present
}
