// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package crashes

import (
	"time"

	"github.com/wingedpig/crashscan/internal/crashlog"
)

// Query selects crash records. Zero-valued fields match everything.
type Query struct {
	Since           time.Time            // Reports modified or crashed at or after this time
	Until           time.Time            // Crashes strictly before this time
	ProcessID       *int                 // Crashed process pid
	ParentProcessID *int                 // Parent process pid
	Identifier      string               // Bundle identifier or incident id
	Name            string               // Report file name
	ProcessName     string               // Crashed process name
	Type            crashlog.ProcessType // Any of these classification flags
	Limit           int                  // Max records returned (0 = no limit)
}

// Predicates converts the query's filters to record predicates.
func (q Query) Predicates() []crashlog.Predicate {
	var preds []crashlog.Predicate
	if !q.Since.IsZero() {
		preds = append(preds, crashlog.NewerThan(q.Since))
	}
	if !q.Until.IsZero() {
		preds = append(preds, crashlog.OlderThan(q.Until))
	}
	if q.ProcessID != nil {
		preds = append(preds, crashlog.ByProcessID(*q.ProcessID))
	}
	if q.ParentProcessID != nil {
		preds = append(preds, crashlog.ByParentProcessID(*q.ParentProcessID))
	}
	if q.Identifier != "" {
		preds = append(preds, crashlog.ByIdentifier(q.Identifier))
	}
	if q.Name != "" {
		preds = append(preds, crashlog.ByName(q.Name))
	}
	if q.ProcessName != "" {
		preds = append(preds, crashlog.ByProcessName(q.ProcessName))
	}
	if q.Type != 0 {
		preds = append(preds, crashlog.OfType(q.Type))
	}
	return preds
}

// Diagnostic is a crash report packaged for attachment to a diagnostic bundle.
type Diagnostic struct {
	ShortName string            `json:"short_name"`
	FileType  string            `json:"file_type"`
	Path      string            `json:"path"`
	Timestamp time.Time         `json:"timestamp"`
	Metadata  map[string]string `json:"metadata"`
}

// NewDiagnostic builds a diagnostic from a record.
func NewDiagnostic(rec crashlog.Record) *Diagnostic {
	d := &Diagnostic{Metadata: make(map[string]string)}
	rec.ToDiagnostic(d)
	return d
}

func (d *Diagnostic) SetShortName(name string)      { d.ShortName = name }
func (d *Diagnostic) SetFileType(fileType string)   { d.FileType = fileType }
func (d *Diagnostic) SetPath(path string)           { d.Path = path }
func (d *Diagnostic) SetTimestamp(t time.Time)      { d.Timestamp = t }
func (d *Diagnostic) SetMetadata(key, value string) { d.Metadata[key] = value }
