// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package crashlog

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// DiagnosticBuilder is populated by Record.ToDiagnostic. The diagnostic
// type it builds belongs to the caller.
type DiagnosticBuilder interface {
	SetShortName(name string)
	SetFileType(fileType string)
	SetPath(path string)
	SetTimestamp(t time.Time)
	SetMetadata(key, value string)
}

// ToDiagnostic copies the record's fields into b.
func (r Record) ToDiagnostic(b DiagnosticBuilder) {
	b.SetShortName(r.Name)
	b.SetFileType(strings.TrimPrefix(filepath.Ext(r.Path), "."))
	b.SetPath(r.Path)
	b.SetTimestamp(r.Timestamp)

	b.SetMetadata("identifier", r.Identifier)
	b.SetMetadata("process_name", r.ProcessName)
	b.SetMetadata("process_id", strconv.Itoa(r.ProcessID))
	if r.ParentProcessName != "" {
		b.SetMetadata("parent_process_name", r.ParentProcessName)
		b.SetMetadata("parent_process_id", strconv.Itoa(r.ParentProcessID))
	}
	if r.ExecutablePath != "" {
		b.SetMetadata("executable_path", r.ExecutablePath)
	}
	b.SetMetadata("process_type", r.ProcessType.String())
}
