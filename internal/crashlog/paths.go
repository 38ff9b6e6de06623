// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package crashlog

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultReportsDir returns the user's diagnostic reports directory,
// ~/Library/Logs/DiagnosticReports.
func DefaultReportsDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, "Library", "Logs", "DiagnosticReports"), nil
}
