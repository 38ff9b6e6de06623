// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package timearg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 45, 0, 0, time.UTC)
	today := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		input    string
		expected time.Time
	}{
		// Relative durations
		{"30s", now.Add(-30 * time.Second)},
		{"5m", now.Add(-5 * time.Minute)},
		{"2h", now.Add(-2 * time.Hour)},
		{"3d", now.Add(-72 * time.Hour)},
		{"1w", now.Add(-7 * 24 * time.Hour)},
		// ISO timestamps
		{"2024-01-15T10:30:00Z", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"2024-01-15T10:30:00", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"2024-01-15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		// Clock times
		{"6:00am", today.Add(6 * time.Hour)},
		{"12:00am", today},
		{"12:30pm", today.Add(12*time.Hour + 30*time.Minute)},
		{"6:30PM", today.Add(18*time.Hour + 30*time.Minute)},
		{"14:00", today.Add(14 * time.Hour)},
		{" 9:05 ", today.Add(9*time.Hour + 5*time.Minute)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input, now)
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(got), "expected %v, got %v", tt.expected, got)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	now := time.Now()

	for _, input := range []string{"", "   ", "yesterday", "5x", "-1h", "13:00pm", "25:00", "10:75", "2024-13-01"} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input, now)
			assert.Error(t, err)
		})
	}
}
