// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package timearg parses the "since" arguments accepted by the CLI and API.
package timearg

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	relativeRe = regexp.MustCompile(`^(\d+)([smhdw])$`)
	clock12Re  = regexp.MustCompile(`^(\d{1,2}):(\d{2})(am|pm)$`)
	clock24Re  = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
)

// Parse parses s relative to now.
// Supported formats:
//   - Relative: 1h, 30m, 2d, 1w (hours, minutes, days, weeks ago)
//   - Clock time: 6:00am, 6:30pm, 14:00, 14:30 (today)
//   - ISO timestamp: 2024-01-15T10:30:00Z, 2024-01-15T10:30:00, 2024-01-15
func Parse(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty time argument")
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", s, now.Location()); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", s, now.Location()); err == nil {
		return t, nil
	}

	if t, ok := parseClockTime(s, now); ok {
		return t, nil
	}

	matches := relativeRe.FindStringSubmatch(s)
	if matches == nil {
		return time.Time{}, fmt.Errorf("invalid time format: %q (use e.g., 1h, 2d, 6:30am, or ISO timestamp)", s)
	}

	value, err := strconv.Atoi(matches[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time format: %q", s)
	}

	var unit time.Duration
	switch matches[2] {
	case "s":
		unit = time.Second
	case "m":
		unit = time.Minute
	case "h":
		unit = time.Hour
	case "d":
		unit = 24 * time.Hour
	case "w":
		unit = 7 * 24 * time.Hour
	}

	return now.Add(-time.Duration(value) * unit), nil
}

// parseClockTime parses clock times like "6:00am", "6:30pm", "14:00"
// and returns that time on now's date.
func parseClockTime(s string, now time.Time) (time.Time, bool) {
	s = strings.ToLower(s)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if matches := clock12Re.FindStringSubmatch(s); matches != nil {
		hour, _ := strconv.Atoi(matches[1])
		minute, _ := strconv.Atoi(matches[2])

		if hour < 1 || hour > 12 || minute > 59 {
			return time.Time{}, false
		}

		// Convert to 24-hour
		if matches[3] == "am" {
			if hour == 12 {
				hour = 0
			}
		} else if hour != 12 {
			hour += 12
		}

		return today.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute), true
	}

	if matches := clock24Re.FindStringSubmatch(s); matches != nil {
		hour, _ := strconv.Atoi(matches[1])
		minute, _ := strconv.Atoi(matches[2])

		if hour > 23 || minute > 59 {
			return time.Time{}, false
		}

		return today.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute), true
	}

	return time.Time{}, false
}
