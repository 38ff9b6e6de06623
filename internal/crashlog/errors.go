// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package crashlog

import (
	"errors"
	"fmt"
)

// Parse failure kinds. A *ParseError wraps exactly one of these.
var (
	ErrNotACrashLog  = errors.New("not a crash log")
	ErrMissingField  = errors.New("missing field")
	ErrMalformedDate = errors.New("malformed date")
	ErrIO            = errors.New("io failure")
)

// ParseError describes why a file did not yield a Record.
type ParseError struct {
	Path  string // File being parsed
	Field string // Header name for ErrMissingField and ErrMalformedDate
	Err   error  // One of the Err* kinds above
	Cause error  // Underlying error, if any
}

func (e *ParseError) Error() string {
	msg := e.Err.Error()
	if e.Field != "" {
		msg = fmt.Sprintf("%s %q", msg, e.Field)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	if e.Path != "" {
		return e.Path + ": " + msg
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *ParseError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// FailureKind returns a stable name for the kind of err:
// "not_a_crash_log", "missing_field", "malformed_date", "io" or "" when err
// is not a parse failure.
func FailureKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotACrashLog):
		return "not_a_crash_log"
	case errors.Is(err, ErrMissingField):
		return "missing_field"
	case errors.Is(err, ErrMalformedDate):
		return "malformed_date"
	case errors.Is(err, ErrIO):
		return "io"
	}
	return ""
}

func notACrashLog(path string) error {
	return &ParseError{Path: path, Err: ErrNotACrashLog}
}

func missingField(path, field string) error {
	return &ParseError{Path: path, Field: field, Err: ErrMissingField}
}
