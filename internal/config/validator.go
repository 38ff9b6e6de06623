// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"path"
	"strings"
	"time"
)

// Validator validates configuration against schema rules.
type Validator struct{}

// NewValidator creates a new config validator.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidationError contains multiple validation failures.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single field validation error.
type FieldError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	var msgs []string
	for _, fe := range e.Errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return strings.Join(msgs, "; ")
}

// IsEmpty returns true if there are no validation errors.
func (e *ValidationError) IsEmpty() bool {
	return len(e.Errors) == 0
}

// Add adds a field error.
func (e *ValidationError) Add(field, message string) {
	e.Errors = append(e.Errors, FieldError{Field: field, Message: message})
}

// Validate checks configuration validity.
func (v *Validator) Validate(cfg *Config) error {
	errs := &ValidationError{}

	v.validateServer(cfg, errs)
	v.validateReports(cfg, errs)
	v.validateClassifier(cfg, errs)

	if errs.IsEmpty() {
		return nil
	}
	return errs
}

func (v *Validator) validateServer(cfg *Config, errs *ValidationError) {
	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		errs.Add("server.port", "must be between 0 and 65535")
	}
	if (cfg.Server.TLSCert == "") != (cfg.Server.TLSKey == "") {
		errs.Add("server.tls_cert", "tls_cert and tls_key must be set together")
	}
}

func (v *Validator) validateReports(cfg *Config, errs *ValidationError) {
	if cfg.Reports.Dir == "" {
		errs.Add("reports.dir", "is required")
	}
	for i, ext := range cfg.Reports.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			errs.Add(fmt.Sprintf("reports.extensions[%d]", i), fmt.Sprintf("invalid extension '%s', must start with '.'", ext))
		}
	}
	if cfg.Reports.MaxDepth != nil && *cfg.Reports.MaxDepth < 0 {
		errs.Add("reports.max_depth", "must not be negative")
	}
	if cfg.Reports.Workers < 0 {
		errs.Add("reports.workers", "must not be negative")
	}
	if cfg.Reports.Lookback != "" {
		d, err := parseDurationWithDays(cfg.Reports.Lookback)
		if err != nil {
			errs.Add("reports.lookback", fmt.Sprintf("invalid duration '%s'", cfg.Reports.Lookback))
		} else if d < 0 {
			errs.Add("reports.lookback", "must not be negative")
		}
	}
}

func (v *Validator) validateClassifier(cfg *Config, errs *ValidationError) {
	for i, pattern := range cfg.Classifier.AgentNames {
		if _, err := path.Match(pattern, ""); err != nil {
			errs.Add(fmt.Sprintf("classifier.agent_names[%d]", i), fmt.Sprintf("invalid pattern '%s'", pattern))
		}
	}
	lists := map[string][]string{
		"classifier.system_paths":      cfg.Classifier.SystemPaths,
		"classifier.agent_paths":       cfg.Classifier.AgentPaths,
		"classifier.application_paths": cfg.Classifier.ApplicationPaths,
	}
	for _, field := range []string{"classifier.system_paths", "classifier.agent_paths", "classifier.application_paths"} {
		for i, p := range lists[field] {
			if p == "" {
				errs.Add(fmt.Sprintf("%s[%d]", field, i), "must not be empty")
			}
		}
	}
}

// parseDurationWithDays parses a duration string that may include days (e.g., "7d").
func parseDurationWithDays(s string) (time.Duration, error) {
	if len(s) > 1 && s[len(s)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(s, "%dd", &days); err == nil {
			return time.Duration(days) * 24 * time.Hour, nil
		}
	}
	return time.ParseDuration(s)
}
