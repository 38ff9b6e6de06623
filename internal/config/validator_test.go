// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.Reports.Dir = "/tmp/reports"
	ApplyDefaults(cfg)
	return cfg
}

func TestValidator_Validate_ValidConfig(t *testing.T) {
	v := NewValidator()
	assert.NoError(t, v.Validate(validConfig()))
}

func TestValidator_Validate_Fields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"port negative", func(c *Config) { c.Server.Port = -1 }, "server.port"},
		{"tls cert without key", func(c *Config) { c.Server.TLSCert = "~/cert.pem" }, "server.tls_cert"},
		{"empty dir", func(c *Config) { c.Reports.Dir = "" }, "reports.dir"},
		{"extension without dot", func(c *Config) { c.Reports.Extensions = []string{"crash"} }, "reports.extensions[0]"},
		{"bare dot extension", func(c *Config) { c.Reports.Extensions = []string{".ips", "."} }, "reports.extensions[1]"},
		{"negative depth", func(c *Config) { c.Reports.MaxDepth = intPtr(-1) }, "reports.max_depth"},
		{"negative workers", func(c *Config) { c.Reports.Workers = -2 }, "reports.workers"},
		{"bad lookback", func(c *Config) { c.Reports.Lookback = "soon" }, "reports.lookback"},
		{"negative lookback", func(c *Config) { c.Reports.Lookback = "-1h" }, "reports.lookback"},
		{"bad agent glob", func(c *Config) { c.Classifier.AgentNames = []string{"[Agent"} }, "classifier.agent_names[0]"},
		{"empty system path", func(c *Config) { c.Classifier.SystemPaths = []string{""} }, "classifier.system_paths[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := NewValidator().Validate(cfg)
			require.Error(t, err)

			verr, ok := err.(*ValidationError)
			require.True(t, ok)
			var fields []string
			for _, fe := range verr.Errors {
				fields = append(fields, fe.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestValidator_Validate_DurationFormats(t *testing.T) {
	for _, d := range []string{"30m", "24h", "7d", "1h30m"} {
		t.Run(d, func(t *testing.T) {
			cfg := validConfig()
			cfg.Reports.Lookback = d
			assert.NoError(t, NewValidator().Validate(cfg))
		})
	}
}

func TestValidator_Validate_CollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 99999
	cfg.Reports.Workers = -1

	err := NewValidator().Validate(cfg)
	require.Error(t, err)
	verr := err.(*ValidationError)
	assert.Len(t, verr.Errors, 2)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{}
	err.Add("field1", "error1")
	err.Add("field2", "error2")

	msg := err.Error()
	assert.Contains(t, msg, "field1: error1")
	assert.Contains(t, msg, "field2: error2")
}

func TestValidationError_IsEmpty(t *testing.T) {
	err := &ValidationError{}
	assert.True(t, err.IsEmpty())

	err.Add("field", "message")
	assert.False(t, err.IsEmpty())
}
