// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package crashlog

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessType_String(t *testing.T) {
	assert.Equal(t, "none", ProcessType(0).String())
	assert.Equal(t, "system", ProcessTypeSystem.String())
	assert.Equal(t, "system|agent", (ProcessTypeSystem | ProcessTypeCustomAgent).String())
	assert.Equal(t, "system|application|agent", (ProcessTypeSystem | ProcessTypeApplication | ProcessTypeCustomAgent).String())
}

func TestProcessType_Has(t *testing.T) {
	both := ProcessTypeSystem | ProcessTypeCustomAgent
	assert.True(t, both.Has(ProcessTypeSystem))
	assert.True(t, both.Has(ProcessTypeSystem|ProcessTypeCustomAgent))
	assert.False(t, both.Has(ProcessTypeApplication))
	assert.False(t, both.Has(0))
}

func TestParseProcessType(t *testing.T) {
	tests := []struct {
		input   string
		want    ProcessType
		wantErr bool
	}{
		{"", 0, false},
		{"system", ProcessTypeSystem, false},
		{"app,agent", ProcessTypeApplication | ProcessTypeCustomAgent, false},
		{"System | Application", ProcessTypeSystem | ProcessTypeApplication, false},
		{"custom_agent", ProcessTypeCustomAgent, false},
		{"kernel", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseProcessType(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecord_JSON(t *testing.T) {
	rec := Record{
		Name:        "A.crash",
		Path:        "/r/A.crash",
		ProcessName: "MyApp",
		ProcessID:   100,
		Timestamp:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ProcessType: ProcessTypeSystem | ProcessTypeCustomAgent,
		Format:      FormatCrash,
	}

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"process_type":["system","agent"]`)
	assert.NotContains(t, string(data), "incident_id")

	var decoded Record
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, rec.ProcessType, decoded.ProcessType)
	assert.Equal(t, rec.ProcessID, decoded.ProcessID)

	data, err = json.Marshal(ProcessType(0))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}
