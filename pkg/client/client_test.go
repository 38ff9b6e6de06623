// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// mockServer creates a test server that returns the given response.
func mockServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(handler)
}

// apiHandler creates a handler that returns a standard API response.
func apiHandler(data interface{}, statusCode int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)

		resp := map[string]interface{}{
			"data": data,
		}
		json.NewEncoder(w).Encode(resp)
	}
}

// apiErrorHandler creates a handler that returns an API error.
func apiErrorHandler(code, message string, statusCode int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)

		resp := map[string]interface{}{
			"error": map[string]string{
				"code":    code,
				"message": message,
			},
		}
		json.NewEncoder(w).Encode(resp)
	}
}

func sampleCrash() Crash {
	return Crash{
		Name:        "MyApp_2024-01-01.crash",
		Path:        "/reports/MyApp_2024-01-01.crash",
		Identifier:  "com.example.MyApp",
		ProcessName: "MyApp",
		ProcessID:   100,
		Timestamp:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ProcessType: []string{"application"},
		Format:      "crash",
	}
}

func TestNew(t *testing.T) {
	c := New("http://localhost:1357")

	if c.BaseURL() != "http://localhost:1357" {
		t.Errorf("BaseURL() = %q, want %q", c.BaseURL(), "http://localhost:1357")
	}

	if c.Version() != LatestVersion {
		t.Errorf("Version() = %q, want %q", c.Version(), LatestVersion)
	}

	if c.Crashes == nil {
		t.Error("Crashes client is nil")
	}
}

func TestNewWithOptions(t *testing.T) {
	t.Run("WithVersion", func(t *testing.T) {
		c := New("http://localhost:1357", WithVersion("2026-01-01"))
		if c.Version() != "2026-01-01" {
			t.Errorf("Version() = %q, want %q", c.Version(), "2026-01-01")
		}
	})

	t.Run("WithTimeout", func(t *testing.T) {
		c := New("http://localhost:1357", WithTimeout(60*time.Second))
		if c.httpClient.Timeout != 60*time.Second {
			t.Errorf("Timeout = %v, want %v", c.httpClient.Timeout, 60*time.Second)
		}
	})

	t.Run("WithHTTPClient", func(t *testing.T) {
		customClient := &http.Client{Timeout: 10 * time.Second}
		c := New("http://localhost:1357", WithHTTPClient(customClient))
		if c.httpClient != customClient {
			t.Error("custom HTTP client not used")
		}
	})

	t.Run("trailing slash removed", func(t *testing.T) {
		c := New("http://localhost:1357/")
		if c.BaseURL() != "http://localhost:1357" {
			t.Errorf("BaseURL() = %q, want trailing slash removed", c.BaseURL())
		}
	})
}

func TestAPIError(t *testing.T) {
	err := &APIError{
		Code:    CodeNotFound,
		Message: "crash not found",
	}

	expected := "NOT_FOUND: crash not found"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}

	err2 := &APIError{
		Message: "Something went wrong",
	}
	if err2.Error() != "Something went wrong" {
		t.Errorf("Error() = %q, want %q", err2.Error(), "Something went wrong")
	}
}

func TestVersionHeader(t *testing.T) {
	var receivedVersion string
	server := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		receivedVersion = r.Header.Get(VersionHeader)
		apiHandler([]Crash{}, http.StatusOK)(w, r)
	})
	defer server.Close()

	c := New(server.URL, WithVersion("2026-10-14"))
	_, _ = c.Crashes.List(context.Background(), ListOptions{})

	if receivedVersion != "2026-10-14" {
		t.Errorf("%s header = %q, want %q", VersionHeader, receivedVersion, "2026-10-14")
	}
}

func TestCrashClient_List(t *testing.T) {
	var receivedPath, receivedQuery string
	server := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		receivedPath = r.URL.Path
		receivedQuery = r.URL.RawQuery
		apiHandler([]Crash{sampleCrash()}, http.StatusOK)(w, r)
	})
	defer server.Close()

	c := New(server.URL)
	pid := 100
	crashes, err := c.Crashes.List(context.Background(), ListOptions{
		Since:     "2d",
		ProcessID: &pid,
		Process:   "MyApp",
		Type:      "application",
		Limit:     10,
	})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if receivedPath != "/api/v1/crashes" {
		t.Errorf("path = %q, want /api/v1/crashes", receivedPath)
	}
	expectedQuery := "limit=10&pid=100&process=MyApp&since=2d&type=application"
	if receivedQuery != expectedQuery {
		t.Errorf("query = %q, want %q", receivedQuery, expectedQuery)
	}

	if len(crashes) != 1 {
		t.Fatalf("len(crashes) = %d, want 1", len(crashes))
	}
	if crashes[0].ProcessID != 100 {
		t.Errorf("ProcessID = %d, want 100", crashes[0].ProcessID)
	}
	if !crashes[0].HasType("application") {
		t.Errorf("ProcessType = %v, want application", crashes[0].ProcessType)
	}
}

func TestCrashClient_List_NoOptions(t *testing.T) {
	var receivedURI string
	server := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		receivedURI = r.URL.RequestURI()
		apiHandler([]Crash{}, http.StatusOK)(w, r)
	})
	defer server.Close()

	c := New(server.URL)
	crashes, err := c.Crashes.List(context.Background(), ListOptions{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if receivedURI != "/api/v1/crashes" {
		t.Errorf("URI = %q, want /api/v1/crashes", receivedURI)
	}
	if len(crashes) != 0 {
		t.Errorf("len(crashes) = %d, want 0", len(crashes))
	}
}

func TestCrashClient_Get(t *testing.T) {
	var receivedPath string
	server := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		receivedPath = r.URL.Path
		apiHandler(sampleCrash(), http.StatusOK)(w, r)
	})
	defer server.Close()

	c := New(server.URL)
	crash, err := c.Crashes.Get(context.Background(), "MyApp_2024-01-01.crash")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if receivedPath != "/api/v1/crashes/MyApp_2024-01-01.crash" {
		t.Errorf("path = %q", receivedPath)
	}
	if crash.Identifier != "com.example.MyApp" {
		t.Errorf("Identifier = %q, want com.example.MyApp", crash.Identifier)
	}
}

func TestCrashClient_Get_Subdirectory(t *testing.T) {
	var receivedPath string
	server := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		receivedPath = r.URL.EscapedPath()
		apiHandler(sampleCrash(), http.StatusOK)(w, r)
	})
	defer server.Close()

	c := New(server.URL)
	if _, err := c.Crashes.Get(context.Background(), "My App/My App.crash"); err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if receivedPath != "/api/v1/crashes/My%20App/My%20App.crash" {
		t.Errorf("path = %q", receivedPath)
	}
}

func TestCrashClient_Get_NotFound(t *testing.T) {
	server := mockServer(t, apiErrorHandler(CodeNotFound, "crash not found: x", http.StatusNotFound))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Crashes.Get(context.Background(), "x")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Code != CodeNotFound {
		t.Errorf("Code = %q, want %q", apiErr.Code, CodeNotFound)
	}
}

func TestCrashClient_Newest(t *testing.T) {
	var receivedQuery string
	server := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		receivedQuery = r.URL.RawQuery
		apiHandler(sampleCrash(), http.StatusOK)(w, r)
	})
	defer server.Close()

	c := New(server.URL)
	crash, err := c.Crashes.Newest(context.Background(), "6:30am")
	if err != nil {
		t.Fatalf("Newest() error = %v", err)
	}
	if receivedQuery != "since=6%3A30am" {
		t.Errorf("query = %q, want since=6%%3A30am", receivedQuery)
	}
	if crash.Name != "MyApp_2024-01-01.crash" {
		t.Errorf("Name = %q", crash.Name)
	}
}

func TestCrashClient_Diagnostic(t *testing.T) {
	var receivedPath string
	server := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		receivedPath = r.URL.Path
		apiHandler(Diagnostic{
			ShortName: "MyApp_2024-01-01.crash",
			FileType:  "crash",
			Metadata:  map[string]string{"process_id": "100"},
		}, http.StatusOK)(w, r)
	})
	defer server.Close()

	c := New(server.URL)
	diag, err := c.Crashes.Diagnostic(context.Background(), "MyApp_2024-01-01.crash")
	if err != nil {
		t.Fatalf("Diagnostic() error = %v", err)
	}
	if receivedPath != "/api/v1/crashes/MyApp_2024-01-01.crash/diagnostic" {
		t.Errorf("path = %q", receivedPath)
	}
	if diag.Metadata["process_id"] != "100" {
		t.Errorf("Metadata[process_id] = %q, want 100", diag.Metadata["process_id"])
	}
}

func TestCrashClient_Parse(t *testing.T) {
	var receivedBody, receivedName, receivedMethod string
	server := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		receivedMethod = r.Method
		receivedName = r.URL.Query().Get("name")
		body, _ := io.ReadAll(r.Body)
		receivedBody = string(body)
		apiHandler(sampleCrash(), http.StatusOK)(w, r)
	})
	defer server.Close()

	c := New(server.URL)
	_, err := c.Crashes.Parse(context.Background(), "upload.crash", []byte("Process: MyApp [100]"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if receivedMethod != http.MethodPost {
		t.Errorf("method = %q, want POST", receivedMethod)
	}
	if receivedName != "upload.crash" {
		t.Errorf("name = %q, want upload.crash", receivedName)
	}
	if receivedBody != "Process: MyApp [100]" {
		t.Errorf("body = %q", receivedBody)
	}
}

func TestCrashClient_Parse_Error(t *testing.T) {
	server := mockServer(t, apiErrorHandler(CodeNotACrashLog, "upload.crash: not a crash log", http.StatusUnprocessableEntity))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Crashes.Parse(context.Background(), "upload.crash", []byte("hello"))

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Code != CodeNotACrashLog {
		t.Errorf("err = %v, want %s", err, CodeNotACrashLog)
	}
}

func TestContextCancellation(t *testing.T) {
	server := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		apiHandler([]Crash{}, http.StatusOK)(w, r)
	})
	defer server.Close()

	c := New(server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	_, err := c.Crashes.List(ctx, ListOptions{})
	if err == nil {
		t.Error("expected error due to cancelled context")
	}
}

func TestCrashClient_InvalidJSON(t *testing.T) {
	server := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"data": invalid json}`))
	})
	defer server.Close()

	c := New(server.URL)
	if _, err := c.Crashes.List(context.Background(), ListOptions{}); err == nil {
		t.Error("expected error for invalid JSON response")
	}
}

func TestCrashClient_InvalidData(t *testing.T) {
	server := mockServer(t, apiHandler("not an object", http.StatusOK))
	defer server.Close()

	c := New(server.URL)
	if _, err := c.Crashes.Get(context.Background(), "x"); err == nil {
		t.Error("expected error for invalid data type")
	}
}

func TestNonEnvelopeError(t *testing.T) {
	server := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})
	defer server.Close()

	c := New(server.URL)
	if _, err := c.Crashes.List(context.Background(), ListOptions{}); err == nil {
		t.Error("expected error for non-envelope error response")
	}
}
