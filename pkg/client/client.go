// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package client provides a Go client library for the crashscan API.
//
// crashscan serves the crash reports found in a diagnostic reports directory.
// This client library provides typed access to its endpoints.
//
// # Getting Started
//
// Create a client pointing to a crashd server:
//
//	c := client.New("http://localhost:1357")
//
//	// List crashes of one process from the last two days
//	crashes, err := c.Crashes.List(ctx, client.ListOptions{Since: "2d", Process: "MyApp"})
//
//	// Fetch the most recent crash
//	crash, err := c.Crashes.Newest(ctx, "")
//
// # API Versioning
//
// The API uses date-based versions. By default the client uses the latest
// version. Pin a version with [WithVersion]; it is sent in the
// Crashscan-Version header on each request.
//
// # Error Handling
//
// API errors are returned as *APIError values:
//
//	_, err := c.Crashes.Parse(ctx, "upload.crash", data)
//	var apiErr *client.APIError
//	if errors.As(err, &apiErr) && apiErr.Code == client.CodeNotACrashLog {
//	    ...
//	}
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is a crashscan API client.
//
// The Client is safe for concurrent use by multiple goroutines.
type Client struct {
	baseURL    string
	version    string
	httpClient *http.Client

	// Crashes provides access to crash report queries.
	Crashes *CrashClient
}

// Option configures a [Client].
type Option func(*Client)

// New creates a new API client with the given base URL and options.
//
// Any trailing slash on baseURL is removed. By default the client uses
// [LatestVersion] and a 30-second HTTP timeout.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		version: LatestVersion,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	c.Crashes = &CrashClient{c: c}

	return c
}

// WithVersion sets the API version to use for all requests.
func WithVersion(v string) Option {
	return func(c *Client) {
		c.version = v
	}
}

// WithHTTPClient sets a custom HTTP client for making requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the HTTP client timeout for all requests.
// Scanning a large reports directory can take longer than the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// Version returns the API version being used.
func (c *Client) Version() string {
	return c.version
}

// BaseURL returns the base URL of the API.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// apiResponse is the standard API response envelope.
type apiResponse struct {
	Data  json.RawMessage `json:"data"`
	Error *APIError       `json:"error"`
}

// Error codes returned by the API.
const (
	CodeNotFound         = "NOT_FOUND"
	CodeBadRequest       = "BAD_REQUEST"
	CodeInternalError    = "INTERNAL_ERROR"
	CodeScanError        = "SCAN_ERROR"
	CodeNotACrashLog     = "NOT_A_CRASH_LOG"
	CodeMissingField     = "MISSING_FIELD"
	CodeMalformedDate    = "MALFORMED_DATE"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
)

// APIError represents an error response from the API.
type APIError struct {
	// Code is a machine-readable error code (e.g., "NOT_FOUND").
	Code string `json:"code"`

	// Message is a human-readable description of the error.
	Message string `json:"message"`

	// Details contains additional error information, if available.
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// get performs a GET request to the given path.
func (c *Client) get(ctx context.Context, path string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, "", nil)
}

// postRaw performs a POST request with a raw body.
func (c *Client) postRaw(ctx context.Context, path, contentType string, body io.Reader) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, path, contentType, body)
}

// do performs an HTTP request and parses the response.
func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader) (json.RawMessage, error) {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set(VersionHeader, c.version)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return c.parseResponse(resp)
}

// parseResponse reads and parses an API response.
func (c *Client) parseResponse(resp *http.Response) (json.RawMessage, error) {
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var apiResp apiResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(respBody))
		}
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if apiResp.Error != nil {
		return nil, apiResp.Error
	}
	if resp.StatusCode >= 400 {
		return nil, &APIError{Message: fmt.Sprintf("request failed with status %d", resp.StatusCode)}
	}

	return apiResp.Data, nil
}
