// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package version implements date-based API versioning for the crashscan API.
//
// Clients send the version in the Crashscan-Version header. Requests without
// the header get LatestVersion. A breaking change adds a new version constant,
// moves LatestVersion, and registers a transformer that maps new response
// data back to the old shape.
package version

import "context"

// Version constants.
const (
	// Version20261014 is the initial API version.
	Version20261014 = "2026-10-14"
)

// LatestVersion is the current default API version.
var LatestVersion = Version20261014

// Header is the HTTP header used to specify the API version.
const Header = "Crashscan-Version"

type contextKey string

const versionKey contextKey = "api-version"

// FromContext returns the API version from the context.
// Returns LatestVersion if not set.
func FromContext(ctx context.Context) string {
	v, ok := ctx.Value(versionKey).(string)
	if !ok || v == "" {
		return LatestVersion
	}
	return v
}

// WithContext returns a new context with the API version set.
func WithContext(ctx context.Context, version string) context.Context {
	return context.WithValue(ctx, versionKey, version)
}
