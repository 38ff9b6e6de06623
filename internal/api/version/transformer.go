// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package version

// Transform converts response data for endpoint (e.g., "crashes.list") to
// the shape a client pinned to version expects. Handlers route every
// response through it. Only LatestVersion exists, so data is returned
// unchanged.
func Transform(version, endpoint string, data interface{}) interface{} {
	return data
}
