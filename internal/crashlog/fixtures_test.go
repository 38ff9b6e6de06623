// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package crashlog

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const appExecutable = "/Users/dev/Library/Developer/CoreSimulator/Devices/0C7F1E4A/data/Containers/Bundle/Application/9D2B5C11/MyApp.app/MyApp"

// report describes the headers of a synthetic classic crash report.
type report struct {
	Process  string
	PID      int
	Parent   string
	PPID     int
	Path     string
	Ident    string
	Incident string
	Date     string
}

func defaultReport() report {
	return report{
		Process:  "MyApp",
		PID:      100,
		Parent:   "launchd",
		PPID:     1,
		Path:     appExecutable,
		Ident:    "com.example.MyApp",
		Incident: "1B2C3D4E-0000-4000-8000-000000000001",
		Date:     "2024-01-01 00:00:00.000 +0000",
	}
}

func (r report) String() string {
	return fmt.Sprintf(`Incident Identifier: %s
CrashReporter Key:   5f3a0c9e2b
Hardware Model:      MacBookPro16,1
Process:             %s [%d]
Path:                %s
Identifier:          %s
Version:             1.0 (1)
Code Type:           X86-64 (Native)
Parent Process:      %s [%d]

Date/Time:           %s
OS Version:          Mac OS X 14.2 (23C64)
Report Version:      12

Exception Type:        EXC_CRASH (SIGABRT)
Exception Codes:       0x0000000000000000, 0x0000000000000000

Thread 0 Crashed:: Dispatch queue: com.apple.main-thread
0   libsystem_kernel.dylib        	0x00007fff6f1a2e3e __pthread_kill + 10
1   libsystem_pthread.dylib       	0x00007fff6f261150 pthread_kill + 333
`, r.Incident, r.Process, r.PID, r.Path, r.Ident, r.Parent, r.PPID, r.Date)
}

const ipsReport = `{"app_name":"MyApp","timestamp":"2024-01-01 00:00:00.00 +0000","app_version":"1.0","bug_type":"309","os_version":"macOS 14.2 (23C64)","bundleID":"com.example.MyApp","name":"MyApp","incident_id":"2A3B4C5D-0000-4000-8000-000000000002"}
{
  "uptime" : 1000,
  "procRole" : "Foreground",
  "pid" : 200,
  "procName" : "MyApp",
  "procPath" : "` + appExecutable + `",
  "bundleInfo" : {"CFBundleShortVersionString":"1.0","CFBundleIdentifier":"com.example.MyApp"},
  "parentProc" : "launchd_sim",
  "parentPid" : 1,
  "captureTime" : "2024-01-01 00:00:00.1234 +0000",
  "incident" : "2A3B4C5D-0000-4000-8000-000000000002",
  "exception" : {"type":"EXC_CRASH","signal":"SIGABRT"}
}
`

var garbage = []byte{0xde, 0xad, 0xbe, 0xef, 0x00, 0xff, 0x13, 0x37, 'P', 'r', 'o', 'c'}

// writeReport writes content to dir/name with the given modification time.
func writeReport(t *testing.T, dir, name string, content []byte, mtime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, content, 0644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	return path
}
