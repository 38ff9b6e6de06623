// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package crashlog

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

// DateLayout is the timestamp format embedded in crash reports. A fractional
// second after the seconds field is accepted when parsing.
const DateLayout = "2006-01-02 15:04:05 -0700"

// Header keys of the classic text format.
const (
	KeyProcess       = "Process"
	KeyParentProcess = "Parent Process"
	KeyPath          = "Path"
	KeyIdentifier    = "Identifier"
	KeyIncident      = "Incident Identifier"
	KeyDate          = "Date/Time"
	KeyOSVersion     = "OS Version"
)

// Namespace for identifiers derived from report content.
var identifierNamespace = uuid.MustParse("6f1c7a52-3d0e-4b8a-9c55-2e4f0b9d7a13")

// Parser turns crash report bytes into Records.
type Parser struct {
	classifier *Classifier
}

// NewParser creates a parser that classifies records with c.
// A nil classifier uses DefaultRules.
func NewParser(c *Classifier) *Parser {
	if c == nil {
		c = NewClassifier(Rules{})
	}
	return &Parser{classifier: c}
}

var defaultParser = NewParser(nil)

// Parse parses data with the default parser.
func Parse(path string, data []byte) (Record, error) {
	return defaultParser.Parse(path, data)
}

// ParseFile reads and parses a file with the default parser.
func ParseFile(path string) (Record, error) {
	return defaultParser.ParseFile(path)
}

// IsParsable reports whether data looks like a crash report. It only checks
// for the required header markers and does not extract anything.
func IsParsable(data []byte) bool {
	return detect(data) != ""
}

// ParseFile reads the file at path and parses it. Read failures are
// reported as ErrIO.
func (p *Parser) ParseFile(path string) (Record, error) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, &ParseError{Path: path, Err: ErrIO, Cause: err}
	}
	return p.Parse(path, data)
}

// Parse extracts a Record from the report content. path names the report
// and becomes the record's Path; Name is its last segment.
func (p *Parser) Parse(path string, data []byte) (Record, error) {
	var (
		rec Record
		err error
	)
	switch detect(data) {
	case FormatIPS:
		header, body, _ := splitIPS(data)
		rec, err = parseIPS(path, header, body)
	case FormatCrash:
		rec, err = parseClassic(path, data)
	default:
		return Record{}, notACrashLog(path)
	}
	if err != nil {
		return Record{}, err
	}

	if path == "" {
		return Record{}, missingField(path, "path")
	}
	rec.Path = path
	rec.Name = filepath.Base(path)
	if rec.Identifier == "" {
		rec.Identifier = rec.IncidentID
	}
	if rec.Identifier == "" {
		rec.Identifier = uuid.NewSHA1(identifierNamespace, data).String()
	}
	rec.ProcessType = p.classifier.Classify(rec.ExecutablePath, rec.ProcessName)
	return rec, nil
}

// detect returns the report format of data, or "" when it is not a report.
func detect(data []byte) string {
	if len(data) == 0 || !utf8.Valid(data) {
		return ""
	}
	if _, _, ok := splitIPS(data); ok {
		return FormatIPS
	}
	if hasHeader(data, KeyProcess) && hasHeader(data, KeyDate) {
		return FormatCrash
	}
	return ""
}

// hasHeader reports whether a line of data starts with "key:".
func hasHeader(data []byte, key string) bool {
	for len(data) > 0 {
		var line []byte
		line, data, _ = bytes.Cut(data, []byte{'\n'})
		k, _, ok := bytes.Cut(bytes.TrimSpace(line), []byte{':'})
		if ok && string(bytes.TrimSpace(k)) == key {
			return true
		}
	}
	return false
}

// parseHeaders collects "Key: Value" lines. The first occurrence of a key wins.
func parseHeaders(data []byte) map[string]string {
	headers := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		k, v, ok := strings.Cut(strings.TrimSpace(line), ":")
		if !ok {
			continue
		}
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if _, seen := headers[k]; !seen {
			headers[k] = strings.TrimSpace(v)
		}
	}
	return headers
}

func parseClassic(path string, data []byte) (Record, error) {
	h := parseHeaders(data)

	name, pid, ok := splitProcess(h[KeyProcess])
	if name == "" {
		return Record{}, missingField(path, KeyProcess)
	}
	if !ok {
		return Record{}, missingField(path, "pid")
	}
	ts, err := parseDate(path, h[KeyDate])
	if err != nil {
		return Record{}, err
	}
	parentName, parentPID, _ := splitProcess(h[KeyParentProcess])

	return Record{
		Identifier:        h[KeyIdentifier],
		ExecutablePath:    h[KeyPath],
		ProcessName:       name,
		ProcessID:         pid,
		ParentProcessName: parentName,
		ParentProcessID:   parentPID,
		Timestamp:         ts,
		Format:            FormatCrash,
		IncidentID:        h[KeyIncident],
		OSVersion:         h[KeyOSVersion],
	}, nil
}

// splitProcess splits "Name [pid]". ok is false when there is no valid pid.
func splitProcess(s string) (name string, pid int, ok bool) {
	s = strings.TrimSpace(s)
	open := strings.LastIndex(s, "[")
	if open < 0 || !strings.HasSuffix(s, "]") {
		return s, 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(s[open+1 : len(s)-1]))
	if err != nil || n < 0 {
		return s, 0, false
	}
	return strings.TrimSpace(s[:open]), n, true
}

func parseDate(path, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, missingField(path, KeyDate)
	}
	ts, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, &ParseError{Path: path, Field: KeyDate, Err: ErrMalformedDate, Cause: err}
	}
	return ts, nil
}

// splitIPS splits an .ips report into its one-line JSON header and JSON body.
func splitIPS(data []byte) (header, body []byte, ok bool) {
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) == 0 || data[0] != '{' {
		return nil, nil, false
	}
	header, body, found := bytes.Cut(data, []byte{'\n'})
	if !found {
		return nil, nil, false
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return nil, nil, false
	}
	if !jsoniter.Valid(header) || !jsoniter.Valid(body) {
		return nil, nil, false
	}
	if jsoniter.Get(header, "bug_type").ValueType() == jsoniter.InvalidValue {
		return nil, nil, false
	}
	return header, body, true
}

func parseIPS(path string, headerData, bodyData []byte) (Record, error) {
	header := jsoniter.Get(headerData)
	body := jsoniter.Get(bodyData)

	name := firstNonEmpty(jsonString(body, "procName"), jsonString(header, "app_name"), jsonString(header, "name"))
	if name == "" {
		return Record{}, missingField(path, "procName")
	}
	pid, ok := jsonInt(body, "pid")
	if !ok || pid < 0 {
		return Record{}, missingField(path, "pid")
	}
	date := firstNonEmpty(jsonString(body, "captureTime"), jsonString(header, "timestamp"))
	if date == "" {
		return Record{}, missingField(path, "captureTime")
	}
	ts, err := time.Parse(DateLayout, date)
	if err != nil {
		return Record{}, &ParseError{Path: path, Field: "captureTime", Err: ErrMalformedDate, Cause: err}
	}
	parentPID, _ := jsonInt(body, "parentPid")

	return Record{
		Identifier:        firstNonEmpty(jsonString(body, "bundleInfo", "CFBundleIdentifier"), jsonString(header, "bundleID")),
		ExecutablePath:    jsonString(body, "procPath"),
		ProcessName:       name,
		ProcessID:         pid,
		ParentProcessName: jsonString(body, "parentProc"),
		ParentProcessID:   parentPID,
		Timestamp:         ts,
		Format:            FormatIPS,
		IncidentID:        firstNonEmpty(jsonString(header, "incident_id"), jsonString(body, "incident")),
		OSVersion:         jsonString(header, "os_version"),
	}, nil
}

func jsonString(a jsoniter.Any, path ...interface{}) string {
	v := a.Get(path...)
	if v.ValueType() != jsoniter.StringValue {
		return ""
	}
	return strings.TrimSpace(v.ToString())
}

func jsonInt(a jsoniter.Any, path ...interface{}) (int, bool) {
	v := a.Get(path...)
	if v.ValueType() != jsoniter.NumberValue {
		return 0, false
	}
	return v.ToInt(), true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
