// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/wingedpig/crashscan/internal/api/version"
	"github.com/wingedpig/crashscan/internal/crashes"
	"github.com/wingedpig/crashscan/internal/crashlog"
	"github.com/wingedpig/crashscan/internal/timearg"
)

// MaxParseBody is the largest report accepted by the parse endpoint.
const MaxParseBody = 16 << 20

// CrashSource answers crash queries.
type CrashSource interface {
	List(ctx context.Context, q crashes.Query) ([]crashlog.Record, error)
	Get(ctx context.Context, name string) (*crashlog.Record, error)
	Newest(ctx context.Context, since time.Time) (*crashlog.Record, error)
	Diagnostic(ctx context.Context, name string) (*crashes.Diagnostic, error)
	Parse(name string, data []byte) (crashlog.Record, error)
}

// CrashesHandler handles crash-related API requests.
type CrashesHandler struct {
	source CrashSource
	now    func() time.Time
}

// NewCrashesHandler creates a new crashes handler.
func NewCrashesHandler(source CrashSource) *CrashesHandler {
	return &CrashesHandler{source: source, now: time.Now}
}

// List returns the crashes matching the query parameters, newest first.
// GET /api/v1/crashes?since=&until=&pid=&parent_pid=&identifier=&name=&process=&type=&limit=
func (h *CrashesHandler) List(w http.ResponseWriter, r *http.Request) {
	q, err := h.parseQuery(r.URL.Query())
	if err != nil {
		WriteError(w, http.StatusBadRequest, ErrBadRequest, err.Error())
		return
	}

	records, err := h.source.List(r.Context(), q)
	if err != nil {
		writeScanError(w, err)
		return
	}
	if records == nil {
		records = []crashlog.Record{}
	}

	data := version.Transform(version.FromContext(r.Context()), "crashes.list", records)
	WriteList(w, http.StatusOK, data, len(records))
}

// Newest returns the most recent crash.
// GET /api/v1/crashes/newest?since=
func (h *CrashesHandler) Newest(w http.ResponseWriter, r *http.Request) {
	var since time.Time
	if s := r.URL.Query().Get("since"); s != "" {
		t, err := timearg.Parse(s, h.now())
		if err != nil {
			WriteError(w, http.StatusBadRequest, ErrBadRequest, err.Error())
			return
		}
		since = t
	}

	rec, err := h.source.Newest(r.Context(), since)
	if err != nil {
		writeScanError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, version.Transform(version.FromContext(r.Context()), "crashes.get", rec))
}

// Get returns a crash by report file name.
// GET /api/v1/crashes/{name}
func (h *CrashesHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	rec, err := h.source.Get(r.Context(), name)
	if err != nil {
		writeScanError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, version.Transform(version.FromContext(r.Context()), "crashes.get", rec))
}

// Diagnostic returns a crash packaged for a diagnostic bundle.
// GET /api/v1/crashes/{name}/diagnostic
func (h *CrashesHandler) Diagnostic(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	diag, err := h.source.Diagnostic(r.Context(), name)
	if err != nil {
		writeScanError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, version.Transform(version.FromContext(r.Context()), "crashes.diagnostic", diag))
}

// Parse parses the request body as a crash report.
// POST /api/v1/parse?name=
func (h *CrashesHandler) Parse(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		WriteError(w, http.StatusBadRequest, ErrBadRequest, "name is required")
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, MaxParseBody+1))
	if err != nil {
		WriteError(w, http.StatusBadRequest, ErrBadRequest, "failed to read body: "+err.Error())
		return
	}
	if len(data) > MaxParseBody {
		WriteError(w, http.StatusRequestEntityTooLarge, ErrBadRequest, "report too large")
		return
	}

	rec, err := h.source.Parse(name, data)
	if err != nil {
		writeParseError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, version.Transform(version.FromContext(r.Context()), "crashes.parse", rec))
}

func (h *CrashesHandler) parseQuery(v url.Values) (crashes.Query, error) {
	var q crashes.Query

	if s := v.Get("since"); s != "" {
		t, err := timearg.Parse(s, h.now())
		if err != nil {
			return q, fmt.Errorf("since: %w", err)
		}
		q.Since = t
	}
	if s := v.Get("until"); s != "" {
		t, err := timearg.Parse(s, h.now())
		if err != nil {
			return q, fmt.Errorf("until: %w", err)
		}
		q.Until = t
	}
	if s := v.Get("pid"); s != "" {
		pid, err := strconv.Atoi(s)
		if err != nil {
			return q, fmt.Errorf("pid: invalid number %q", s)
		}
		q.ProcessID = &pid
	}
	if s := v.Get("parent_pid"); s != "" {
		pid, err := strconv.Atoi(s)
		if err != nil {
			return q, fmt.Errorf("parent_pid: invalid number %q", s)
		}
		q.ParentProcessID = &pid
	}
	if s := v.Get("type"); s != "" {
		pt, err := crashlog.ParseProcessType(s)
		if err != nil {
			return q, fmt.Errorf("type: %w", err)
		}
		q.Type = pt
	}
	if s := v.Get("limit"); s != "" {
		limit, err := strconv.Atoi(s)
		if err != nil || limit < 0 {
			return q, fmt.Errorf("limit: invalid number %q", s)
		}
		q.Limit = limit
	}
	q.Identifier = v.Get("identifier")
	q.Name = v.Get("name")
	q.ProcessName = v.Get("process")

	return q, nil
}

// writeScanError maps manager errors to responses.
func writeScanError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, crashes.ErrNotFound):
		WriteError(w, http.StatusNotFound, ErrNotFound, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		WriteError(w, http.StatusServiceUnavailable, ErrScanError, err.Error())
	case errors.Is(err, crashlog.ErrIO):
		WriteError(w, http.StatusInternalServerError, ErrScanError, err.Error())
	default:
		WriteError(w, http.StatusInternalServerError, ErrInternalError, err.Error())
	}
}

// writeParseError maps parse failures to their error codes.
func writeParseError(w http.ResponseWriter, err error) {
	var details map[string]interface{}
	var perr *crashlog.ParseError
	if errors.As(err, &perr) && perr.Field != "" {
		details = map[string]interface{}{"field": perr.Field}
	}

	switch crashlog.FailureKind(err) {
	case "not_a_crash_log":
		WriteErrorWithDetails(w, http.StatusUnprocessableEntity, ErrNotACrashLog, err.Error(), details)
	case "missing_field":
		WriteErrorWithDetails(w, http.StatusUnprocessableEntity, ErrMissingField, err.Error(), details)
	case "malformed_date":
		WriteErrorWithDetails(w, http.StatusUnprocessableEntity, ErrMalformedDate, err.Error(), details)
	default:
		WriteError(w, http.StatusInternalServerError, ErrInternalError, err.Error())
	}
}
