// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package crashlog

import (
	"path/filepath"
	"sort"
	"strings"
)

// Set is an immutable collection of records produced by one scan.
type Set struct {
	records []Record
}

// NewSet creates a set holding a copy of records.
func NewSet(records []Record) Set {
	return Set{records: append([]Record(nil), records...)}
}

// Len returns the number of records.
func (s Set) Len() int {
	return len(s.records)
}

// Records returns a copy of the records in scan order.
func (s Set) Records() []Record {
	return append([]Record(nil), s.records...)
}

// Filter returns a new set with the records matching all preds.
func (s Set) Filter(preds ...Predicate) Set {
	return Set{records: Filter(s.records, preds...)}
}

// Find returns the record with the given name. A name containing "/" is a
// path relative to the scan root, such as "MyApp/MyApp.crash", and matches
// the report in that subdirectory. When several reports share a base name
// the one with the lexically smallest path is returned.
func (s Set) Find(name string) (Record, bool) {
	var (
		found Record
		ok    bool
	)
	for _, r := range s.records {
		if !matchesName(r, name) {
			continue
		}
		if !ok || r.Path < found.Path {
			found, ok = r, true
		}
	}
	return found, ok
}

func matchesName(r Record, name string) bool {
	if !strings.Contains(name, "/") {
		return r.Name == name
	}
	rel := strings.TrimPrefix(filepath.ToSlash(filepath.Clean(name)), "./")
	return strings.HasSuffix(filepath.ToSlash(r.Path), "/"+rel)
}

// Newest returns the record with the latest timestamp. Ties go to the
// lexically greater name so the result is deterministic.
func (s Set) Newest() (Record, bool) {
	if len(s.records) == 0 {
		return Record{}, false
	}
	newest := s.records[0]
	for _, r := range s.records[1:] {
		if r.Timestamp.After(newest.Timestamp) ||
			(r.Timestamp.Equal(newest.Timestamp) && r.Name > newest.Name) {
			newest = r
		}
	}
	return newest, true
}

// SortedByTime returns the records ordered newest first, then by name.
func (s Set) SortedByTime() []Record {
	records := s.Records()
	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].Timestamp.Equal(records[j].Timestamp) {
			return records[i].Timestamp.After(records[j].Timestamp)
		}
		return records[i].Name < records[j].Name
	})
	return records
}

// SortedByName returns the records ordered by name.
func (s Set) SortedByName() []Record {
	records := s.Records()
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Name < records[j].Name
	})
	return records
}
