// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package crashlog

import "time"

// Predicate is a filter over records.
type Predicate func(Record) bool

// ByProcessID matches records of the process with the given pid.
func ByProcessID(pid int) Predicate {
	return func(r Record) bool { return r.ProcessID == pid }
}

// ByParentProcessID matches records whose parent has the given pid.
func ByParentProcessID(pid int) Predicate {
	return func(r Record) bool { return r.ParentProcessID == pid }
}

// ByProcessName matches records of processes with the given name.
func ByProcessName(name string) Predicate {
	return func(r Record) bool { return r.ProcessName == name }
}

// NewerThan matches records with a timestamp at or after t.
func NewerThan(t time.Time) Predicate {
	return func(r Record) bool { return !r.Timestamp.Before(t) }
}

// OlderThan matches records with a timestamp strictly before t.
func OlderThan(t time.Time) Predicate {
	return func(r Record) bool { return r.Timestamp.Before(t) }
}

// ByIdentifier matches records with the given identifier.
func ByIdentifier(id string) Predicate {
	return func(r Record) bool { return r.Identifier == id }
}

// ByName matches the record with the given name.
func ByName(name string) Predicate {
	return func(r Record) bool { return r.Name == name }
}

// OfType matches records that have any of the bits in t set.
func OfType(t ProcessType) Predicate {
	return func(r Record) bool { return r.ProcessType&t != 0 }
}

// And matches when every predicate matches. And() matches everything.
func And(preds ...Predicate) Predicate {
	return func(r Record) bool {
		for _, p := range preds {
			if p != nil && !p(r) {
				return false
			}
		}
		return true
	}
}

// Or matches when any predicate matches. Or() matches nothing.
func Or(preds ...Predicate) Predicate {
	return func(r Record) bool {
		for _, p := range preds {
			if p != nil && p(r) {
				return true
			}
		}
		return false
	}
}

// Not inverts p.
func Not(p Predicate) Predicate {
	return func(r Record) bool { return !p(r) }
}

// Filter returns the records matching all preds, in their original order.
func Filter(records []Record, preds ...Predicate) []Record {
	match := And(preds...)
	var result []Record
	for _, r := range records {
		if match(r) {
			result = append(result, r)
		}
	}
	return result
}
