// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package crashlog

import (
	"path"
	"strings"
)

// Rules are the path and name heuristics used by a Classifier.
// Path rules are substrings of the executable path; name rules are
// path.Match globs applied to the process name.
type Rules struct {
	SystemPaths      []string // System application and daemon locations
	AgentPaths       []string // Locations of on-demand launched helper tools
	AgentNames       []string // Process name globs of known agents
	ApplicationPaths []string // Application container locations
}

// DefaultRules returns the built-in classification rules.
func DefaultRules() Rules {
	return Rules{
		SystemPaths: []string{
			"/Platforms/iPhoneSimulator.platform/",
			"/RuntimeRoot/",
			"/System/Library/",
			"/usr/libexec/",
			"/usr/sbin/",
			"/usr/bin/",
			"/sbin/",
		},
		AgentPaths: []string{
			"/Library/PrivilegedHelperTools/",
			"/usr/local/libexec/",
			"/Agents/",
		},
		AgentNames: []string{
			"*Agent",
			"*-agent",
			"*_agent",
			"*Helper",
		},
		ApplicationPaths: []string{
			"/Containers/Bundle/Application/",
			"/Containers/Data/Application/",
			".app/",
		},
	}
}

// Classifier determines the ProcessType of a crashed process.
type Classifier struct {
	rules Rules
}

// NewClassifier creates a classifier. Empty rule lists fall back to the
// corresponding DefaultRules list.
func NewClassifier(rules Rules) *Classifier {
	def := DefaultRules()
	if len(rules.SystemPaths) == 0 {
		rules.SystemPaths = def.SystemPaths
	}
	if len(rules.AgentPaths) == 0 {
		rules.AgentPaths = def.AgentPaths
	}
	if len(rules.AgentNames) == 0 {
		rules.AgentNames = def.AgentNames
	}
	if len(rules.ApplicationPaths) == 0 {
		rules.ApplicationPaths = def.ApplicationPaths
	}
	return &Classifier{rules: rules}
}

// Rules returns the rules in effect.
func (c *Classifier) Rules() Rules {
	return c.rules
}

// Classify returns the process type flags for an executable path and process
// name. System and CustomAgent may both be set. Application is only set when
// neither of them matched and the executable is inside an application
// container. An executable matching nothing is treated as a custom agent.
func (c *Classifier) Classify(executablePath, processName string) ProcessType {
	var t ProcessType
	if containsAny(executablePath, c.rules.SystemPaths) {
		t |= ProcessTypeSystem
	}
	if containsAny(executablePath, c.rules.AgentPaths) || matchesAny(processName, c.rules.AgentNames) {
		t |= ProcessTypeCustomAgent
	}
	if t != 0 {
		return t
	}
	if containsAny(executablePath, c.rules.ApplicationPaths) {
		return ProcessTypeApplication
	}
	return ProcessTypeCustomAgent
}

func containsAny(s string, subs []string) bool {
	if s == "" {
		return false
	}
	for _, sub := range subs {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func matchesAny(name string, patterns []string) bool {
	if name == "" {
		return false
	}
	for _, p := range patterns {
		if ok, err := path.Match(p, name); err == nil && ok {
			return true
		}
	}
	return false
}
