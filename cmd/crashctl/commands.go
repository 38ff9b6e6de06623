// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/wingedpig/crashscan/internal/crashes"
	"github.com/wingedpig/crashscan/internal/crashlog"
	"github.com/wingedpig/crashscan/pkg/client"
)

// errCheckFailed is returned by check when a file did not parse. The
// details have already been printed.
var errCheckFailed = errors.New("check failed")

// newBackendFunc is replaced in tests.
var newBackendFunc = newBackend

func runList(cmd *cobra.Command, args []string) error {
	b, err := newBackendFunc()
	if err != nil {
		return err
	}

	opts := client.ListOptions{
		Since:      flagSince,
		Identifier: flagIdentifier,
		Process:    flagProcess,
		Type:       flagType,
		Limit:      flagLimit,
	}
	if cmd.Flags().Changed("pid") {
		pid := flagPID
		opts.ProcessID = &pid
	}
	if cmd.Flags().Changed("parent-pid") {
		ppid := flagParentPID
		opts.ParentProcessID = &ppid
	}

	crashes, err := b.List(cmd.Context(), opts)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if flagJSON {
		if crashes == nil {
			crashes = []client.Crash{}
		}
		return printJSON(w, crashes)
	}
	printCrashTable(w, crashes)
	return nil
}

func runNewest(cmd *cobra.Command, args []string) error {
	b, err := newBackendFunc()
	if err != nil {
		return err
	}

	crash, err := b.Newest(cmd.Context(), flagSince)
	if err != nil {
		if isNotFound(err) {
			if flagJSON {
				return printJSON(cmd.OutOrStdout(), nil)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "No crashes found")
			return nil
		}
		return err
	}

	if flagJSON {
		return printJSON(cmd.OutOrStdout(), crash)
	}
	printCrashDetail(cmd.OutOrStdout(), crash)
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	b, err := newBackendFunc()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if flagDiagnostic {
		diag, err := b.Diagnostic(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(w, diag)
		}
		printDiagnostic(w, diag)
		return nil
	}

	crash, err := b.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if flagJSON {
		return printJSON(w, crash)
	}
	printCrashDetail(w, crash)
	return nil
}

func runParse(cmd *cobra.Command, args []string) error {
	path, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	b, err := newBackendFunc()
	if err != nil {
		return err
	}

	crash, err := b.Parse(cmd.Context(), path, data)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(cmd.OutOrStdout(), crash)
	}
	printCrashDetail(cmd.OutOrStdout(), crash)
	return nil
}

// checkResult is the JSON form of one check line.
type checkResult struct {
	Path  string `json:"path"`
	OK    bool   `json:"ok"`
	Kind  string `json:"kind,omitempty"`
	Error string `json:"error,omitempty"`
}

// runCheck parses each file locally with the configured classifier.
func runCheck(cmd *cobra.Command, args []string) error {
	parser := crashlog.NewParser(nil)
	if cfg, err := loadConfig(); err == nil {
		parser = crashlog.NewParser(crashlog.NewClassifier(cfg.Classifier.Rules()))
	}

	results := make([]checkResult, 0, len(args))
	failed := false
	for _, path := range args {
		_, err := parser.ParseFile(path)
		r := checkResult{Path: path, OK: err == nil}
		if err != nil {
			failed = true
			r.Kind = crashlog.FailureKind(err)
			r.Error = err.Error()
		}
		results = append(results, r)
	}

	w := cmd.OutOrStdout()
	if flagJSON {
		if err := printJSON(w, results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.OK {
				fmt.Fprintf(w, "%s  %s\n", okStyle.Render("ok  "), r.Path)
			} else {
				kind := r.Kind
				if kind == "" {
					kind = r.Error
				}
				fmt.Fprintf(w, "%s  %s (%s)\n", failStyle.Render("FAIL"), r.Path, strings.ReplaceAll(kind, "_", " "))
			}
		}
	}

	if failed {
		return errCheckFailed
	}
	return nil
}

func isNotFound(err error) bool {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == client.CodeNotFound
	}
	return errors.Is(err, crashes.ErrNotFound)
}
