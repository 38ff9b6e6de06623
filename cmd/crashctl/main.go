// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

// Command crashctl lists and inspects crash reports, either by scanning a
// reports directory directly or by querying a crashd server.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.3"

// Exit codes
const (
	exitOK     = 0
	exitError  = 1
	exitFailed = 2 // check found unparsable files
)

var (
	flagDir        string
	flagAPI        string
	flagConfig     string
	flagSince      string
	flagJSON       bool
	flagPID        int
	flagParentPID  int
	flagIdentifier string
	flagProcess    string
	flagType       string
	flagLimit      int
	flagDiagnostic bool
)

var rootCmd = &cobra.Command{
	Use:   "crashctl",
	Short: "Find and inspect crash reports",
	Long: `crashctl finds crash reports and prints their metadata.

By default it scans the diagnostic reports directory directly. Pass --api to
query a running crashd server instead.

Time arguments (--since) accept relative durations (1h, 30m, 2d, 1w), clock
times (6:30am, 14:00) and ISO dates (2024-01-15, 2024-01-15T10:30:00Z).`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List crashes, newest first",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var newestCmd = &cobra.Command{
	Use:   "newest",
	Short: "Show the most recent crash",
	Args:  cobra.NoArgs,
	RunE:  runNewest,
}

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show one crash by report file name",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a crash report file and print its metadata",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

var checkCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Report whether each file is a parsable crash report",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagDir, "dir", "", "Crash reports directory to scan (default from config)")
	pf.StringVar(&flagAPI, "api", "", "crashd base URL, e.g. http://127.0.0.1:1357")
	pf.StringVar(&flagConfig, "config", "", "Path to crashscan.hjson (default: auto-detect)")
	pf.BoolVar(&flagJSON, "json", false, "Print JSON instead of a table")

	listCmd.Flags().StringVar(&flagSince, "since", "", "Only crashes at or after this time (default: configured lookback)")
	listCmd.Flags().IntVar(&flagPID, "pid", -1, "Filter by process id")
	listCmd.Flags().IntVar(&flagParentPID, "parent-pid", -1, "Filter by parent process id")
	listCmd.Flags().StringVar(&flagIdentifier, "identifier", "", "Filter by bundle identifier")
	listCmd.Flags().StringVar(&flagProcess, "process", "", "Filter by process name")
	listCmd.Flags().StringVar(&flagType, "type", "", "Filter by process type (system, application, agent)")
	listCmd.Flags().IntVar(&flagLimit, "limit", 0, "Maximum number of crashes")

	newestCmd.Flags().StringVar(&flagSince, "since", "", "Only crashes at or after this time")
	showCmd.Flags().BoolVar(&flagDiagnostic, "diagnostic", false, "Print the diagnostic bundle entry")

	rootCmd.AddCommand(listCmd, newestCmd, showCmd, parseCmd, checkCmd)
}

func main() {
	os.Exit(execute())
}

func execute() int {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errCheckFailed) {
			return exitFailed
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitError
	}
	return exitOK
}
