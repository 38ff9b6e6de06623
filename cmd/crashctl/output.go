// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/wingedpig/crashscan/pkg/client"
)

const timeLayout = "2006-01-02 15:04:05 -0700"

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))

	typeStyles = map[string]lipgloss.Style{
		"system":      lipgloss.NewStyle().Foreground(lipgloss.Color("62")),
		"application": lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		"agent":       lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	}
)

func printJSON(w io.Writer, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// typeLabel joins the process type names, colouring each one.
func typeLabel(types []string) string {
	if len(types) == 0 {
		return "none"
	}
	parts := make([]string, len(types))
	for i, t := range types {
		if style, ok := typeStyles[t]; ok {
			parts[i] = style.Render(t)
		} else {
			parts[i] = t
		}
	}
	return strings.Join(parts, "|")
}

// truncate shortens s to at most n runes, marking the cut with "..".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-2]) + ".."
}

func printCrashTable(w io.Writer, crashes []client.Crash) {
	if len(crashes) == 0 {
		fmt.Fprintln(w, "No crashes found")
		return
	}

	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-25s %-20s %-7s %-30s %-30s %s",
		"TIME", "PROCESS", "PID", "IDENTIFIER", "NAME", "TYPE")))
	for _, c := range crashes {
		// Pad plain text before styling so ANSI codes do not skew columns
		fmt.Fprintf(w, "%-25s %-20s %-7d %-30s %-30s %s\n",
			c.Timestamp.Format(timeLayout),
			truncate(c.ProcessName, 20),
			c.ProcessID,
			truncate(c.Identifier, 30),
			truncate(c.Name, 30),
			typeLabel(c.ProcessType),
		)
	}
}

func printCrashDetail(w io.Writer, c *client.Crash) {
	field := func(label, value string) {
		if value != "" {
			fmt.Fprintf(w, "  %s %s\n", labelStyle.Render(fmt.Sprintf("%-12s", label+":")), value)
		}
	}

	fmt.Fprintln(w, headerStyle.Render("Crash: "+c.Name))
	field("Process", fmt.Sprintf("%s [%d]", c.ProcessName, c.ProcessID))
	if c.ParentProcessName != "" {
		field("Parent", fmt.Sprintf("%s [%d]", c.ParentProcessName, c.ParentProcessID))
	}
	field("Time", c.Timestamp.Format(timeLayout))
	field("Type", typeLabel(c.ProcessType))
	field("Identifier", c.Identifier)
	field("Incident", c.IncidentID)
	field("Executable", c.ExecutablePath)
	field("OS Version", c.OSVersion)
	field("Format", c.Format)
	field("Path", c.Path)
}

func printDiagnostic(w io.Writer, d *client.Diagnostic) {
	fmt.Fprintln(w, headerStyle.Render("Diagnostic: "+d.ShortName))
	fmt.Fprintf(w, "  %s %s\n", labelStyle.Render(fmt.Sprintf("%-12s", "File type:")), d.FileType)
	fmt.Fprintf(w, "  %s %s\n", labelStyle.Render(fmt.Sprintf("%-12s", "Path:")), d.Path)
	fmt.Fprintf(w, "  %s %s\n", labelStyle.Render(fmt.Sprintf("%-12s", "Time:")), d.Timestamp.Format(timeLayout))

	keys := make([]string, 0, len(d.Metadata))
	for k := range d.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s %s\n", labelStyle.Render(fmt.Sprintf("%-20s", k+":")), d.Metadata[k])
	}
}
