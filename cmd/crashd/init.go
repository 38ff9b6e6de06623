// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/wingedpig/crashscan/internal/config"
)

const configFile = "crashscan.hjson"

// runInit handles the "crashd init" command.
func runInit(args []string) error {
	initFlags := flag.NewFlagSet("init", flag.ContinueOnError)
	dir := initFlags.String("dir", "", "Crash reports directory to write into the config")
	port := initFlags.Int("port", 0, "Server port to write into the config")
	force := initFlags.Bool("force", false, "Overwrite an existing config file")
	if err := initFlags.Parse(args); err != nil {
		return err
	}

	if _, err := os.Stat(configFile); err == nil && !*force {
		return fmt.Errorf("%s already exists; remove it first or pass -force", configFile)
	}

	cfg := config.Default()
	if *dir != "" {
		cfg.Reports.Dir = *dir
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}
	if err := config.NewValidator().Validate(cfg); err != nil {
		return err
	}

	if err := os.WriteFile(configFile, []byte(generateConfig(cfg)), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Created %s\n", configFile)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Review and edit crashscan.hjson as needed")
	fmt.Println("  2. Run: crashd")
	fmt.Println("  3. Query: crashctl --api http://" + cfg.Server.Host + ":" + strconv.Itoa(cfg.Server.Port) + " list")
	return nil
}

// escapeHJSONValue escapes a string for safe inclusion in an HJSON double-quoted value.
func escapeHJSONValue(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}

func quoteList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = `"` + escapeHJSONValue(v) + `"`
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func generateConfig(cfg *config.Config) string {
	var sb strings.Builder

	sb.WriteString(`{
  // crashscan configuration (HJSON: JSON with comments and relaxed syntax)

  server: {
    // Host to bind to (use "0.0.0.0" to allow remote access)
    host: "` + escapeHJSONValue(cfg.Server.Host) + `"
    port: ` + strconv.Itoa(cfg.Server.Port) + `

    // For HTTPS, set both:
    // tls_cert: "~/.crashscan/cert.pem"
    // tls_key: "~/.crashscan/key.pem"
  }

  reports: {
    // Directory holding .crash and .ips reports (~ is expanded)
    dir: "` + escapeHJSONValue(cfg.Reports.Dir) + `"
    extensions: ` + quoteList(cfg.Reports.Extensions) + `

    // Subdirectory levels to descend (Retired/ and per-process folders)
    max_depth: ` + strconv.Itoa(cfg.Reports.Depth()) + `

    // Files parsed concurrently
    workers: ` + strconv.Itoa(cfg.Reports.Workers) + `

    // Window used when a query has no "since"
    lookback: "` + escapeHJSONValue(cfg.Reports.Lookback) + `"
  }

  // Process classification. Empty lists keep the built-in rules.
  classifier: {
    // system_paths: ["/System/Library/", "/usr/libexec/"]
    // agent_paths: ["/Library/PrivilegedHelperTools/"]
    // agent_names: ["*Agent", "*Helper"]
    // application_paths: [".app/"]
  }
}
`)

	return sb.String()
}
