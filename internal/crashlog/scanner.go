// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package crashlog

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// Scanner defaults.
const (
	DefaultMaxDepth = 1
	DefaultWorkers  = 4
)

// DefaultExtensions are the file extensions of crash reports.
var DefaultExtensions = []string{".crash", ".ips"}

// Scanner collects crash reports from a directory.
// The scanner only reads; it never modifies the directory.
type Scanner struct {
	Root       string   // Directory to scan
	Extensions []string // Candidate file extensions (default DefaultExtensions)
	MaxDepth   int      // Subdirectory levels below Root to descend into (0 = Root only)
	Workers    int      // Files parsed concurrently (default DefaultWorkers)
	Parser     *Parser  // Parser to use (default classification rules if nil)

	// OnSkip is called for every candidate that did not yield a record.
	// It may be called from several goroutines at once.
	OnSkip func(path string, err error)
}

// CollectSince scans root, descending DefaultMaxDepth levels, and returns
// every report modified at or after cutoff.
func CollectSince(ctx context.Context, root string, cutoff time.Time) (Set, error) {
	s := &Scanner{Root: root, MaxDepth: DefaultMaxDepth}
	return s.CollectSince(ctx, cutoff)
}

// CollectSince returns the records of all candidate files modified at or
// after cutoff. Files that fail to parse are skipped. The scan only fails
// when the root cannot be read or ctx is done.
func (s *Scanner) CollectSince(ctx context.Context, cutoff time.Time) (Set, error) {
	candidates, err := s.candidates(ctx, cutoff)
	if err != nil {
		return Set{}, err
	}

	parser := s.Parser
	if parser == nil {
		parser = defaultParser
	}
	workers := s.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	parsed := make([]Record, len(candidates))
	ok := make([]bool, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range candidates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec, err := parser.ParseFile(path)
			if err != nil {
				s.skip(path, err)
				return nil
			}
			parsed[i], ok[i] = rec, true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Set{}, err
	}

	records := make([]Record, 0, len(candidates))
	for i := range parsed {
		if ok[i] {
			records = append(records, parsed[i])
		}
	}
	return Set{records: records}, nil
}

// candidates walks the root and returns the paths of files that pass the
// extension and modification time filters. Files are not opened.
func (s *Scanner) candidates(ctx context.Context, cutoff time.Time) ([]string, error) {
	root := filepath.Clean(s.Root)
	if li, err := os.Lstat(root); err == nil && li.Mode()&fs.ModeSymlink != 0 {
		if resolved, err := filepath.EvalSymlinks(root); err == nil {
			root = resolved
		}
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, &ParseError{Path: root, Err: ErrIO, Cause: err}
	}
	if !info.IsDir() {
		return nil, &ParseError{Path: root, Err: ErrIO, Cause: fmt.Errorf("not a directory")}
	}

	exts := s.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == root {
				return &ParseError{Path: root, Err: ErrIO, Cause: err}
			}
			s.skip(path, &ParseError{Path: path, Err: ErrIO, Cause: err})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != root && depth(root, path) > s.MaxDepth {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !hasExtension(d.Name(), exts) {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			s.skip(path, &ParseError{Path: path, Err: ErrIO, Cause: err})
			return nil
		}
		if fi.ModTime().Before(cutoff) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

func (s *Scanner) skip(path string, err error) {
	if s.OnSkip != nil {
		s.OnSkip(path, err)
	}
}

// depth returns how many directory levels dir is below root.
func depth(root, dir string) int {
	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}

func hasExtension(name string, exts []string) bool {
	ext := filepath.Ext(name)
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}
