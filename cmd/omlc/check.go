// Copyright 2020-2024 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/bufbuild/oml"
	"github.com/bufbuild/oml/report"
)

type checkConfig struct {
	watch    bool
	debounce time.Duration
	rule     string
}

func newCheckCmd(cfg *rootConfig) *cobra.Command {
	cc := &checkConfig{}
	cmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "Report errors in OML documents",
		Long: `Parses and validates every document, printing diagnostics to stderr.

With --rule, also prints to stdout the documents whose rule patterns match
the given path, skipping disabled ones.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cc.watch {
				return runCheck(cmd, cfg, cc, args)
			}
			dirs := watchDirs(args, cfg.importPaths)
			return watchFiles(cmd.Context(), cfg.logger, dirs, cc.debounce, func() {
				err := runCheck(cmd, cfg, cc, args)
				if err != nil && !errors.Is(err, errInvalid) {
					cfg.logger.Error("check failed", "error", err)
				}
			})
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&cc.watch, "watch", "w", false, "check again whenever a document changes")
	f.DurationVar(&cc.debounce, "debounce", 100*time.Millisecond, "how long to wait for changes to settle in --watch mode")
	f.StringVar(&cc.rule, "rule", "", "print the documents whose rule patterns match this path")
	return cmd
}

func runCheck(cmd *cobra.Command, cfg *rootConfig, cc *checkConfig, paths []string) error {
	start := time.Now()
	files, err := cfg.compiler().Compile(cmd.Context(), paths...)
	if err != nil && !errors.Is(err, report.ErrInvalidSource) {
		return err
	}
	if err := cfg.printReport(cmd.ErrOrStderr(), files); err != nil {
		return err
	}

	var invalid, warnings int
	for _, f := range files {
		if !f.OK() {
			invalid++
		}
		warnings += len(f.Report) - f.Report.Errors()
	}
	cfg.logger.Debug("checked documents",
		"files", len(files),
		"invalid", invalid,
		"warnings", warnings,
		"duration", time.Since(start),
	)

	if cc.rule != "" {
		if err := printMatches(cmd.OutOrStdout(), cfg.logger, files, cc.rule); err != nil {
			return err
		}
	}
	if invalid > 0 {
		return errInvalid
	}
	return nil
}

// printMatches prints the path and name of every valid, enabled document
// whose header has a rule pattern matching rule.
func printMatches(w io.Writer, logger *slog.Logger, files oml.Files, rule string) error {
	for _, f := range files {
		if !f.OK() {
			continue
		}
		h := f.AST.Header
		if !h.IsEnabled() {
			logger.Debug("skipping disabled document", "path", f.Path)
			continue
		}
		if !h.MatchRule(rule) {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\n", f.Path, h.Name.Text); err != nil {
			return err
		}
	}
	return nil
}

// watchDirs returns the directories that may hold the given documents.
// Directories are watched rather than files, since editors often replace a
// file instead of writing to it.
func watchDirs(paths, importPaths []string) []string {
	seen := make(map[string]bool)
	var dirs []string
	add := func(dir string) {
		dir = filepath.Clean(dir)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	for _, path := range paths {
		if len(importPaths) == 0 {
			add(filepath.Dir(path))
			continue
		}
		for _, ip := range importPaths {
			add(filepath.Dir(filepath.Join(ip, path)))
		}
	}
	return dirs
}

// watchFiles calls onChange once, and then again every time an .oml file in
// one of dirs changes, until ctx is done. Bursts of events closer together
// than debounce cause a single call.
func watchFiles(ctx context.Context, logger *slog.Logger, dirs []string, debounce time.Duration, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	logger.Info("watching for changes", "dirs", dirs, "debounce", debounce)

	onChange()

	fire := make(chan struct{}, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			if filepath.Ext(event.Name) != ".oml" || event.Op == fsnotify.Chmod {
				continue
			}
			logger.Debug("file event", "path", event.Name, "op", event.Op.String())

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			onChange()

		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			logger.Error("file watcher error", "error", err)
		}
	}
}
