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
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bufbuild/oml"
	"github.com/bufbuild/oml/report"
)

// exit codes
const (
	exitOK      = 0
	exitInvalid = 1
	exitFailure = 2
	exitINT     = 130
)

// errInvalid is returned by commands when a document had errors.
var errInvalid = errors.New("invalid documents")

type rootConfig struct {
	format      string
	importPaths []string
	parallelism int
	verbose     bool

	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	cfg := &rootConfig{}
	return buildRootCmd(cfg)
}

func buildRootCmd(cfg *rootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "omlc",
		Short:         "OML front-end",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.resolveEnvVars(cmd.Flags().Changed)
			if err := cfg.validate(); err != nil {
				return err
			}
			level := slog.LevelInfo
			if cfg.verbose {
				level = slog.LevelDebug
			}
			cfg.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: level,
			}))
			return nil
		},
	}
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.AddCommand(newCheckCmd(cfg))
	cmd.AddCommand(newASTCmd(cfg))
	cmd.AddCommand(newTokensCmd(cfg))

	f := cmd.PersistentFlags()
	f.StringVarP(&cfg.format, "format", "f", "", "diagnostic format: simple, rich (default: rich on TTY, simple when piped)")
	f.StringSliceVarP(&cfg.importPaths, "import-path", "I", nil, "directories to resolve documents against (or OML_IMPORT_PATH env)")
	f.IntVarP(&cfg.parallelism, "parallelism", "j", 0, "number of documents to parse at once (default: number of CPUs)")
	f.BoolVarP(&cfg.verbose, "verbose", "v", false, "log debug information to stderr")

	return cmd
}

// exitCode maps an error to the appropriate process exit code.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errInvalid), errors.Is(err, report.ErrInvalidSource):
		return exitInvalid
	default:
		return exitFailure
	}
}

// resolveEnvVars applies env var values for flags not explicitly set via CLI.
func (c *rootConfig) resolveEnvVars(changed func(string) bool) {
	applyEnvStr(&c.format, changed("format"), "OML_FORMAT")
	if !changed("import-path") {
		if v := os.Getenv("OML_IMPORT_PATH"); v != "" {
			c.importPaths = filepath.SplitList(v)
		}
	}
	if !changed("parallelism") {
		if v := os.Getenv("OML_PARALLELISM"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.parallelism = n
			}
		}
	}
}

// applyEnvStr sets *dst to the env var value when the flag was not explicitly set.
func applyEnvStr(dst *string, flagChanged bool, key string) {
	if flagChanged {
		return
	}
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func (c *rootConfig) validate() error {
	switch c.format {
	case "", "simple", "rich":
		return nil
	default:
		return fmt.Errorf("unknown format %q: want simple or rich", c.format)
	}
}

// compiler returns a compiler configured from the flags.
func (c *rootConfig) compiler() *oml.Compiler {
	return &oml.Compiler{
		Resolver:       &oml.SourceResolver{ImportPaths: c.importPaths},
		MaxParallelism: c.parallelism,
	}
}

// style picks the diagnostic style for w.
func (c *rootConfig) style(w io.Writer) report.Style {
	switch c.format {
	case "simple":
		return report.Simple
	case "rich":
		if isTerminal(w) {
			return report.Colored
		}
		return report.Monochrome
	default:
		if isTerminal(w) {
			return report.Colored
		}
		return report.Simple
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec
}

// printReport writes the diagnostics of every file to w, in order.
func (c *rootConfig) printReport(w io.Writer, files oml.Files) error {
	style := c.style(w)
	for _, f := range files {
		if len(f.Report) == 0 {
			continue
		}
		if _, err := io.WriteString(w, f.Report.Render(style)); err != nil {
			return err
		}
	}
	return nil
}
