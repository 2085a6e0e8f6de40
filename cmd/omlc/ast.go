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
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bufbuild/oml/ast"
)

func newASTCmd(cfg *rootConfig) *cobra.Command {
	at := -1
	cmd := &cobra.Command{
		Use:   "ast <file>",
		Short: "Print the syntax tree of a document as YAML",
		Long: `Print the syntax tree of a document as YAML.

With --at, only the innermost node covering the given byte offset is
printed, preceded by a comment naming its type.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := cfg.compiler().Compile(cmd.Context(), args[0])
			if files == nil {
				return err
			}
			if err := cfg.printReport(cmd.ErrOrStderr(), files); err != nil {
				return err
			}
			if !files[0].OK() {
				return errInvalid
			}

			var root ast.Node = files[0].AST
			if at >= 0 {
				root = ast.NewIndex(root).Innermost(at)
				if root == nil {
					return fmt.Errorf("no syntax node at offset %d in %s", at, args[0])
				}
				cfg.logger.Debug("found node", "offset", at, "span", root.Span().String())
				name := strings.TrimPrefix(fmt.Sprintf("%T", root), "*ast.")
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", name); err != nil {
					return err
				}
			}

			out, err := ast.ToYAML(root)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().IntVar(&at, "at", -1, "print only the innermost node at this byte offset")
	return cmd
}
