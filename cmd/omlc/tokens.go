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
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bufbuild/oml/parser"
	"github.com/bufbuild/oml/report"
	"github.com/bufbuild/oml/token"
)

func newTokensCmd(cfg *rootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the tokens of a document",
		Long: `Prints one token per line: its position, its kind and its text.

Rule paths and JSON paths are only recognized while parsing, so here they
show up as the tokens they are made of.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			sr, err := cfg.compiler().Resolver.FindFileByPath(path)
			if err != nil {
				return err
			}
			if c, ok := sr.Source.(io.Closer); ok {
				defer c.Close()
			}
			data, err := io.ReadAll(sr.Source)
			if err != nil {
				return err
			}

			var r report.Report
			text := string(data)
			toks := parser.Lex(path, text, &r)
			if err := printTokens(cmd.OutOrStdout(), report.File{Path: path, Text: text}, toks); err != nil {
				return err
			}
			if len(r) > 0 {
				if _, err := io.WriteString(cmd.ErrOrStderr(), r.Render(cfg.style(cmd.ErrOrStderr()))); err != nil {
					return err
				}
			}
			if r.HasErrors() {
				return errInvalid
			}
			return nil
		},
	}
}

func printTokens(w io.Writer, file report.File, toks []token.Token) error {
	idx := report.NewIndexedFile(file)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, tok := range toks {
		loc := idx.Search(tok.Start)
		text := strconv.Quote(tok.Text)
		if tok.Kind == token.EOF {
			text = ""
		}
		if _, err := fmt.Fprintf(tw, "%d:%d\t%v\t%s\n", loc.Line, loc.Column, tok.Kind, text); err != nil {
			return err
		}
	}
	return tw.Flush()
}
