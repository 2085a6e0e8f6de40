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

package parser

import (
	"errors"
	"fmt"

	"github.com/bufbuild/oml/report"
	"github.com/bufbuild/oml/token"
)

// errSyntax is returned by parse functions once the problem that stopped them
// has been reported. Callers only use it to decide whether to recover.
var errSyntax = errors.New("syntax error")

// describe returns a short description of a token for use in diagnostics.
func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return eof.String()
	case token.Ident:
		return fmt.Sprintf("identifier `%s`", tok.Text)
	case token.WildKey:
		if tok.Text == "*" {
			return star.String()
		}
		return fmt.Sprintf("wildcard key `%s`", tok.Text)
	case token.String:
		return stringLit.String()
	case token.Number:
		return fmt.Sprintf("number `%s`", tok.Text)
	case token.IP:
		return fmt.Sprintf("IP literal `%s`", tok.Text)
	case token.RulePath:
		return rulePath.String()
	case token.JSONPath:
		return "JSON path"
	default:
		return fmt.Sprintf("`%s`", tok.Text)
	}
}

// errUnexpected is a low-level parser error for when we hit a token we don't
// know how to handle.
type errUnexpected struct {
	span  report.Span
	got   string
	where place
	want  set
}

func (e errUnexpected) Error() string {
	if e.where.preposition == "" {
		return "unexpected " + e.got
	}
	return fmt.Sprintf("unexpected %s %v", e.got, e.where)
}

func (e errUnexpected) Diagnose(d *report.Diagnostic) {
	if e.want.Len() > 0 {
		d.With(report.SnippetAt(e.span, "expected %s", e.want.Join("or")))
	} else {
		d.With(report.SnippetAt(e.span, "unexpected here"))
	}
	d.With(report.Tag(report.UnexpectedToken))
}

// errUnclosed is reported when the extent of a delimiter ends before its
// closer was found.
type errUnclosed struct {
	open      report.Span
	openText  string
	closeText string
	what      noun

	// Where the closer should have been, and what was there instead.
	at report.Span
	got string
}

func (e errUnclosed) Error() string {
	return fmt.Sprintf("unclosed `%s` in %v", e.openText, e.what)
}

func (e errUnclosed) Diagnose(d *report.Diagnostic) {
	d.With(
		report.SnippetAt(e.open, "this `%s` is never closed", e.openText),
		report.SnippetAt(e.at, "expected `%s` before %s", e.closeText, e.got),
		report.Tag(report.UnterminatedConstruct),
	)
}

// errUnterminatedString is reported by the lexer for a quote that is not
// matched before the end of its line.
type errUnterminatedString struct {
	span  report.Span
	quote byte
}

func (e errUnterminatedString) Error() string {
	return "unterminated string literal"
}

func (e errUnterminatedString) Diagnose(d *report.Diagnostic) {
	d.With(
		report.SnippetAt(e.span, "expected to be terminated by `%c`", e.quote),
		report.Note("string literals cannot span lines"),
		report.Tag(report.UnterminatedConstruct),
	)
}

// errUnrecognized is reported for a run of bytes that cannot start any token.
type errUnrecognized struct {
	span report.Span
	text string
}

func (e errUnrecognized) Error() string {
	if len(e.text) == 1 || len([]rune(e.text)) == 1 {
		return fmt.Sprintf("unrecognized character %q", e.text)
	}
	return fmt.Sprintf("unrecognized characters %q", e.text)
}

func (e errUnrecognized) Diagnose(d *report.Diagnostic) {
	d.With(
		report.SnippetAt(e.span, "not part of any token"),
		report.Tag(report.LexError),
	)
}

// errMalformedNumber is reported for a run of dotted digit groups that is
// neither a number nor an IP literal.
type errMalformedNumber struct {
	span report.Span
	text string
}

func (e errMalformedNumber) Error() string {
	return fmt.Sprintf("malformed number `%s`", e.text)
}

func (e errMalformedNumber) Diagnose(d *report.Diagnostic) {
	d.With(
		report.SnippetAt(e.span, "neither a number nor an IP literal"),
		report.Note("a number has at most one decimal point"),
		report.Note("an IP literal has four groups of one to three digits"),
		report.Tag(report.LexError),
	)
}

// errMoreThanOne is used to diagnose the occurrence of some construct more
// than one time, when it is expected to occur at most once.
type errMoreThanOne struct {
	first, second report.Span
	what          noun
}

func (e errMoreThanOne) Error() string {
	return fmt.Sprintf("encountered more than one %v", e.what)
}

func (e errMoreThanOne) Diagnose(d *report.Diagnostic) {
	d.With(
		report.SnippetAt(e.second, "help: consider removing this"),
		report.SnippetAt(e.first, "first one is here"),
		report.Tag(report.DuplicateSection),
	)
}

// errExtraSeparator is reported for a third `---`.
type errExtraSeparator struct {
	span, privacy report.Span
}

func (e errExtraSeparator) Error() string {
	return "encountered more than two `---` separators"
}

func (e errExtraSeparator) Diagnose(d *report.Diagnostic) {
	d.With(
		report.SnippetAt(e.span, "help: consider removing this"),
		report.SnippetAt(e.privacy, "the privacy section starts here"),
		report.Note("a document has a header, a body and an optional privacy section"),
		report.Tag(report.DuplicateSection),
	)
}

// errEmptyStatic is reported for `static {}`.
type errEmptyStatic struct {
	span report.Span
}

func (e errEmptyStatic) Error() string {
	return "empty static block"
}

func (e errEmptyStatic) Diagnose(d *report.Diagnostic) {
	d.With(
		report.SnippetAt(e.span, "help: add an item or remove the block"),
		report.Tag(report.DuplicateSection),
	)
}

// errArmWidth is reported for a match arm whose tuple width differs from the
// number of match sources.
type errArmWidth struct {
	arm, sources report.Span
	got, want    int
}

func (e errArmWidth) Error() string {
	return fmt.Sprintf("match arm has %d %s, but the match has %d sources",
		e.got, plural(e.got, "condition", "conditions"), e.want)
}

func (e errArmWidth) Diagnose(d *report.Diagnostic) {
	d.With(
		report.SnippetAt(e.arm, "expected %d %s", e.want, plural(e.want, "condition", "conditions")),
		report.SnippetAt(e.sources, "sources listed here"),
		report.Tag(report.ArityMismatch),
	)
}

// errStaticTarget is reported for a target inside a static block that is not
// a plain identifier.
type errStaticTarget struct {
	span, block report.Span
	name        string
	kind        string
}

func (e errStaticTarget) Error() string {
	return fmt.Sprintf("static target `%s` is a %s", e.name, e.kind)
}

func (e errStaticTarget) Diagnose(d *report.Diagnostic) {
	d.With(
		report.SnippetAt(e.span, "expected a plain identifier"),
		report.SnippetAt(e.block, "in this static block"),
		report.Note("static values are bound once, so each needs a concrete name"),
		report.Tag(report.ArityMismatch),
	)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
