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

package parser_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/oml/parser"
	"github.com/bufbuild/oml/report"
	"github.com/bufbuild/oml/token"
)

// lex lexes text and renders every token but the trailing EOF as Kind:text.
func lex(t *testing.T, text string) ([]string, report.Report) {
	t.Helper()
	var r report.Report
	toks := parser.Lex("test.oml", text, &r)
	require.NotEmpty(t, toks)
	require.Equal(t, token.EOF, toks[len(toks)-1].Kind)

	var out []string
	for _, tok := range toks[:len(toks)-1] {
		assert.Equal(t, text[tok.Start:tok.End], tok.Text)
		out = append(out, fmt.Sprintf("%v:%s", tok.Kind, tok.Text))
	}
	return out, r
}

func TestLex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, text string
		want       []string
	}{
		{
			name: "item",
			text: "a, b:ip = take(x);",
			want: []string{
				"Ident:a", "Punct:,", "Ident:b", "Punct::", "Ident:ip", "Punct:=",
				"Ident:take", "Punct:(", "Ident:x", "Punct:)", "Punct:;",
			},
		},
		{
			name: "wildcards",
			text: "* *user user* a *",
			want: []string{"WildKey:*", "WildKey:*user", "WildKey:user*", "Ident:a", "WildKey:*"},
		},
		{
			name: "spaced star",
			text: "user *",
			want: []string{"Ident:user", "WildKey:*"},
		},
		{
			name: "numbers",
			text: "1 23.5 10.0.0.1 255.255.255.0",
			want: []string{"Number:1", "Number:23.5", "IP:10.0.0.1", "IP:255.255.255.0"},
		},
		{
			name: "trailing dot",
			text: "1.",
			want: []string{"Number:1", "Punct:."},
		},
		{
			name: "strings",
			text: `"a\"b" 'c' ""`,
			want: []string{`String:"a\"b"`, `String:'c'`, `String:""`},
		},
		{
			name: "punctuation",
			text: "--- :: => != <= >= = ! < > | @ , ; : ( ) [ ] { } / . -",
			want: []string{
				"Punct:---", "Punct:::", "Punct:=>", "Punct:!=", "Punct:<=", "Punct:>=",
				"Punct:=", "Punct:!", "Punct:<", "Punct:>", "Punct:|", "Punct:@",
				"Punct:,", "Punct:;", "Punct::", "Punct:(", "Punct:)", "Punct:[",
				"Punct:]", "Punct:{", "Punct:}", "Punct:/", "Punct:.", "Punct:-",
			},
		},
		{
			name: "maximal munch",
			text: "---- ::: =>=",
			want: []string{"Punct:---", "Punct:-", "Punct:::", "Punct::", "Punct:=>", "Punct:="},
		},
		{
			name: "comments",
			text: "a # b c\nd // e\n/f",
			want: []string{"Ident:a", "Ident:d", "Punct:/", "Ident:f"},
		},
		{
			name: "namespaced",
			text: "Now::time()",
			want: []string{"Ident:Now", "Punct:::", "Ident:time", "Punct:(", "Punct:)"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			got, r := lex(t, test.text)
			assert.Equal(t, test.want, got)
			assert.Empty(t, r, "%s", r.Render(report.Simple))
		})
	}
}

func TestLexErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, text string
		want       []string
		kinds      []report.Kind
		render     string
	}{
		{
			name:   "unrecognized run",
			text:   "a $%^ b",
			want:   []string{"Ident:a", "Ident:b"},
			kinds:  []report.Kind{report.LexError},
			render: "error: test.oml:1:3: unrecognized characters \"$%^\"\n",
		},
		{
			name:   "unrecognized rune",
			text:   "a\n  é",
			want:   []string{"Ident:a"},
			kinds:  []report.Kind{report.LexError},
			render: "error: test.oml:2:3: unrecognized character \"é\"\n",
		},
		{
			name:   "malformed number",
			text:   "x 1.2.3 y",
			want:   []string{"Ident:x", "Number:1.2.3", "Ident:y"},
			kinds:  []report.Kind{report.LexError},
			render: "error: test.oml:1:3: malformed number `1.2.3`\n",
		},
		{
			name:   "long ip group",
			text:   "1000.0.0.1",
			want:   []string{"Number:1000.0.0.1"},
			kinds:  []report.Kind{report.LexError},
			render: "error: test.oml:1:1: malformed number `1000.0.0.1`\n",
		},
		{
			name:   "unterminated string",
			text:   "a = \"abc;\nb",
			want:   []string{"Ident:a", "Punct:=", "String:\"abc;", "Ident:b"},
			kinds:  []report.Kind{report.UnterminatedConstruct},
			render: "error: test.oml:1:5: unterminated string literal\n",
		},
		{
			name:   "unterminated string at eof",
			text:   "'abc",
			want:   []string{"String:'abc"},
			kinds:  []report.Kind{report.UnterminatedConstruct},
			render: "error: test.oml:1:1: unterminated string literal\n",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			got, r := lex(t, test.text)
			assert.Equal(t, test.want, got)
			assert.Equal(t, test.kinds, r.Kinds())
			assert.Equal(t, test.render, r.Render(report.Simple))
		})
	}
}
