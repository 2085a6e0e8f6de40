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

package token

import (
	"fmt"
	"strconv"
)

// Token is a lexeme of an OML document.
//
// Start and End are byte offsets into the source; Text is always
// source[Start:End].
type Token struct {
	Kind       Kind
	Start, End int
	Text       string

	// Set when the lexer already reported this token as malformed and it
	// swallowed the rest of its line.
	Broken bool
}

// IsPunct checks whether this is the given punctuation.
func (t Token) IsPunct(p string) bool {
	return t.Kind == Punct && t.Text == p
}

// IsKeyword checks whether this is an identifier spelled kw.
func (t Token) IsKeyword(kw string) bool {
	return t.Kind == Ident && t.Text == kw
}

// IsSeparator checks whether this is the `---` section separator.
func (t Token) IsSeparator() bool {
	return t.IsPunct("---")
}

// Value returns the decoded contents of a string token, with its quotes
// removed and escapes resolved. An unterminated string decodes up to the end
// of its text.
//
// For any other kind of token, returns Text.
func (t Token) Value() string {
	if t.Kind != String || t.Text == "" {
		return t.Text
	}
	quote := t.Text[0]
	body := t.Text[1:]
	if n := len(body); n > 0 && body[n-1] == quote && !escaped(body, n-1) {
		body = body[:n-1]
	}
	return Unescape(body)
}

// Unescape resolves backslash escapes: \n, \t and \r are translated, and a
// backslash before any other character stands for that character.
func Unescape(s string) string {
	var out []byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			out = append(out, c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			out = append(out, '\n')
		case 't':
			out = append(out, '\t')
		case 'r':
			out = append(out, '\r')
		default:
			out = append(out, s[i])
		}
	}
	return string(out)
}

// escaped reports whether the byte at s[i] is preceded by an odd number of
// backslashes.
func escaped(s string, i int) bool {
	n := 0
	for i > 0 && s[i-1] == '\\' {
		n++
		i--
	}
	return n%2 == 1
}

// String implements [fmt.Stringer].
func (t Token) String() string {
	if t.Kind == EOF {
		return fmt.Sprintf("EOF@%d", t.Start)
	}
	return fmt.Sprintf("%v@%d:%d %s", t.Kind, t.Start, t.End, strconv.Quote(t.Text))
}
