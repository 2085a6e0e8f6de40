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
	"github.com/bufbuild/oml/token"
)

// Rule patterns and JSON paths overlap with ordinary tokens (`a/b` is three
// tokens, `/a//b` is a slash and a comment), so they cannot be produced by the
// lexer. Instead, at the few places the grammar allows one, the parser asks for
// a raw scan: the text right after the last consumed token is matched against
// the path's character set, and on success the lexer restarts after it.

func isRulePathByte(c byte) bool {
	return isIdentStart(c) || isDigit(c) || c == '.' || c == '/' || c == '*' || c == '-'
}

func isJSONPathByte(c byte) bool {
	return isRulePathByte(c) || c == '[' || c == ']'
}

// scanRulePath scans a `rule:` pattern, `[A-Za-z0-9_./*-]+`.
func (p *parser) scanRulePath() (token.Token, bool) {
	return p.scanRaw(token.RulePath, func(text string, i int) int {
		for i < len(text) && isRulePathByte(text[i]) {
			i++
		}
		return i
	})
}

// scanJSONPath scans a JSON path argument, `/[a-zA-Z0-9_/\[\].*-]+`.
func (p *parser) scanJSONPath() (token.Token, bool) {
	return p.scanRaw(token.JSONPath, func(text string, i int) int {
		if i >= len(text) || text[i] != '/' {
			return i
		}
		end := i + 1
		for end < len(text) && isJSONPathByte(text[end]) {
			end++
		}
		if end == i+1 {
			return i
		}
		return end
	})
}

// scanRaw runs scan at the first non-trivia byte after the last consumed
// token. scan returns the end of the match; a match of length zero fails.
//
// Only `#` comments are skipped, since `//` may begin a path.
func (p *parser) scanRaw(kind token.Kind, scan func(text string, start int) int) (token.Token, bool) {
	start := skipTrivia(p.text, p.prevEnd, false)
	end := scan(p.text, start)
	if end <= start {
		return token.Token{}, false
	}

	// Whatever was looked ahead at overlaps the raw span; throw it away and
	// lex again from the end of the path.
	p.buf = p.buf[:0]
	p.lex.reset(end)
	p.prevEnd = end
	p.prevBroken = false
	return token.Token{Kind: kind, Start: start, End: end, Text: p.text[start:end]}, true
}
