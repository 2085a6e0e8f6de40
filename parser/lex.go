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
	"strings"
	"unicode/utf8"

	"github.com/bufbuild/oml/report"
	"github.com/bufbuild/oml/token"
)

// puncts is every punctuation token, longest first so that the first match
// is the maximal munch.
var puncts = []string{
	"---",
	"::", "=>", "!=", "<=", ">=",
	"=", "!", "<", ">", "|", "@", ",", ";", ":",
	"(", ")", "[", "]", "{", "}", "/", ".", "-",
}

// lexer is a pull lexer: it produces one token per call to next.
//
// Comments and whitespace are dropped. Lexical errors are reported to errs
// and never stop the lexer; a malformed run still produces a token so that
// the parser does not report it a second time.
type lexer struct {
	file *report.IndexedFile
	text string
	errs *report.Report

	cursor int

	// Errors that start before this offset have already been reported. The
	// parser rewinds the lexer after a raw scan, which may re-lex text.
	reportedUpTo int
}

func newLexer(file *report.IndexedFile, errs *report.Report) *lexer {
	return &lexer{file: file, text: file.File().Text, errs: errs}
}

// reset moves the lexer to offset.
func (l *lexer) reset(offset int) {
	l.cursor = offset
}

// next returns the next token. At the end of the text it returns an EOF token
// forever.
func (l *lexer) next() token.Token {
	for {
		l.cursor = skipTrivia(l.text, l.cursor, true)
		if l.cursor >= len(l.text) {
			return token.Token{Kind: token.EOF, Start: len(l.text), End: len(l.text)}
		}

		start := l.cursor
		c := l.text[start]
		switch {
		case c == '*':
			end := start + 1
			if end < len(l.text) && isIdentStart(l.text[end]) {
				end = scanIdent(l.text, end)
			}
			return l.emit(token.WildKey, start, end)

		case isIdentStart(c):
			end := scanIdent(l.text, start)
			if end < len(l.text) && l.text[end] == '*' {
				return l.emit(token.WildKey, start, end+1)
			}
			return l.emit(token.Ident, start, end)

		case isDigit(c):
			return l.number(start)

		case c == '"' || c == '\'':
			return l.string(start, c)
		}

		for _, p := range puncts {
			if strings.HasPrefix(l.text[start:], p) {
				return l.emit(token.Punct, start, start+len(p))
			}
		}

		// Nothing matched: report the whole run of unusable bytes once and
		// carry on after it.
		_, n := utf8.DecodeRuneInString(l.text[start:])
		end := start + n
		for end < len(l.text) && !canStartToken(l.text, end) {
			_, n := utf8.DecodeRuneInString(l.text[end:])
			end += n
		}
		l.errorAt(start, errUnrecognized{span: l.file.NewSpan(start, end), text: l.text[start:end]})
		l.cursor = end
	}
}

func (l *lexer) emit(kind token.Kind, start, end int) token.Token {
	l.cursor = end
	return token.Token{Kind: kind, Start: start, End: end, Text: l.text[start:end]}
}

// number lexes a run of dotted digit groups: one or two groups make a number,
// four groups of up to three digits make an IP literal, and anything else is
// an error lexed as a number.
func (l *lexer) number(start int) token.Token {
	end := scanDigits(l.text, start)
	groups, short := 1, end-start <= 3
	for end+1 < len(l.text) && l.text[end] == '.' && isDigit(l.text[end+1]) {
		next := scanDigits(l.text, end+1)
		short = short && next-end-1 <= 3
		groups++
		end = next
	}

	switch {
	case groups <= 2:
		return l.emit(token.Number, start, end)
	case groups == 4 && short:
		return l.emit(token.IP, start, end)
	default:
		l.errorAt(start, errMalformedNumber{span: l.file.NewSpan(start, end), text: l.text[start:end]})
		return l.emit(token.Number, start, end)
	}
}

// string lexes a quoted string. A string that is not closed before the end of
// its line is reported, and runs to the end of the line.
func (l *lexer) string(start int, quote byte) token.Token {
	for i := start + 1; i < len(l.text); i++ {
		switch l.text[i] {
		case '\\':
			if i+1 < len(l.text) && l.text[i+1] != '\n' {
				i++
			}
		case quote:
			return l.emit(token.String, start, i+1)
		case '\n':
			return l.unterminated(start, i, quote)
		}
	}
	return l.unterminated(start, len(l.text), quote)
}

func (l *lexer) unterminated(start, end int, quote byte) token.Token {
	l.errorAt(start, errUnterminatedString{span: l.file.NewSpan(start, end), quote: quote})
	tok := l.emit(token.String, start, end)
	tok.Broken = true
	return tok
}

// errorAt reports err unless an error at or after offset was already
// reported.
func (l *lexer) errorAt(offset int, err error) {
	if offset < l.reportedUpTo {
		return
	}
	l.reportedUpTo = offset + 1
	l.errs.Error(err)
}

// skipTrivia returns the offset of the first byte at or after i that is not
// whitespace or part of a comment. slashes controls whether `//` starts a
// comment.
func skipTrivia(text string, i int, slashes bool) int {
	for i < len(text) {
		switch c := text[i]; {
		case isSpace(c):
			i++
		case c == '#', slashes && c == '/' && i+1 < len(text) && text[i+1] == '/':
			for i < len(text) && text[i] != '\n' {
				i++
			}
		default:
			return i
		}
	}
	return i
}

// canStartToken reports whether some token or trivia can begin at text[i].
func canStartToken(text string, i int) bool {
	c := text[i]
	if isIdentStart(c) || isDigit(c) || isSpace(c) {
		return true
	}
	return strings.IndexByte("*\"'#=!<>|@,;:()[]{}/.-", c) >= 0
}

func scanIdent(text string, i int) int {
	for i < len(text) && (isIdentStart(text[i]) || isDigit(text[i])) {
		i++
	}
	return i
}

func scanDigits(text string, i int) int {
	for i < len(text) && isDigit(text[i]) {
		i++
	}
	return i
}

func isIdentStart(c byte) bool {
	return c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// Lex splits text into tokens, reporting lexical errors to errs. The result
// always ends with an EOF token.
//
// Raw paths are context sensitive, so they never appear in the result: a
// `rule:` pattern or a JSON path comes out as the ordinary tokens it is made
// of.
func Lex(path, text string, errs *report.Report) []token.Token {
	l := newLexer(report.NewIndexedFile(report.File{Path: path, Text: text}), errs)
	var out []token.Token
	for {
		tok := l.next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}
