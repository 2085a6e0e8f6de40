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
	"github.com/bufbuild/oml/ast"
	"github.com/bufbuild/oml/report"
	"github.com/bufbuild/oml/token"
)

// parser is the state of a single parse: a token cursor with lookahead, the
// stack of delimiters that are currently open, and the report to write to.
type parser struct {
	file *report.IndexedFile
	text string
	lex  *lexer
	errs *report.Report

	buf        []token.Token // Lookahead, lexed but not consumed.
	prevEnd    int           // The end of the last consumed token.
	prevBroken bool          // Whether the last consumed token was broken.

	delims []delim

	// The offset of the token of the last syntax error, used to avoid
	// reporting two errors for one token when a caller fails right after a
	// callee did.
	lastFail int

	// Non-zero when the last failure was caused by a broken token: the
	// failed item ends at this offset, since the token ate the rest of its
	// line.
	resync int
}

// delim is an open delimiter along with the construct it opened.
type delim struct {
	tok  token.Token
	what noun
}

func newParser(file *report.IndexedFile, errs *report.Report) *parser {
	return &parser{
		file:     file,
		text:     file.File().Text,
		lex:      newLexer(file, errs),
		errs:     errs,
		lastFail: -1,
	}
}

// peek returns the next token without consuming it.
func (p *parser) peek() token.Token {
	return p.peekN(0)
}

// peekN returns the token n places after the next one.
func (p *parser) peekN(n int) token.Token {
	for len(p.buf) <= n {
		p.buf = append(p.buf, p.lex.next())
	}
	return p.buf[n]
}

// pop consumes and returns the next token. The EOF token is never consumed.
func (p *parser) pop() token.Token {
	tok := p.peek()
	if tok.Kind != token.EOF {
		p.buf = p.buf[1:]
		p.prevEnd = tok.End
		p.prevBroken = tok.Broken
	}
	return tok
}

// at checks whether the next token is the punctuation punct.
func (p *parser) at(punct string) bool {
	return p.peek().IsPunct(punct)
}

// atKeyword checks whether the next token is the identifier kw, followed by
// the punctuation then if it is not empty.
func (p *parser) atKeyword(kw, then string) bool {
	if !p.peek().IsKeyword(kw) {
		return false
	}
	return then == "" || p.peekN(1).IsPunct(then)
}

// atEnd checks whether the next token ends the current section.
func (p *parser) atEnd() bool {
	tok := p.peek()
	return tok.Kind == token.EOF || tok.IsSeparator()
}

// span converts a range of offsets into a span for diagnostics.
func (p *parser) span(start, end int) report.Span {
	return p.file.NewSpan(start, end)
}

func (p *parser) tokSpan(tok token.Token) report.Span {
	return p.file.NewSpan(tok.Start, tok.End)
}

// loc returns an AST span from start to the end of the last consumed token.
func (p *parser) loc(start int) ast.Span {
	return ast.Span{Start: start, End: p.prevEnd}
}

// open consumes the next token as an opening delimiter of what.
func (p *parser) open(what noun) token.Token {
	tok := p.pop()
	p.delims = append(p.delims, delim{tok, what})
	return tok
}

// close consumes the closer of the innermost open delimiter, or fails.
//
// others are the alternatives to the closer that the caller would also have
// accepted here, for the diagnostic.
func (p *parser) close(where place, others ...noun) error {
	d := p.delims[len(p.delims)-1]
	closer := closerOf(d.tok.Text)
	if p.at(closer) {
		p.pop()
		p.delims = p.delims[:len(p.delims)-1]
		return nil
	}
	return p.fail(where, append(others, closerNoun(closer))...)
}

// expect consumes the punctuation punct, or fails.
func (p *parser) expect(punct string, what noun, where place) (token.Token, error) {
	if p.at(punct) {
		return p.pop(), nil
	}
	return token.Token{}, p.fail(where, what)
}

// expectIdent consumes an identifier, or fails.
func (p *parser) expectIdent(where place, what ...noun) (token.Token, error) {
	if p.peek().Kind == token.Ident {
		return p.pop(), nil
	}
	if len(what) == 0 {
		what = []noun{ident}
	}
	return token.Token{}, p.fail(where, what...)
}

// fail reports that the next token is not one of want, and returns errSyntax.
//
// If the next token ends the extent of the innermost open delimiter, this is
// reported as an unclosed delimiter instead: end of input and separators end
// every delimiter, and `;` ends parentheses and brackets.
func (p *parser) fail(where place, want ...noun) error {
	return p.failWith(where, setOf(want...))
}

// failWith is like fail, but takes a set and extra options for the
// diagnostic.
func (p *parser) failWith(where place, want set, opts ...report.DiagnosticOption) error {
	tok := p.peek()
	if tok.Start == p.lastFail {
		return errSyntax
	}
	p.lastFail = tok.Start

	// The lexer has already reported the token that broke this item.
	p.resync = 0
	switch {
	case tok.Broken:
		p.resync = tok.End
		return errSyntax
	case p.prevBroken:
		p.resync = p.prevEnd
		return errSyntax
	}

	if n := len(p.delims); n > 0 {
		d := p.delims[n-1]
		bracket := d.tok.Text != "{"
		if tok.Kind == token.EOF || tok.IsSeparator() || bracket && tok.IsPunct(";") {
			p.errs.Error(errUnclosed{
				open:      p.tokSpan(d.tok),
				openText:  d.tok.Text,
				closeText: closerOf(d.tok.Text),
				what:      d.what,
				at:        p.tokSpan(tok),
				got:       describe(tok),
			})
			return errSyntax
		}
	}

	p.errs.Error(errUnexpected{
		span:  p.tokSpan(tok),
		got:   describe(tok),
		where: where,
		want:  want,
	}, opts...)
	return errSyntax
}

// recover skips to the end of the item that failed. base is the depth of the
// delimiter stack when the item started.
//
// It stops after a `;` at the item's depth, or before a `}` that closes an
// enclosing static block, a separator, or the end of input. Closers of
// delimiters that were opened before the item are skipped when inStatic is
// false, since there is nothing for them to close.
//
// If the item was broken by an unterminated string, it ends with that string
// instead.
func (p *parser) recover(base int, inStatic bool) {
	var stack []string
	for _, d := range p.delims[base:] {
		stack = append(stack, d.tok.Text)
	}
	p.delims = p.delims[:base]

	if end := p.resync; end > 0 && p.peek().Start == p.lastFail {
		p.resync = 0
		for tok := p.peek(); tok.Kind != token.EOF && tok.Start < end; tok = p.peek() {
			p.pop()
		}
		return
	}

	for {
		tok := p.peek()
		switch {
		case tok.Kind == token.EOF || tok.IsSeparator():
			return

		case tok.IsPunct(";"):
			p.pop()
			for len(stack) > 0 && stack[len(stack)-1] != "{" {
				stack = stack[:len(stack)-1]
			}
			if len(stack) == 0 {
				return
			}

		case tok.IsPunct("(") || tok.IsPunct("[") || tok.IsPunct("{"):
			p.pop()
			stack = append(stack, tok.Text)

		case tok.IsPunct(")") || tok.IsPunct("]") || tok.IsPunct("}"):
			if len(stack) == 0 && tok.Text == "}" && inStatic {
				return
			}
			p.pop()
			// Pop up to and including the matching opener, if any.
			for i := len(stack) - 1; i >= 0; i-- {
				if closerOf(stack[i]) == tok.Text {
					stack = stack[:i]
					break
				}
			}

		default:
			p.pop()
		}
	}
}

func closerOf(open string) string {
	switch open {
	case "(":
		return ")"
	case "[":
		return "]"
	default:
		return "}"
	}
}

func closerNoun(closer string) noun {
	switch closer {
	case ")":
		return rParen
	case "]":
		return rBracket
	default:
		return rBrace
	}
}
