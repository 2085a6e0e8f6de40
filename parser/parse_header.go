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
	"fmt"
	"slices"

	"github.com/bufbuild/oml/ast"
	"github.com/bufbuild/oml/report"
	"github.com/bufbuild/oml/token"
)

var headerFields = []string{"name", "rule", "enable"}

// parseHeader parses the fields before the first separator. It stops at the
// separator without consuming it.
func (p *parser) parseHeader() *ast.Header {
	h := &ast.Header{Loc: ast.Span{Start: p.peek().Start}}
	var nameTok, enableTok token.Token
	var sawName, misordered bool
	rules := make(map[string]*ast.RulePath)

	for !p.atEnd() {
		tok := p.peek()
		if tok.Kind != token.Ident || !p.peekN(1).IsPunct(":") {
			_ = p.fail(header.In(), headerField, separator)
			p.recoverHeader()
			continue
		}

		if !sawName && !misordered && (tok.Text == "rule" || tok.Text == "enable") {
			misordered = true
			p.errs.Error(errUnexpected{
				span:  p.tokSpan(tok),
				got:   describe(tok),
				where: header.In(),
				want:  setOf(nameField),
			}, report.Note("`name` must be the first header field"))
		}

		var err error
		switch tok.Text {
		case "name":
			if h.Name != nil {
				p.errs.Error(errMoreThanOne{first: p.tokSpan(nameTok), second: p.tokSpan(tok), what: nameField})
			}
			nameTok, sawName = tok, true
			p.pop()
			p.pop()
			var name *ast.Path
			if name, err = p.parseHeaderName(); err == nil && h.Name == nil {
				h.Name = name
			}

		case "rule":
			p.pop()
			p.pop()
			err = p.parseRules(h, rules)

		case "enable":
			if h.Enabled != nil {
				p.errs.Error(errMoreThanOne{first: p.tokSpan(enableTok), second: p.tokSpan(tok), what: enableField})
			}
			enableTok = tok
			p.pop()
			p.pop()
			value := p.peek()
			if !value.IsKeyword("true") && !value.IsKeyword("false") {
				err = p.fail(enableField.In(), boolean)
				break
			}
			p.pop()
			if h.Enabled == nil {
				enabled := value.Text == "true"
				h.Enabled = &enabled
			}

		default:
			err = p.failWith(header.In(), setOf(headerField), didYouMean(tok.Text, headerFields))
		}
		if err != nil {
			p.recoverHeader()
		}
	}

	h.Loc.End = p.prevEnd
	if h.Loc.End < h.Loc.Start {
		h.Loc.End = h.Loc.Start
	}
	if !sawName && !misordered {
		_ = p.failWith(header.In(), setOf(nameField),
			report.Note("every document starts with `name: <path>`"))
	}
	return h
}

// parseHeaderName parses the path after `name:`.
func (p *parser) parseHeaderName() (*ast.Path, error) {
	first, err := p.expectIdent(nameField.In(), path)
	if err != nil {
		return nil, err
	}
	return p.parsePathFrom(first, nameField.In())
}

// parseRules parses the patterns after `rule:`.
func (p *parser) parseRules(h *ast.Header, seen map[string]*ast.RulePath) error {
	for {
		tok, ok := p.scanRulePath()
		if !ok {
			return p.fail(ruleField.In(), rulePath)
		}
		rule := &ast.RulePath{Pattern: tok.Text, Loc: ast.Span{Start: tok.Start, End: tok.End}}
		if prev := seen[rule.Pattern]; prev != nil {
			p.errs.Warn(
				fmt.Errorf("rule pattern `%s` is listed more than once", rule.Pattern),
				report.SnippetAt(p.span(tok.Start, tok.End), "help: consider removing this"),
				report.SnippetAt(p.span(prev.Loc.Start, prev.Loc.End), "first listed here"),
			)
		} else {
			seen[rule.Pattern] = rule
			h.Rules = append(h.Rules, rule)
		}

		if !p.at(",") {
			return nil
		}
		p.pop()
	}
}

// recoverHeader skips to the next header field, separator or end of input.
func (p *parser) recoverHeader() {
	for !p.atEnd() && !p.atHeaderField() {
		p.pop()
	}
}

// atHeaderField checks whether a known header field starts here.
func (p *parser) atHeaderField() bool {
	tok := p.peek()
	return tok.Kind == token.Ident && p.peekN(1).IsPunct(":") && slices.Contains(headerFields, tok.Text)
}
