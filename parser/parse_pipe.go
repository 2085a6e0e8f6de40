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
	"strings"

	"github.com/bufbuild/oml/ast"
	"github.com/bufbuild/oml/report"
	"github.com/bufbuild/oml/token"
)

var (
	pathSelectors = []string{"name", "path"}
	urlSelectors  = []string{"domain", "host", "uri", "path", "params"}
	timeUnits     = []string{"ms", "us", "ss", "s"}
)

// parsePipe parses the stages of a pipe whose source has been parsed.
// start is where the expression began, including any `pipe` keyword.
func (p *parser) parsePipe(src ast.VarGet, keyword bool, start int) (*ast.PipeExpr, error) {
	expr := &ast.PipeExpr{Keyword: keyword, Source: src}
	for p.at("|") {
		p.pop()
		stage, err := p.parsePipeFun()
		if err != nil {
			return nil, err
		}
		expr.Stages = append(expr.Stages, stage)
	}
	expr.Loc = p.loc(start)
	return expr, nil
}

// parsePipeFun parses one stage of a pipe.
func (p *parser) parsePipeFun() (*ast.PipeFun, error) {
	first := p.peek()
	if first.Kind != token.Ident {
		return nil, p.fail(pipeExpr.In(), pipeName)
	}
	name, width := first.Text, 1
	if p.peekN(1).IsPunct("::") && p.peekN(2).Kind == token.Ident {
		name, width = first.Text+"::"+p.peekN(2).Text, 3
	}
	kind, ok := ast.PipeFunByName(name)
	if !ok {
		return nil, p.failWith(pipeExpr.In(), setOf(pipeName), didYouMean(name, ast.PipeFunNames()))
	}
	for range width {
		p.pop()
	}

	stage := &ast.PipeFun{Kind: kind}
	var err error
	switch kind {
	case ast.PipeNth:
		err = p.parenthesized(pipeStage, func() error {
			n := p.peek()
			if n.Kind != token.Number {
				return p.fail(pipeStage.In(), number)
			}
			stage.Number = p.pop().Text
			return nil
		})

	case ast.PipeGet:
		err = p.parenthesized(pipeStage, func() error {
			for {
				seg := p.peek()
				if seg.Kind != token.Ident && seg.Kind != token.Number {
					return p.fail(pipeStage.In(), ident, number)
				}
				stage.Path = append(stage.Path, p.pop().Text)
				if !p.at("/") && !p.at(".") {
					return nil
				}
				p.pop()
			}
		})

	case ast.PipeBase64Decode:
		if p.at("(") {
			err = p.parenthesized(pipeStage, func() error {
				if p.peek().Kind == token.Ident {
					stage.Word = p.pop().Text
				}
				return nil
			})
		}

	case ast.PipePath:
		err = p.parenthesized(pipeStage, func() (err error) {
			stage.Word, err = p.parseSelector(pathSelectors)
			return err
		})

	case ast.PipeURL:
		err = p.parenthesized(pipeStage, func() (err error) {
			stage.Word, err = p.parseSelector(urlSelectors)
			return err
		})

	case ast.PipeToTSZone:
		err = p.parenthesized(pipeStage, func() error {
			var offset strings.Builder
			if p.at("-") {
				offset.WriteString(p.pop().Text)
			}
			if p.peek().Kind != token.Number {
				return p.fail(pipeStage.In(), number)
			}
			offset.WriteString(p.pop().Text)
			stage.Number = offset.String()

			if _, err := p.expect(",", comma, pipeStage.In()); err != nil {
				return err
			}
			tok := p.peek()
			if tok.Kind != token.Ident || !slices.Contains(timeUnits, tok.Text) {
				return p.failWith(pipeStage.In(), setOf(timeUnit), unitHelp(tok))
			}
			stage.Word = p.pop().Text
			return nil
		})

	case ast.PipeStartsWith:
		err = p.parenthesized(pipeStage, func() error {
			tok := p.peek()
			if tok.Kind != token.String {
				return p.fail(pipeStage.In(), stringLit)
			}
			stage.Literal = literalOf(p.pop(), ast.LitString)
			return nil
		})

	case ast.PipeMapTo:
		err = p.parenthesized(pipeStage, func() error {
			tok := p.peek()
			switch {
			case tok.Kind == token.String:
				stage.Literal = literalOf(tok, ast.LitString)
			case tok.Kind == token.Number:
				stage.Literal = literalOf(tok, ast.LitNumber)
			case tok.IsKeyword("true") || tok.IsKeyword("false"):
				stage.Literal = literalOf(tok, ast.LitBool)
			default:
				return p.fail(pipeStage.In(), stringLit, number, boolean)
			}
			p.pop()
			return nil
		})

	case ast.PipeBase64Encode, ast.PipeHTMLEscape, ast.PipeHTMLUnescape,
		ast.PipeStrEscape, ast.PipeStrUnescape, ast.PipeJSONEscape, ast.PipeJSONUnescape,
		ast.PipeToTS, ast.PipeToTSMs, ast.PipeToTSUs, ast.PipeToJSON, ast.PipeToStr,
		ast.PipeSkipEmpty, ast.PipeIP4ToInt, ast.PipeExtractMainWord, ast.PipeExtractSubjectObject:
		// No parameters.

	default:
		panic(fmt.Sprintf("parser: unhandled pipe function %v", kind))
	}
	if err != nil {
		return nil, err
	}
	stage.Loc = p.loc(first.Start)
	return stage, nil
}

// parenthesized parses `( inner )`, where inner parses the contents.
func (p *parser) parenthesized(what noun, inner func() error) error {
	if !p.at("(") {
		return p.fail(what.In(), lParen)
	}
	p.open(what)
	if err := inner(); err != nil {
		return err
	}
	return p.close(what.In())
}

// parseSelector parses one of a closed set of words.
func (p *parser) parseSelector(words []string) (string, error) {
	tok := p.peek()
	if tok.Kind == token.Ident && slices.Contains(words, tok.Text) {
		return p.pop().Text, nil
	}
	opts := []report.DiagnosticOption{report.Note("expected one of `%s`", strings.Join(words, "`, `"))}
	if tok.Kind == token.Ident {
		opts = append(opts, didYouMean(tok.Text, words))
	}
	return "", p.failWith(pipeStage.In(), setOf(selector), opts...)
}

func unitHelp(tok token.Token) report.DiagnosticOption {
	if tok.Kind != token.Ident {
		return report.Note("the unit is one of `%s`", strings.Join(timeUnits, "`, `"))
	}
	return didYouMean(tok.Text, timeUnits)
}
