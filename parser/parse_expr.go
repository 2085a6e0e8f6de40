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
	"slices"

	"github.com/bufbuild/oml/ast"
	"github.com/bufbuild/oml/report"
	"github.com/bufbuild/oml/token"
)

// Forms allowed where only a plain value can go.
const (
	genAcqForms = "take(...), read(...), a typed value, a function call or an identifier"
	calcForms   = "take(...), read(...), a typed value, collect or an identifier"
)

// evalStarts lists the keywords that begin an expression, for suggestions.
var evalStarts = []string{"take", "read", "pipe", "fmt", "object", "collect", "match", "select"}

// atFetch checks whether `take(` or `read(` starts n tokens ahead.
func (p *parser) atFetch(n int) bool {
	tok := p.peekN(n)
	return (tok.IsKeyword("take") || tok.IsKeyword("read")) && p.peekN(n+1).IsPunct("(")
}

// atVarGet checks whether a VarGet starts n tokens ahead.
func (p *parser) atVarGet(n int) bool {
	return p.peekN(n).IsPunct("@") || p.atFetch(n)
}

// parseEval parses the right-hand side of an item.
//
// Keyword forms are tried in order before falling back to an identifier, so a
// field called `take` is still usable as a plain value.
func (p *parser) parseEval(where place) (ast.Eval, error) {
	tok := p.peek()
	switch {
	case p.atFetch(0):
		fetch, err := p.parseFetch()
		if err != nil {
			return nil, err
		}
		if p.at("|") {
			return p.parsePipe(fetch.(ast.VarGet), false, tok.Start)
		}
		if p.at("{") {
			if err := p.parseDefault(fetch); err != nil {
				return nil, err
			}
		}
		return fetch, nil

	case tok.IsPunct("@"):
		ref, err := p.parseAtRef()
		if err != nil {
			return nil, err
		}
		if !p.at("|") {
			return nil, p.failWith(pipeExpr.In(), setOf(bar),
				report.Note("`@name` can only be used as the source of a pipe"))
		}
		return p.parsePipe(ref, false, tok.Start)

	case tok.IsKeyword("pipe") && p.atVarGet(1):
		p.pop()
		src, err := p.parseVarGet(pipeExpr.In())
		if err != nil {
			return nil, err
		}
		if !p.at("|") {
			return nil, p.fail(pipeExpr.In(), bar)
		}
		return p.parsePipe(src, true, tok.Start)

	case p.atKeyword("fmt", "("):
		return p.parseFmt()

	case p.atKeyword("object", "{"):
		return p.parseObject()

	case tok.IsKeyword("collect") && p.atVarGet(1):
		return p.parseCollect()

	case tok.IsKeyword("match") && (p.peekN(1).IsPunct("(") || p.atVarGet(1)):
		return p.parseMatch()

	case p.atSelect():
		return p.parseSQL()

	case p.atFunCall():
		return p.parseFunCall()

	case p.atValue(0):
		return p.parseValue(where)

	case tok.Kind == token.Ident:
		if p.peekN(1).IsPunct("(") {
			return nil, p.failWith(where, setOf(expression),
				didYouMean(tok.Text, slices.Concat(evalStarts, ast.DataTypeNames())))
		}
		p.pop()
		return &ast.Ident{Name: tok.Text, Loc: ast.Span{Start: tok.Start, End: tok.End}}, nil

	default:
		return nil, p.fail(where, expression)
	}
}

// parseGenAcq parses the restricted value form allowed in default bodies and
// object fields.
func (p *parser) parseGenAcq(where place) (ast.Eval, error) {
	tok := p.peek()
	switch {
	case p.atFetch(0):
		fetch, err := p.parseFetch()
		if err != nil {
			return nil, err
		}
		if p.at("{") {
			if err := p.parseDefault(fetch); err != nil {
				return nil, err
			}
		}
		return fetch, nil

	case p.atFunCall():
		return p.parseFunCall()

	case p.atValue(0):
		return p.parseValue(where)

	case tok.Kind == token.Ident && !p.peekN(1).IsPunct("(") && !p.atVarGet(1) && !p.peekN(1).IsPunct("{"):
		p.pop()
		return &ast.Ident{Name: tok.Text, Loc: ast.Span{Start: tok.Start, End: tok.End}}, nil

	default:
		return nil, p.failWith(where, setOf(expression), report.Note("only %s can go here", genAcqForms))
	}
}

// parseCalc parses the result of a match arm.
func (p *parser) parseCalc(where place) (ast.Eval, error) {
	tok := p.peek()
	switch {
	case p.atFetch(0):
		fetch, err := p.parseFetch()
		if err != nil {
			return nil, err
		}
		if p.at("{") {
			if err := p.parseDefault(fetch); err != nil {
				return nil, err
			}
		}
		return fetch, nil

	case tok.IsKeyword("collect") && p.atVarGet(1):
		return p.parseCollect()

	case p.atValue(0):
		return p.parseValue(where)

	// Arm terminators are optional, so a `(` here may open the next tuple
	// arm.
	case tok.Kind == token.Ident && !p.atVarGet(1) && !p.peekN(1).IsPunct("{"):
		p.pop()
		return &ast.Ident{Name: tok.Text, Loc: ast.Span{Start: tok.Start, End: tok.End}}, nil

	default:
		return nil, p.failWith(where, setOf(expression), report.Note("only %s can go here", calcForms))
	}
}

// parseFetch parses `take(args)` or `read(args)`, without a default body.
// The result is a *ast.TakeExpr or *ast.ReadExpr.
func (p *parser) parseFetch() (ast.Eval, error) {
	kw := p.pop()
	p.open(argList)
	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}
	loc := p.loc(kw.Start)
	if kw.Text == "take" {
		return &ast.TakeExpr{Args: args, Loc: loc}, nil
	}
	return &ast.ReadExpr{Args: args, Loc: loc}, nil
}

// parseDefault parses `{ _ : value }` after a fetch and attaches it.
func (p *parser) parseDefault(fetch ast.Eval) error {
	p.open(defaultBody)
	if !p.peek().IsKeyword("_") {
		return p.fail(defaultBody.In(), underscore)
	}
	p.pop()
	if _, err := p.expect(":", colon, defaultBody.In()); err != nil {
		return err
	}
	value, err := p.parseGenAcq(defaultBody.In())
	if err != nil {
		return err
	}
	if p.at(";") {
		p.pop()
	}
	if err := p.close(defaultBody.In(), semicolon); err != nil {
		return err
	}

	switch fetch := fetch.(type) {
	case *ast.TakeExpr:
		fetch.Default = value
		fetch.Loc.End = p.prevEnd
	case *ast.ReadExpr:
		fetch.Default = value
		fetch.Loc.End = p.prevEnd
	}
	return nil
}

// parseVarGet parses `take(args)`, `read(args)` or `@name`.
func (p *parser) parseVarGet(where place) (ast.VarGet, error) {
	switch {
	case p.at("@"):
		return p.parseAtRef()
	case p.atFetch(0):
		fetch, err := p.parseFetch()
		if err != nil {
			return nil, err
		}
		return fetch.(ast.VarGet), nil
	default:
		return nil, p.fail(where, varGet)
	}
}

// parseAtRef parses `@name`.
func (p *parser) parseAtRef() (*ast.AtRef, error) {
	at := p.pop()
	name, err := p.expectIdent(varGet.In())
	if err != nil {
		return nil, err
	}
	return &ast.AtRef{Name: name.Text, Loc: p.loc(at.Start)}, nil
}

// parseFmt parses `fmt("template", sources...)`.
func (p *parser) parseFmt() (*ast.FmtExpr, error) {
	kw := p.pop()
	p.open(fmtExpr)
	tok := p.peek()
	if tok.Kind != token.String {
		return nil, p.fail(fmtExpr.In(), stringLit)
	}
	p.pop()
	expr := &ast.FmtExpr{Template: literalOf(tok, ast.LitString)}

	if !p.at(",") {
		return nil, p.fail(fmtExpr.In(), comma)
	}
	for p.at(",") {
		p.pop()
		src, err := p.parseVarGet(fmtExpr.In())
		if err != nil {
			return nil, err
		}
		expr.Args = append(expr.Args, src)
	}
	if err := p.close(fmtExpr.In(), comma); err != nil {
		return nil, err
	}
	expr.Loc = p.loc(kw.Start)
	return expr, nil
}

// parseObject parses `object { fields }`.
func (p *parser) parseObject() (*ast.ObjectExpr, error) {
	kw := p.pop()
	p.open(objectExpr)
	obj := new(ast.ObjectExpr)
	for !p.at("}") {
		field, err := p.parseMapItem()
		if err != nil {
			return nil, err
		}
		obj.Fields = append(obj.Fields, field)
	}
	if len(obj.Fields) == 0 {
		return nil, p.fail(objectExpr.In(), objectField)
	}
	if err := p.close(objectExpr.In()); err != nil {
		return nil, err
	}
	obj.Loc = p.loc(kw.Start)
	return obj, nil
}

// parseMapItem parses one `names : type = value ;` field of an object.
func (p *parser) parseMapItem() (*ast.MapItem, error) {
	first, err := p.expectIdent(objectExpr.In(), objectField, rBrace)
	if err != nil {
		return nil, err
	}
	field := &ast.MapItem{Names: []string{first.Text}}
	for p.at(",") {
		p.pop()
		name, err := p.expectIdent(objectField.In())
		if err != nil {
			return nil, err
		}
		field.Names = append(field.Names, name.Text)
	}
	if p.at(":") {
		p.pop()
		if field.Type, err = p.parseDataType(objectField.In()); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect("=", equals, objectField.In()); err != nil {
		return nil, err
	}
	if field.Value, err = p.parseGenAcq(objectField.In()); err != nil {
		return nil, err
	}
	if p.at(";") {
		p.pop()
	}
	field.Loc = p.loc(first.Start)
	return field, nil
}

// parseCollect parses `collect source`.
func (p *parser) parseCollect() (*ast.CollectExpr, error) {
	kw := p.pop()
	src, err := p.parseVarGet(collectExpr.In())
	if err != nil {
		return nil, err
	}
	return &ast.CollectExpr{Source: src, Loc: p.loc(kw.Start)}, nil
}
