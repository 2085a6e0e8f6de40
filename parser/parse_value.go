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
	"github.com/bufbuild/oml/token"
)

// atValue checks whether a typed value starts n tokens ahead: a data type
// followed by `(`, or one of the parametrized types followed by `/`.
func (p *parser) atValue(n int) bool {
	tok := p.peekN(n)
	if tok.Kind != token.Ident {
		return false
	}
	kind, ok := ast.DataTypeByName(tok.Text)
	if !ok {
		return false
	}
	next := p.peekN(n + 1)
	return next.IsPunct("(") ||
		(kind == ast.TypeArray || kind == ast.TypeTime) && next.IsPunct("/")
}

// atFunCall checks whether a built-in call like `Now::time()` is next.
func (p *parser) atFunCall() bool {
	return p.atKeyword("Now", "::")
}

// parseDataType parses a data type annotation.
func (p *parser) parseDataType(where place) (*ast.DataType, error) {
	tok := p.peek()
	if tok.Kind != token.Ident {
		return nil, p.fail(where, dataType)
	}
	kind, ok := ast.DataTypeByName(tok.Text)
	if !ok {
		return nil, p.failWith(where, setOf(dataType), didYouMean(tok.Text, ast.DataTypeNames()))
	}
	p.pop()

	ty := &ast.DataType{Kind: kind, Loc: ast.Span{Start: tok.Start, End: tok.End}}
	if (kind == ast.TypeArray || kind == ast.TypeTime) && p.at("/") {
		p.pop()
		param, err := p.expectIdent(dataType.In())
		if err != nil {
			return nil, err
		}
		ty.Param = param.Text
		ty.Loc.End = param.End
	}
	return ty, nil
}

// parseValue parses a typed value, `type(literal)`.
func (p *parser) parseValue(where place) (*ast.ValueExpr, error) {
	start := p.peek().Start
	ty, err := p.parseDataType(where)
	if err != nil {
		return nil, err
	}
	if !p.at("(") {
		return nil, p.fail(typedValue.In(), lParen)
	}
	p.open(typedValue)
	lit, err := p.parseLiteral(typedValue.In())
	if err != nil {
		return nil, err
	}
	if err := p.close(typedValue.In()); err != nil {
		return nil, err
	}
	return &ast.ValueExpr{Type: ty, Literal: lit, Loc: p.loc(start)}, nil
}

// parseLiteral parses a string, number, IP, boolean or bare identifier.
func (p *parser) parseLiteral(where place) (*ast.Literal, error) {
	tok := p.peek()
	var kind ast.LiteralKind
	switch {
	case tok.Kind == token.String:
		kind = ast.LitString
	case tok.Kind == token.Number:
		kind = ast.LitNumber
	case tok.Kind == token.IP:
		kind = ast.LitIP
	case tok.IsKeyword("true") || tok.IsKeyword("false"):
		kind = ast.LitBool
	case tok.Kind == token.Ident:
		kind = ast.LitIdent
	default:
		return nil, p.fail(where, literal)
	}
	p.pop()
	return literalOf(tok, kind), nil
}

func literalOf(tok token.Token, kind ast.LiteralKind) *ast.Literal {
	return &ast.Literal{
		Kind:  kind,
		Value: tok.Value(),
		Loc:   ast.Span{Start: tok.Start, End: tok.End},
	}
}

// parseFunCall parses a built-in call such as `Now::time()`.
func (p *parser) parseFunCall() (*ast.FunCall, error) {
	ns := p.pop()
	p.pop() // ::
	name := p.peek()
	kind, ok := ast.FunCallByName(ns.Text + "::" + name.Text)
	if name.Kind != token.Ident || !ok {
		return nil, p.failWith(funCall.In(), setOf(funName), didYouMean(ns.Text+"::"+name.Text, ast.FunCallNames()))
	}
	p.pop()
	if !p.at("(") {
		return nil, p.fail(funCall.In(), lParen)
	}
	p.open(funCall)
	if err := p.close(funCall.In()); err != nil {
		return nil, err
	}
	return &ast.FunCall{Kind: kind, Loc: p.loc(ns.Start)}, nil
}
