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

// atSelect checks whether a select expression is next: `select` followed by
// `*` or a column name.
func (p *parser) atSelect() bool {
	if !p.peek().IsKeyword("select") {
		return false
	}
	next := p.peekN(1)
	return next.Kind == token.Ident || next.Kind == token.WildKey && next.Text == "*"
}

// parseSQL parses `select columns from table where cond`.
func (p *parser) parseSQL() (*ast.SQLExpr, error) {
	kw := p.pop()
	expr := new(ast.SQLExpr)

	if tok := p.peek(); tok.Kind == token.WildKey && tok.Text == "*" {
		p.pop()
		expr.Star = true
	} else {
		for {
			col, err := p.expectIdent(columnList.In())
			if err != nil {
				return nil, err
			}
			expr.Columns = append(expr.Columns, col.Text)
			if !p.at(",") {
				break
			}
			p.pop()
		}
	}

	if !p.peek().IsKeyword("from") {
		return nil, p.fail(selectExpr.In(), kwFrom, comma)
	}
	p.pop()
	table, err := p.expectIdent(selectExpr.In())
	if err != nil {
		return nil, err
	}
	expr.Table = table.Text

	if !p.peek().IsKeyword("where") {
		return nil, p.fail(selectExpr.In(), kwWhere)
	}
	p.pop()
	if expr.Where, err = p.parseSQLCond(); err != nil {
		return nil, err
	}
	expr.Loc = p.loc(kw.Start)
	return expr, nil
}

// parseSQLCond parses a chain of terms joined by `and` and `or`.
//
// The chain associates to the left without precedence between the two
// operators: `a or b and c` is `(a or b) and c`.
func (p *parser) parseSQLCond() (ast.SQLCond, error) {
	start := p.peek().Start
	left, err := p.parseSQLTerm()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.SQLLogic
		switch tok := p.peek(); {
		case tok.IsKeyword("and"):
			op = ast.SQLAnd
		case tok.IsKeyword("or"):
			op = ast.SQLOr
		default:
			return left, nil
		}
		p.pop()
		right, err := p.parseSQLTerm()
		if err != nil {
			return nil, err
		}
		left = &ast.SQLBinary{Op: op, Left: left, Right: right, Loc: p.loc(start)}
	}
}

// parseSQLTerm parses a comparison, a negation or a parenthesized condition.
func (p *parser) parseSQLTerm() (ast.SQLCond, error) {
	tok := p.peek()
	switch {
	case tok.IsKeyword("not") && !isSQLOp(p.peekN(1)):
		p.pop()
		cond, err := p.parseSQLTerm()
		if err != nil {
			return nil, err
		}
		return &ast.SQLNot{Cond: cond, Loc: p.loc(tok.Start)}, nil

	case tok.IsPunct("("):
		p.open(whereClause)
		cond, err := p.parseSQLCond()
		if err != nil {
			return nil, err
		}
		if err := p.close(whereClause.In()); err != nil {
			return nil, err
		}
		return &ast.SQLParen{Cond: cond, Loc: p.loc(tok.Start)}, nil

	default:
		return p.parseComparison()
	}
}

// parseComparison parses `operand op value`.
func (p *parser) parseComparison() (*ast.SQLCompare, error) {
	start := p.peek().Start
	lhs, err := p.parseSQLOperand(whereClause.In())
	if err != nil {
		return nil, err
	}

	tok := p.peek()
	if !isSQLOp(tok) {
		return nil, p.fail(comparison.In(), comparisonOp)
	}
	op, _ := ast.SQLOpBySymbol(p.pop().Text)

	var rhs ast.SQLValue
	switch tok := p.peek(); {
	case p.atFunCall():
		rhs, err = p.parseFunCall()
	case p.atFetch(0):
		var fetch ast.Eval
		if fetch, err = p.parseFetch(); err == nil && p.at("{") {
			err = p.parseDefault(fetch)
		}
		if err == nil {
			rhs = fetch.(ast.SQLValue)
		}
	case tok.Kind == token.String:
		rhs = literalOf(p.pop(), ast.LitString)
	case tok.Kind == token.Number:
		rhs = literalOf(p.pop(), ast.LitNumber)
	case tok.Kind == token.Ident && p.peekN(1).IsPunct("("):
		var operand *ast.SQLOperand
		if operand, err = p.parseSQLOperand(comparison.In()); err == nil {
			rhs = operand
		}
	default:
		return nil, p.fail(comparison.In(), funCall, stringLit, number, varGet)
	}
	if err != nil {
		return nil, err
	}
	return &ast.SQLCompare{LHS: lhs, Op: op, RHS: rhs, Loc: p.loc(start)}, nil
}

// parseSQLOperand parses `col` or `fn(source)`.
func (p *parser) parseSQLOperand(where place) (*ast.SQLOperand, error) {
	name, err := p.expectIdent(where)
	if err != nil {
		return nil, err
	}
	operand := &ast.SQLOperand{Name: name.Text}
	if p.at("(") {
		err := p.parenthesized(comparison, func() (err error) {
			operand.Arg, err = p.parseVarGet(comparison.In())
			return err
		})
		if err != nil {
			return nil, err
		}
	}
	operand.Loc = p.loc(name.Start)
	return operand, nil
}

func isSQLOp(tok token.Token) bool {
	if tok.Kind != token.Punct {
		return false
	}
	_, ok := ast.SQLOpBySymbol(tok.Text)
	return ok
}
