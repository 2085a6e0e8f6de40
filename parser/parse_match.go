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
	"github.com/bufbuild/oml/token"
)

// parseMatch parses `match src { arms }` or `match (a, b) { arms }`.
//
// The width of tuple arms is not checked here; see [Validate].
func (p *parser) parseMatch() (*ast.MatchExpr, error) {
	kw := p.pop()
	m := new(ast.MatchExpr)

	if p.at("(") {
		p.open(matchSources)
		m.Multi = true
		for {
			src, err := p.parseVarGet(matchSources.In())
			if err != nil {
				return nil, err
			}
			m.Sources = append(m.Sources, src)
			if !p.at(",") {
				break
			}
			p.pop()
		}
		if len(m.Sources) < 2 {
			return nil, p.fail(matchSources.In(), comma)
		}
		if err := p.close(matchSources.In(), comma); err != nil {
			return nil, err
		}
	} else {
		src, err := p.parseVarGet(matchExpr.In())
		if err != nil {
			return nil, err
		}
		m.Sources = []ast.VarGet{src}
	}

	if !p.at("{") {
		return nil, p.fail(matchExpr.In(), lBrace)
	}
	p.open(matchExpr)
	for !p.at("}") {
		if m.Default != nil {
			// The default arm is always the last one.
			return nil, p.fail(matchExpr.In(), rBrace)
		}
		if p.atKeyword("_", "=>") {
			arm, err := p.parseDefaultArm()
			if err != nil {
				return nil, err
			}
			m.Default = arm
			continue
		}
		arm, err := p.parseCaseArm(m.Multi)
		if err != nil {
			return nil, err
		}
		m.Arms = append(m.Arms, arm)
	}
	if len(m.Arms) == 0 {
		return nil, p.fail(matchExpr.In(), matchArm)
	}
	if err := p.close(matchExpr.In()); err != nil {
		return nil, err
	}
	m.Loc = p.loc(kw.Start)
	return m, nil
}

// parseCaseArm parses `cond => result` or, for a tuple match,
// `(cond, cond) => result`.
func (p *parser) parseCaseArm(multi bool) (*ast.CaseArm, error) {
	start := p.peek().Start
	arm := new(ast.CaseArm)
	if multi {
		if !p.at("(") {
			return nil, p.fail(matchExpr.In(), matchArm, rBrace)
		}
		p.open(matchArm)
		for {
			cond, err := p.parseCondition()
			if err != nil {
				return nil, err
			}
			arm.Conds = append(arm.Conds, cond)
			if !p.at(",") {
				break
			}
			p.pop()
		}
		if err := p.close(matchArm.In(), comma); err != nil {
			return nil, err
		}
	} else {
		cond, err := p.parseCondition()
		if err != nil {
			return nil, err
		}
		arm.Conds = []*ast.Condition{cond}
	}

	result, err := p.parseArmResult()
	if err != nil {
		return nil, err
	}
	arm.Result = result
	arm.Loc = p.loc(start)
	p.skipArmTerminators()
	return arm, nil
}

// parseDefaultArm parses `_ => result`.
func (p *parser) parseDefaultArm() (*ast.DefaultArm, error) {
	start := p.pop().Start
	result, err := p.parseArmResult()
	if err != nil {
		return nil, err
	}
	arm := &ast.DefaultArm{Result: result, Loc: p.loc(start)}
	p.skipArmTerminators()
	return arm, nil
}

// parseArmResult parses `=> calc`.
func (p *parser) parseArmResult() (ast.Eval, error) {
	if _, err := p.expect("=>", arrow, matchArm.In()); err != nil {
		return nil, err
	}
	return p.parseCalc(matchArm.In())
}

// skipArmTerminators consumes the optional `,` and then the optional `;`
// after an arm.
func (p *parser) skipArmTerminators() {
	if p.at(",") {
		p.pop()
	}
	if p.at(";") {
		p.pop()
	}
}

// parseCondition parses an alternation of atoms, `a | b | c`.
func (p *parser) parseCondition() (*ast.Condition, error) {
	start := p.peek().Start
	cond := new(ast.Condition)
	for {
		atom, err := p.parseCondAtom()
		if err != nil {
			return nil, err
		}
		cond.Atoms = append(cond.Atoms, atom)
		if !p.at("|") {
			break
		}
		p.pop()
	}
	cond.Loc = p.loc(start)
	return cond, nil
}

// parseCondAtom parses one alternative of a condition.
func (p *parser) parseCondAtom() (ast.CondAtom, error) {
	tok := p.peek()
	switch {
	case p.atKeyword("in", "("):
		p.pop()
		atom := new(ast.InCond)
		err := p.parenthesized(condition, func() (err error) {
			if atom.Lo, err = p.parseValue(condition.In()); err != nil {
				return err
			}
			if _, err := p.expect(",", comma, condition.In()); err != nil {
				return err
			}
			atom.Hi, err = p.parseValue(condition.In())
			return err
		})
		if err != nil {
			return nil, err
		}
		atom.Loc = p.loc(tok.Start)
		return atom, nil

	case tok.IsPunct("!"):
		p.pop()
		value, err := p.parseValue(condition.In())
		if err != nil {
			return nil, err
		}
		return &ast.NotCond{Value: value, Loc: p.loc(tok.Start)}, nil

	case tok.Kind == token.Ident && p.peekN(1).IsPunct("("):
		if kind, ok := ast.MatchFunByName(tok.Text); ok {
			return p.parseMatchFun(kind)
		}
		if p.atValue(0) {
			return p.parseValue(condition.In())
		}
		return nil, p.failWith(condition.In(), setOf(matchPredicate, typedValue),
			didYouMean(tok.Text, slices.Concat(ast.MatchFunNames(), ast.DataTypeNames())))

	case p.atValue(0):
		return p.parseValue(condition.In())

	default:
		return nil, p.fail(condition.In(), typedValue, matchPredicate)
	}
}

// parseMatchFun parses a predicate such as `starts_with("x")`.
func (p *parser) parseMatchFun(kind ast.MatchFunKind) (*ast.MatchFun, error) {
	name := p.pop()
	fun := &ast.MatchFun{Kind: kind}

	// want lists the literal kinds of each argument, in order.
	var want []token.Kind
	switch kind {
	case ast.MatchStartsWith, ast.MatchEndsWith, ast.MatchContains, ast.MatchRegex, ast.MatchIEquals:
		want = []token.Kind{token.String}
	case ast.MatchIsEmpty:
	case ast.MatchGT, ast.MatchLT, ast.MatchEq:
		want = []token.Kind{token.Number}
	case ast.MatchInRange:
		want = []token.Kind{token.Number, token.Number}
	default:
		panic(fmt.Sprintf("parser: unhandled match predicate %v", kind))
	}

	err := p.parenthesized(matchPredicate, func() error {
		for i, lit := range want {
			if i > 0 {
				if _, err := p.expect(",", comma, matchPredicate.In()); err != nil {
					return err
				}
			}
			tok := p.peek()
			if tok.Kind != lit {
				return p.fail(matchPredicate.In(), literalNoun(lit))
			}
			p.pop()
			fun.Args = append(fun.Args, literalOf(tok, literalKind(lit)))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fun.Loc = p.loc(name.Start)
	return fun, nil
}

func literalNoun(kind token.Kind) noun {
	if kind == token.Number {
		return number
	}
	return stringLit
}

func literalKind(kind token.Kind) ast.LiteralKind {
	if kind == token.Number {
		return ast.LitNumber
	}
	return ast.LitString
}
