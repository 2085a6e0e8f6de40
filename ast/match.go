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

package ast

// MatchExpr is a match over one source, `match src { arms }`, or over a
// tuple of sources, `match (a, b) { (c1, c2) => ... }`.
type MatchExpr struct {
	Sources []VarGet
	// Whether this is the tuple form. A tuple always has at least two
	// sources.
	Multi   bool
	Arms    []*CaseArm
	Default *DefaultArm
	Loc     Span
}

func (m *MatchExpr) Span() Span { return m.Loc }

// CaseArm is `cond => result`, or `(cond, cond) => result` in a tuple match.
// Conds has one entry per source in a well-formed match.
type CaseArm struct {
	Conds  []*Condition
	Result Eval
	Loc    Span
}

func (a *CaseArm) Span() Span { return a.Loc }

// DefaultArm is `_ => result`.
type DefaultArm struct {
	Result Eval
	Loc    Span
}

func (a *DefaultArm) Span() Span { return a.Loc }

// Condition is a disjunction `a | b | c` of atoms.
type Condition struct {
	Atoms []CondAtom
	Loc   Span
}

func (c *Condition) Span() Span { return c.Loc }

// CondAtom is one alternative of a [Condition].
//
// The concrete types are *InCond, *NotCond, *MatchFun and *ValueExpr; a
// bare *ValueExpr matches by equality.
type CondAtom interface {
	Node
	condAtom()
}

// InCond is `in(lo, hi)`.
type InCond struct {
	Lo, Hi *ValueExpr
	Loc    Span
}

// NotCond is `!value`.
type NotCond struct {
	Value *ValueExpr
	Loc   Span
}

// MatchFun is a named predicate such as `starts_with("x")`.
type MatchFun struct {
	Kind MatchFunKind
	Args []*Literal
	Loc  Span
}

func (c *InCond) Span() Span   { return c.Loc }
func (c *NotCond) Span() Span  { return c.Loc }
func (c *MatchFun) Span() Span { return c.Loc }

func (*InCond) condAtom()    {}
func (*NotCond) condAtom()   {}
func (*MatchFun) condAtom()  {}
func (*ValueExpr) condAtom() {}
