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

// SQLExpr is `select columns from table where cond`.
type SQLExpr struct {
	// Set for `select *`; Columns is then empty.
	Star    bool
	Columns []string
	Table   string
	Where   SQLCond
	Loc     Span
}

func (s *SQLExpr) Span() Span { return s.Loc }

// SQLCond is a where clause or part of one.
//
// The concrete types are *SQLBinary, *SQLNot, *SQLParen and *SQLCompare.
type SQLCond interface {
	Node
	sqlCond()
}

// SQLLogic is `and` or `or`.
type SQLLogic int

const (
	SQLAnd SQLLogic = iota
	SQLOr
)

// String implements [fmt.Stringer].
func (l SQLLogic) String() string {
	if l == SQLOr {
		return "or"
	}
	return "and"
}

// SQLBinary joins two conditions. Chains are left-associative in source
// order: `a and b or c` is `(a and b) or c`, and `a or b and c` is
// `(a or b) and c`.
type SQLBinary struct {
	Op          SQLLogic
	Left, Right SQLCond
	Loc         Span
}

// SQLNot is `not cond`.
type SQLNot struct {
	Cond SQLCond
	Loc  Span
}

// SQLParen is `(cond)`.
type SQLParen struct {
	Cond SQLCond
	Loc  Span
}

// SQLCompare is a comparison `lhs op rhs`.
type SQLCompare struct {
	LHS *SQLOperand
	Op  SQLOp
	RHS SQLValue
	Loc Span
}

// SQLOperand is a column, optionally wrapped in a function over a value:
// `col` or `fn(take(x))`.
type SQLOperand struct {
	Name string
	Arg  VarGet // Nil for a plain column.
	Loc  Span
}

// SQLValue is the right-hand side of a comparison.
//
// The concrete types are *FunCall, *ReadExpr, *TakeExpr, *Literal (a string
// or number) and *SQLOperand (only in its function form).
type SQLValue interface {
	Node
	sqlValue()
}

func (c *SQLBinary) Span() Span  { return c.Loc }
func (c *SQLNot) Span() Span     { return c.Loc }
func (c *SQLParen) Span() Span   { return c.Loc }
func (c *SQLCompare) Span() Span { return c.Loc }
func (o *SQLOperand) Span() Span { return o.Loc }

func (*SQLBinary) sqlCond()  {}
func (*SQLNot) sqlCond()     {}
func (*SQLParen) sqlCond()   {}
func (*SQLCompare) sqlCond() {}

func (*FunCall) sqlValue()    {}
func (*ReadExpr) sqlValue()   {}
func (*TakeExpr) sqlValue()   {}
func (*Literal) sqlValue()    {}
func (*SQLOperand) sqlValue() {}
