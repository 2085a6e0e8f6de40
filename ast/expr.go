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

// Eval is the right-hand side of an item.
//
// The concrete types are *PipeExpr, *FmtExpr, *ObjectExpr, *CollectExpr,
// *MatchExpr, *SQLExpr, *TakeExpr, *ReadExpr, *ValueExpr, *FunCall and
// *Ident.
//
// Some positions accept only a subset: a default body or an object field
// holds a *TakeExpr, *ReadExpr, *ValueExpr, *FunCall or *Ident, and a match
// arm result additionally allows a *CollectExpr but not a *FunCall.
type Eval interface {
	Node
	eval()
}

// VarGet is a reference to a value: `take(...)`, `read(...)` or `@name`.
//
// When a *TakeExpr or *ReadExpr is used as a VarGet, its Default is nil.
type VarGet interface {
	Node
	varGet()
}

// TakeExpr is `take(args) { _ : fallback }`. Taking a field consumes it, so
// later items no longer see it.
type TakeExpr struct {
	Args    []Arg
	Default Eval // The fallback of the default body, or nil.
	Loc     Span
}

// ReadExpr is `read(args) { _ : fallback }`. Unlike take, read leaves the
// field in place.
type ReadExpr struct {
	Args    []Arg
	Default Eval
	Loc     Span
}

// AtRef is `@name`, a reference to a value bound earlier.
type AtRef struct {
	Name string
	Loc  Span
}

// LiteralKind is the lexical form of a [Literal].
type LiteralKind int

const (
	LitString LiteralKind = iota
	LitNumber
	LitIP
	LitBool
	LitIdent
)

// String implements [fmt.Stringer].
func (k LiteralKind) String() string {
	switch k {
	case LitString:
		return "string"
	case LitNumber:
		return "number"
	case LitIP:
		return "ip"
	case LitBool:
		return "bool"
	case LitIdent:
		return "ident"
	default:
		return "LiteralKind(?)"
	}
}

// Literal is a scalar written in source.
type Literal struct {
	Kind LiteralKind
	// The literal's text. For strings this is the decoded contents, without
	// quotes; for everything else it is the source text.
	Value string
	Loc   Span
}

func (l *Literal) Span() Span { return l.Loc }

// ValueExpr is a typed literal such as `ip(10.0.0.1)` or `chars("x")`.
type ValueExpr struct {
	Type    *DataType
	Literal *Literal
	Loc     Span
}

// FunCall is a call to a built-in such as `Now::time()`.
type FunCall struct {
	Kind FunCallKind
	Loc  Span
}

// Ident is a bare identifier used as a value.
type Ident struct {
	Name string
	Loc  Span
}

// FmtExpr is `fmt("template", sources...)`.
type FmtExpr struct {
	Template *Literal
	Args     []VarGet
	Loc      Span
}

// ObjectExpr is `object { fields }`.
type ObjectExpr struct {
	Fields []*MapItem
	Loc    Span
}

// MapItem is one field assignment inside an object.
type MapItem struct {
	Names []string
	Type  *DataType
	Value Eval
	Loc   Span
}

func (m *MapItem) Span() Span { return m.Loc }

// CollectExpr is `collect source`.
type CollectExpr struct {
	Source VarGet
	Loc    Span
}

// PipeExpr is `[pipe] source | stage | stage ...`.
type PipeExpr struct {
	// Whether the optional `pipe` keyword was written.
	Keyword bool
	Source  VarGet
	Stages  []*PipeFun
	Loc     Span
}

// PipeFun is one stage of a pipe. Which of the parameter fields are set
// depends on Kind; the rest are zero.
type PipeFun struct {
	Kind PipeFunKind

	// The index of nth, or the offset of Time::to_ts_zone, which may
	// carry a leading `-`.
	Number string
	// The segments of get(a/b.c).
	Path []string
	// The key of base64_decode, the selector of path and url, or the unit
	// of Time::to_ts_zone.
	Word string
	// The argument of starts_with and map_to.
	Literal *Literal

	Loc Span
}

func (p *PipeFun) Span() Span { return p.Loc }

func (e *TakeExpr) Span() Span    { return e.Loc }
func (e *ReadExpr) Span() Span    { return e.Loc }
func (e *AtRef) Span() Span       { return e.Loc }
func (e *ValueExpr) Span() Span   { return e.Loc }
func (e *FunCall) Span() Span     { return e.Loc }
func (e *Ident) Span() Span       { return e.Loc }
func (e *FmtExpr) Span() Span     { return e.Loc }
func (e *ObjectExpr) Span() Span  { return e.Loc }
func (e *CollectExpr) Span() Span { return e.Loc }
func (e *PipeExpr) Span() Span    { return e.Loc }

func (*PipeExpr) eval()    {}
func (*FmtExpr) eval()     {}
func (*ObjectExpr) eval()  {}
func (*CollectExpr) eval() {}
func (*MatchExpr) eval()   {}
func (*SQLExpr) eval()     {}
func (*TakeExpr) eval()    {}
func (*ReadExpr) eval()    {}
func (*ValueExpr) eval()   {}
func (*FunCall) eval()     {}
func (*Ident) eval()       {}

func (*TakeExpr) varGet() {}
func (*ReadExpr) varGet() {}
func (*AtRef) varGet()    {}
