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

// Arg is one argument of take or read.
//
// The concrete types are *OptionArg, *KeysArg, *GetArg, *JSONPathArg,
// *PathArg and *IdentArg.
type Arg interface {
	Node
	arg()
}

// OptionArg is `option:[a, b]`: the first of the listed fields present.
type OptionArg struct {
	Names []string
	Loc   Span
}

// KeysArg is `keys:[...]` or `in:[...]`.
type KeysArg struct {
	// The keyword used, "keys" or "in".
	Keyword string
	Keys    []TargetName
	Loc     Span
}

// GetArg is `get: value`.
type GetArg struct {
	Value *Literal
	Loc   Span
}

// JSONPathArg is a raw path into a JSON value, such as `/a/b[0]`.
type JSONPathArg struct {
	Path string
	Loc  Span
}

// PathArg is a dotted or slashed field path, such as `a.b` or `a/b`.
type PathArg struct {
	Path *Path
	Loc  Span
}

// IdentArg is a single field name.
type IdentArg struct {
	Name string
	Loc  Span
}

func (a *OptionArg) Span() Span   { return a.Loc }
func (a *KeysArg) Span() Span     { return a.Loc }
func (a *GetArg) Span() Span      { return a.Loc }
func (a *JSONPathArg) Span() Span { return a.Loc }
func (a *PathArg) Span() Span     { return a.Loc }
func (a *IdentArg) Span() Span    { return a.Loc }

func (*OptionArg) arg()   {}
func (*KeysArg) arg()     {}
func (*GetArg) arg()      {}
func (*JSONPathArg) arg() {}
func (*PathArg) arg()     {}
func (*IdentArg) arg()    {}
