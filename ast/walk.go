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

import "fmt"

// Children returns the direct children of n, in source order. Nil children
// are omitted.
func Children(n Node) []Node {
	var out []Node
	add := func(nodes ...Node) {
		for _, n := range nodes {
			if !isNil(n) {
				out = append(out, n)
			}
		}
	}

	switch n := n.(type) {
	case *Document:
		add(n.Header)
		// Statics and items interleave in the source.
		i, j := 0, 0
		for i < len(n.Statics) || j < len(n.Items) {
			if j == len(n.Items) || (i < len(n.Statics) && n.Statics[i].Loc.Start < n.Items[j].Loc.Start) {
				add(n.Statics[i])
				i++
			} else {
				add(n.Items[j])
				j++
			}
		}
		for _, p := range n.Privacy {
			add(p)
		}
	case *Header:
		add(n.Name)
		for _, r := range n.Rules {
			add(r)
		}
	case *StaticBlock:
		for _, item := range n.Items {
			add(item)
		}
	case *Item:
		for _, t := range n.Targets {
			add(t)
		}
		add(n.Value)
	case *Target:
		add(n.Type)

	case *TakeExpr:
		for _, a := range n.Args {
			add(a)
		}
		add(n.Default)
	case *ReadExpr:
		for _, a := range n.Args {
			add(a)
		}
		add(n.Default)
	case *ValueExpr:
		add(n.Type, n.Literal)
	case *FmtExpr:
		add(n.Template)
		for _, a := range n.Args {
			add(a)
		}
	case *ObjectExpr:
		for _, f := range n.Fields {
			add(f)
		}
	case *MapItem:
		add(n.Type, n.Value)
	case *CollectExpr:
		add(n.Source)
	case *PipeExpr:
		add(n.Source)
		for _, s := range n.Stages {
			add(s)
		}
	case *PipeFun:
		add(n.Literal)
	case *PathArg:
		add(n.Path)
	case *GetArg:
		add(n.Value)

	case *MatchExpr:
		for _, s := range n.Sources {
			add(s)
		}
		for _, a := range n.Arms {
			add(a)
		}
		add(n.Default)
	case *CaseArm:
		for _, c := range n.Conds {
			add(c)
		}
		add(n.Result)
	case *DefaultArm:
		add(n.Result)
	case *Condition:
		for _, a := range n.Atoms {
			add(a)
		}
	case *InCond:
		add(n.Lo, n.Hi)
	case *NotCond:
		add(n.Value)
	case *MatchFun:
		for _, a := range n.Args {
			add(a)
		}

	case *SQLExpr:
		add(n.Where)
	case *SQLBinary:
		add(n.Left, n.Right)
	case *SQLNot:
		add(n.Cond)
	case *SQLParen:
		add(n.Cond)
	case *SQLCompare:
		add(n.LHS, n.RHS)
	case *SQLOperand:
		add(n.Arg)

	case *Path, *RulePath, *DataType, *PrivacyItem, *AtRef, *FunCall, *Ident,
		*Literal, *OptionArg, *KeysArg, *JSONPathArg, *IdentArg:
		// Leaves.
	default:
		panic(fmt.Sprintf("ast: unexpected node type %T", n))
	}
	return out
}

// Walk traverses the tree rooted at n in depth-first order, calling visit
// for each node before its children. If visit returns false, the children
// of that node are skipped.
func Walk(n Node, visit func(Node) bool) {
	if isNil(n) || !visit(n) {
		return
	}
	for _, child := range Children(n) {
		Walk(child, visit)
	}
}

// isNil checks for both a nil interface and a typed nil pointer, which is
// what an absent optional child looks like once stored in a Node.
func isNil(n Node) bool {
	switch n := n.(type) {
	case nil:
		return true
	case *Header:
		return n == nil
	case *Path:
		return n == nil
	case *DataType:
		return n == nil
	case *Literal:
		return n == nil
	case *DefaultArm:
		return n == nil
	case *SQLOperand:
		return n == nil
	case *ValueExpr:
		return n == nil
	default:
		return false
	}
}
