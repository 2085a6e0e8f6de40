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

import (
	"slices"

	"github.com/bufbuild/oml/internal/interval"
)

// Index answers which nodes of a tree cover a given byte offset, for
// tools that map a cursor position back to syntax.
type Index struct {
	nodes interval.Intersect[int, Node]
}

// NewIndex indexes every node of the tree rooted at root. Nodes with empty
// spans are not indexed.
func NewIndex(root Node) *Index {
	idx := new(Index)
	Walk(root, func(n Node) bool {
		if span := n.Span(); span.Len() > 0 {
			idx.nodes.Insert(span.Start, span.End-1, n)
		}
		return true
	})
	return idx
}

// NodesAt returns every node whose span contains offset, outermost first.
func (i *Index) NodesAt(offset int) []Node {
	return slices.Clone(i.nodes.Get(offset).Value)
}

// Innermost returns the smallest node whose span contains offset, or nil.
func (i *Index) Innermost(offset int) Node {
	nodes := i.NodesAt(offset)
	if len(nodes) == 0 {
		return nil
	}
	return nodes[len(nodes)-1]
}
