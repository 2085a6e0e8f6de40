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

// Span is a byte range [Start, End) of the source a node was parsed from.
type Span struct {
	Start, End int
}

// Len returns the number of bytes in this span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Contains returns whether offset falls within this span.
func (s Span) Contains(offset int) bool {
	return s.Start <= offset && offset < s.End
}

// Join returns the smallest span containing both s and t.
func (s Span) Join(t Span) Span {
	return Span{Start: min(s.Start, t.Start), End: max(s.End, t.End)}
}

// String implements [fmt.Stringer].
func (s Span) String() string {
	return fmt.Sprintf("[%d:%d]", s.Start, s.End)
}

// Node is any node of the syntax tree.
type Node interface {
	Span() Span
}
