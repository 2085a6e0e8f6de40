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

// Package interval provides an interval intersection map over integer
// endpoints, used to answer "which syntax nodes cover this offset" queries.
package interval

import (
	"fmt"
	"iter"
	"slices"

	"github.com/tidwall/btree"
	"golang.org/x/exp/constraints" //nolint:exptostd // Tries to replace w/ cmp.
)

// Endpoint is a type that may be used as an interval endpoint.
type Endpoint = constraints.Integer

// Intersect is an interval intersection map. Inserted intervals are cut into
// disjoint pieces; each piece records, in insertion order, the values of every
// interval that covers it.
//
// A zero value is ready to use.
type Intersect[K Endpoint, V any] struct {
	// Pieces keyed by their (inclusive) end.
	tree btree.Map[K, *Entry[K, []V]]
}

// Entry is a piece of an [Intersect]: a maximal range over which the same set
// of intervals apply.
type Entry[K Endpoint, V any] struct {
	Start, End K // Inclusive.
	Value      V
}

// Contains returns whether an entry contains a given point.
func (e Entry[K, V]) Contains(point K) bool {
	return e.Start <= point && point <= e.End
}

// Get returns the piece containing point, whose Value lists every interval
// covering point.
//
// If no interval covers point, the returned Value is nil.
func (m *Intersect[K, V]) Get(point K) Entry[K, []V] {
	it := m.tree.Iter()
	if !it.Seek(point) || !it.Value().Contains(point) {
		return Entry[K, []V]{}
	}
	return *it.Value()
}

// Entries returns an iterator over the pieces of this map, in order.
func (m *Intersect[K, V]) Entries() iter.Seq[Entry[K, []V]] {
	return func(yield func(Entry[K, []V]) bool) {
		it := m.tree.Iter()
		for more := it.First(); more; more = it.Next() {
			if !yield(*it.Value()) {
				return
			}
		}
	}
}

// Insert adds the interval [start, end] with the given value.
//
// Returns true if the interval was disjoint from all others in the map.
func (m *Intersect[K, V]) Insert(start, end K, value V) (disjoint bool) {
	if start > end {
		panic(fmt.Sprintf("interval: start (%#v) > end (%#v)", start, end))
	}

	var overlaps []*Entry[K, []V]
	it := m.tree.Iter()
	for more := it.Seek(start); more && it.Value().Start <= end; more = it.Next() {
		overlaps = append(overlaps, it.Value())
	}

	var pieces []*Entry[K, []V]
	piece := func(start, end K, values []V) {
		pieces = append(pieces, &Entry[K, []V]{Start: start, End: end, Value: values})
	}

	// next is the first point of [start, end] not yet covered by a piece.
	// covered guards against next overflowing past the maximum K.
	next, covered := start, false
	for _, e := range overlaps {
		m.tree.Delete(e.End)

		lo, hi := max(e.Start, start), min(e.End, end)
		if e.Start < lo {
			piece(e.Start, lo-1, e.Value)
		}
		if next < lo {
			piece(next, lo-1, []V{value})
		}
		// Clip so that pieces sharing a prefix of values never alias.
		piece(lo, hi, append(slices.Clip(e.Value), value))
		if hi < e.End {
			piece(hi+1, e.End, e.Value)
		}

		if hi == end {
			covered = true
		} else {
			next = hi + 1
		}
	}
	if !covered {
		piece(next, end, []V{value})
	}

	for _, p := range pieces {
		m.tree.Set(p.End, p)
	}
	return len(overlaps) == 0
}

// Format implements [fmt.Formatter].
func (m *Intersect[K, V]) Format(s fmt.State, v rune) {
	fmt.Fprint(s, "{")
	first := true
	for entry := range m.Entries() {
		if !first {
			fmt.Fprint(s, ", ")
		}
		first = false

		if entry.Start == entry.End {
			fmt.Fprintf(s, "%#v: ", entry.Start)
		} else {
			fmt.Fprintf(s, "[%#v, %#v]: ", entry.Start, entry.End)
		}
		fmt.Fprintf(s, fmt.FormatString(s, v), entry.Value)
	}
	fmt.Fprint(s, "}")
}
