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

package interval_test

import (
	"fmt"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bufbuild/oml/internal/interval"
)

func TestInsert(t *testing.T) {
	t.Parallel()
	type in struct {
		start, end int
		value      string
	}
	type out = interval.Entry[int, []string]

	tests := []struct {
		name   string
		ranges []in
		want   []out
	}{
		{
			name:   "empty",
			ranges: []in{{0, 9, "foo"}},
			want:   []out{{0, 9, []string{"foo"}}},
		},
		{
			name:   "disjoint",
			ranges: []in{{30, 39, "bar"}, {0, 9, "foo"}, {20, 25, "baz"}},
			want: []out{
				{0, 9, []string{"foo"}},
				{20, 25, []string{"baz"}},
				{30, 39, []string{"bar"}},
			},
		},
		{
			name:   "nested",
			ranges: []in{{0, 9, "foo"}, {1, 2, "baz"}},
			want: []out{
				{0, 0, []string{"foo"}},
				{1, 2, []string{"foo", "baz"}},
				{3, 9, []string{"foo"}},
			},
		},
		{
			name:   "same",
			ranges: []in{{0, 9, "foo"}, {0, 9, "baz"}},
			want:   []out{{0, 9, []string{"foo", "baz"}}},
		},
		{
			name:   "straddle",
			ranges: []in{{0, 9, "foo"}, {30, 39, "bar"}, {9, 30, "baz"}},
			want: []out{
				{0, 8, []string{"foo"}},
				{9, 9, []string{"foo", "baz"}},
				{10, 29, []string{"baz"}},
				{30, 30, []string{"bar", "baz"}},
				{31, 39, []string{"bar"}},
			},
		},
		{
			name:   "enclosing",
			ranges: []in{{0, 9, "foo"}, {-2, 12, "baz"}},
			want: []out{
				{-2, -1, []string{"baz"}},
				{0, 9, []string{"foo", "baz"}},
				{10, 12, []string{"baz"}},
			},
		},
		{
			name:   "max",
			ranges: []in{{0, 9, "foo"}, {30, 39, "bar"}, {29, math.MaxInt, "baz"}},
			want: []out{
				{0, 9, []string{"foo"}},
				{29, 29, []string{"baz"}},
				{30, 39, []string{"bar", "baz"}},
				{40, math.MaxInt, []string{"baz"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := new(interval.Intersect[int, string])
			for _, e := range tt.ranges {
				m.Insert(e.start, e.end, e.value)
			}
			assert.Equal(t, tt.want, slices.Collect(m.Entries()))
		})
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	m := new(interval.Intersect[int, string])
	assert.True(t, m.Insert(0, 20, "item"))
	assert.False(t, m.Insert(4, 10, "take"))
	assert.False(t, m.Insert(8, 9, "arg"))

	assert.Equal(t, []string{"item"}, m.Get(2).Value)
	assert.Equal(t, []string{"item", "take", "arg"}, m.Get(8).Value)
	assert.Equal(t, []string{"item", "take"}, m.Get(10).Value)
	assert.Nil(t, m.Get(21).Value)
	assert.Nil(t, m.Get(-1).Value)

	assert.Equal(t, "{[0, 3]: [item], [4, 7]: [item take], [8, 9]: [item take arg], 10: [item take], [11, 20]: [item]}", fmt.Sprintf("%v", m))
}
