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

// DataTypeNames returns every data type spelling, in declaration order.
func DataTypeNames() []string { return spellings[DataTypeKind](totalDataTypes) }

// PipeFunNames returns every pipe stage spelling, in declaration order.
func PipeFunNames() []string { return spellings[PipeFunKind](totalPipeFuns) }

// MatchFunNames returns every match predicate spelling, in declaration order.
func MatchFunNames() []string { return spellings[MatchFunKind](totalMatchFuns) }

// FunCallNames returns every built-in function spelling.
func FunCallNames() []string { return spellings[FunCallKind](totalFunCalls) }

// PrivacyNames returns every privacy tag spelling, in declaration order.
func PrivacyNames() []string { return spellings[PrivacyKind](totalPrivacyKinds) }

// spellings lists the String() of every value of an enum except the zero
// "unknown" value.
func spellings[K interface {
	~int
	String() string
}](total int) []string {
	out := make([]string, 0, total-1)
	for k := K(1); int(k) < total; k++ {
		out = append(out, k.String())
	}
	return out
}
