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

package parser

import (
	"fmt"
	"math/bits"
	"strings"
)

// noun is a production of the grammar, or a token, that a diagnostic can
// refer to.
type noun int

const (
	unknown noun = iota
	eof

	header
	nameField
	ruleField
	enableField
	body
	staticBlock
	item
	target
	dataType
	expression
	argList
	argument
	optionList
	keyList
	defaultBody
	typedValue
	literal
	funCall
	fmtExpr
	pipeExpr
	pipeStage
	objectExpr
	objectField
	collectExpr
	matchExpr
	matchSources
	matchArm
	condition
	matchPredicate
	selectExpr
	columnList
	whereClause
	comparison
	comparisonOp
	privacySection
	privacyItem
	privacyType
	varGet
	path
	rulePath
	ident
	wildKey
	stringLit
	number
	boolean
	separator
	semicolon
	comma
	colon
	equals
	arrow
	bar
	minus
	doubleColon
	lParen
	rParen
	lBracket
	rBracket
	lBrace
	rBrace
	star
	underscore
	kwName
	kwFrom
	kwWhere
	timeUnit
	funName
	pipeName
	argName
	headerField
	selector

	totalNouns int = iota
)

var nouns = [...]string{
	unknown: "<unknown>",
	eof:     "end-of-file",

	header:         "header",
	nameField:      "`name` field",
	ruleField:      "`rule` field",
	enableField:    "`enable` field",
	body:           "rule body",
	staticBlock:    "static block",
	item:           "item",
	target:         "target",
	dataType:       "data type",
	expression:     "expression",
	argList:        "argument list",
	argument:       "argument",
	optionList:     "option list",
	keyList:        "key list",
	defaultBody:    "default body",
	typedValue:     "typed value",
	literal:        "literal",
	funCall:        "function call",
	fmtExpr:        "`fmt` expression",
	pipeExpr:       "pipe expression",
	pipeStage:      "pipe stage",
	objectExpr:     "object",
	objectField:    "object field",
	collectExpr:    "`collect` expression",
	matchExpr:      "match expression",
	matchSources:   "match source list",
	matchArm:       "match arm",
	condition:      "match condition",
	matchPredicate: "match predicate",
	selectExpr:     "select expression",
	columnList:     "column list",
	whereClause:    "where clause",
	comparison:     "comparison",
	comparisonOp:   "comparison operator",
	privacySection: "privacy section",
	privacyItem:    "privacy item",
	privacyType:    "privacy type",
	varGet:         "value reference",
	path:           "path",
	rulePath:       "rule pattern",
	ident:          "identifier",
	wildKey:        "wildcard key",
	stringLit:      "string literal",
	number:         "number",
	boolean:        "boolean",
	separator:      "`---`",
	semicolon:      "`;`",
	comma:          "`,`",
	colon:          "`:`",
	equals:         "`=`",
	arrow:          "`=>`",
	bar:            "`|`",
	minus:          "`-`",
	doubleColon:    "`::`",
	lParen:         "`(`",
	rParen:         "`)`",
	lBracket:       "`[`",
	rBracket:       "`]`",
	lBrace:         "`{`",
	rBrace:         "`}`",
	star:           "`*`",
	underscore:     "`_`",
	kwName:         "`name`",
	kwFrom:         "`from`",
	kwWhere:        "`where`",
	timeUnit:       "time unit",
	funName:        "function name",
	pipeName:       "pipe function",
	argName:        "argument name",
	headerField:    "header field",
	selector:       "selector",
}

// String implements [fmt.Stringer].
func (n noun) String() string {
	if n < 0 || int(n) >= len(nouns) {
		return fmt.Sprintf("noun(%d)", int(n))
	}
	return nouns[n]
}

// In is a shorthand for the "in" preposition.
func (n noun) In() place {
	return place{n, "in"}
}

// After is a shorthand for the "after" preposition.
func (n noun) After() place {
	return place{n, "after"}
}

// place is a location within the grammar, phrased as a prepositional phrase
// like "in argument list".
type place struct {
	subject     noun
	preposition string
}

// String implements [fmt.Stringer].
func (p place) String() string {
	if p.preposition == "" {
		return ""
	}
	return p.preposition + " " + p.subject.String()
}

// set is a set of nouns, ordered by their declaration order.
//
// A zero set is empty and ready to use.
type set struct {
	bits [(totalNouns + 63) / 64]uint64
}

// setOf returns a set containing the given nouns.
func setOf(nouns ...noun) set {
	var s set
	for _, n := range nouns {
		s.bits[int(n)/64] |= uint64(1) << (int(n) % 64)
	}
	return s
}

// Len returns the number of nouns in the set.
func (s set) Len() int {
	var n int
	for _, v := range s.bits {
		n += bits.OnesCount64(v)
	}
	return n
}

// Join returns the names of the set's elements separated by commas, with
// conj before the last one: "a", "a or b", "a, b, or c".
func (s set) Join(conj string) string {
	var elems []noun
	for i, word := range s.bits {
		for word != 0 {
			bit := bits.TrailingZeros64(word)
			elems = append(elems, noun(i*64+bit))
			word &^= 1 << bit
		}
	}

	var out strings.Builder
	switch len(elems) {
	case 0:
	case 1:
		out.WriteString(elems[0].String())
	case 2:
		fmt.Fprintf(&out, "%v %s %v", elems[0], conj, elems[1])
	default:
		for _, v := range elems[:len(elems)-1] {
			fmt.Fprintf(&out, "%v, ", v)
		}
		fmt.Fprintf(&out, "%s %v", conj, elems[len(elems)-1])
	}
	return out.String()
}
