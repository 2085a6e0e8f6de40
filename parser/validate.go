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
	"github.com/bufbuild/oml/ast"
	"github.com/bufbuild/oml/report"
)

// Validate checks the constraints that the grammar cannot express:
//
//   - every arm of a tuple match has one condition per source;
//   - targets inside static blocks are plain identifiers.
//
// Parse runs Validate itself; it is exported for documents that were not
// produced by Parse.
func Validate(file report.File, doc *ast.Document, errs *report.Report) {
	idx := report.NewIndexedFile(file)
	span := func(s ast.Span) report.Span { return idx.NewSpan(s.Start, s.End) }

	for _, block := range doc.Statics {
		for _, it := range block.Items {
			for _, t := range it.Targets {
				if t.Name.Kind == ast.TargetIdent {
					continue
				}
				errs.Error(errStaticTarget{
					span:  span(t.Loc),
					block: span(ast.Span{Start: block.Loc.Start, End: block.Loc.Start + len("static")}),
					name:  t.Name.Text,
					kind:  t.Name.Kind.String(),
				})
			}
		}
	}

	ast.Walk(doc, func(n ast.Node) bool {
		m, ok := n.(*ast.MatchExpr)
		if !ok || !m.Multi || len(m.Sources) == 0 {
			return true
		}
		sources := m.Sources[0].Span().Join(m.Sources[len(m.Sources)-1].Span())
		for _, arm := range m.Arms {
			n := len(arm.Conds)
			if n == len(m.Sources) {
				continue
			}
			at := arm.Loc
			if n > 0 {
				at = arm.Conds[0].Loc.Join(arm.Conds[n-1].Loc)
			}
			errs.Error(errArmWidth{
				arm:     span(at),
				sources: span(sources),
				got:     len(arm.Conds),
				want:    len(m.Sources),
			})
		}
		return true
	})
}
