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

// Package parser implements the OML front-end: a lexer and a recursive
// descent parser with error recovery, producing an [ast.Document].
//
// Keywords are not reserved. At each point where the grammar offers a
// choice, the keyword forms are tried first, and a plain identifier is the
// fallback, so a field named `take` or `match` can still be used as a value.
//
// Errors never stop the parser. A malformed item is reported once, and the
// parser resumes after the item's `;`, before the `}` of an enclosing static
// block, or at the next separator.
package parser

import (
	"github.com/bufbuild/oml/ast"
	"github.com/bufbuild/oml/report"
)

// Parse parses an OML document, reporting diagnostics to errs.
//
// A document is always returned, containing everything that parsed; ok is
// false if any error was reported, in which case the document should not be
// used for anything other than tooling.
func Parse(path, text string, errs *report.Report) (doc *ast.Document, ok bool) {
	errors := errs.Errors()
	file := report.File{Path: path, Text: text}
	p := newParser(report.NewIndexedFile(file), errs)
	doc = p.parseDocument()
	Validate(file, doc, errs)
	return doc, errs.Errors() == errors
}
