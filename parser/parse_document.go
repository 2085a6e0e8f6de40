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

	"github.com/bufbuild/oml/ast"
	"github.com/bufbuild/oml/report"
	"github.com/bufbuild/oml/token"
)

// parseDocument parses a whole document. It never fails: whatever could not be
// parsed has been reported, and is missing from the result.
func (p *parser) parseDocument() *ast.Document {
	doc := &ast.Document{Loc: ast.Span{Start: 0, End: len(p.text)}}
	doc.Header = p.parseHeader()

	if !p.peek().IsSeparator() {
		_ = p.fail(header.After(), separator)
		return doc
	}
	p.pop()

	p.parseBody(doc)

	if sep := p.peek(); sep.IsSeparator() {
		p.pop()
		doc.HasPrivacy = true
		p.parsePrivacy(doc, sep)
	}
	return doc
}

// parseBody parses static blocks and items up to the next separator.
func (p *parser) parseBody(doc *ast.Document) {
	for !p.atEnd() {
		if p.atKeyword("static", "{") {
			if block := p.parseStatic(); block != nil {
				doc.Statics = append(doc.Statics, block)
			}
			continue
		}
		if p.at("}") {
			// Nothing to close at the top level.
			_ = p.fail(body.In(), item)
			p.pop()
			continue
		}
		if it := p.parseItemOrRecover(false); it != nil {
			doc.Items = append(doc.Items, it)
		}
	}
}

// parsePrivacy parses the privacy section after the second separator, sep.
func (p *parser) parsePrivacy(doc *ast.Document, sep token.Token) {
	seen := make(map[string]*ast.PrivacyItem)
	attempted := false
	for p.peek().Kind != token.EOF {
		if tok := p.peek(); tok.IsSeparator() {
			p.errs.Error(errExtraSeparator{span: p.tokSpan(tok), privacy: p.tokSpan(sep)})
			p.pop()
			continue
		}

		attempted = true
		it, err := p.parsePrivacyItem()
		if err != nil {
			p.recoverPrivacy()
			continue
		}
		if prev := seen[it.Name]; prev != nil {
			p.errs.Warn(
				fmt.Errorf("privacy tag for `%s` is given more than once", it.Name),
				report.SnippetAt(p.span(it.Loc.Start, it.Loc.End), "this tag wins"),
				report.SnippetAt(p.span(prev.Loc.Start, prev.Loc.End), "first tagged here"),
			)
		}
		seen[it.Name] = it
		doc.Privacy = append(doc.Privacy, it)
	}

	if !attempted {
		_ = p.failWith(privacySection.In(), setOf(privacyItem),
			report.SnippetAt(p.tokSpan(sep), "privacy section starts here"),
			report.Help("remove the separator if the document has no privacy section"))
	}
}

// parsePrivacyItem parses `name : privacy_type`.
func (p *parser) parsePrivacyItem() (*ast.PrivacyItem, error) {
	name, err := p.expectIdent(privacySection.In(), privacyItem)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(":", colon, privacyItem.In()); err != nil {
		return nil, err
	}
	tok := p.peek()
	kind, ok := ast.PrivacyByName(tok.Text)
	if tok.Kind != token.Ident || !ok {
		var help report.DiagnosticOption
		if tok.Kind == token.Ident {
			help = didYouMean(tok.Text, ast.PrivacyNames())
		}
		return nil, p.failWith(privacyItem.In(), setOf(privacyType), help)
	}
	p.pop()
	return &ast.PrivacyItem{Name: name.Text, Kind: kind, Loc: p.loc(name.Start)}, nil
}

// recoverPrivacy skips to the start of the next privacy item.
func (p *parser) recoverPrivacy() {
	for !p.atEnd() && !(p.peek().Kind == token.Ident && p.peekN(1).IsPunct(":")) {
		p.pop()
	}
}
