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
	"github.com/bufbuild/oml/token"
)

// parseStatic parses `static { items }`. It returns nil for an empty block.
func (p *parser) parseStatic() *ast.StaticBlock {
	kw := p.pop()
	base, errs := len(p.delims), len(*p.errs)
	p.open(staticBlock)
	defer func() { p.delims = p.delims[:base] }()

	block := new(ast.StaticBlock)
	for !p.at("}") {
		if p.atEnd() {
			_ = p.fail(staticBlock.In(), item, rBrace)
			block.Loc = p.loc(kw.Start)
			return emptyToNil(block)
		}
		if it := p.parseItemOrRecover(true); it != nil {
			block.Items = append(block.Items, it)
		}
	}
	p.pop()
	block.Loc = p.loc(kw.Start)

	// Items that failed have been reported already.
	if len(block.Items) == 0 && len(*p.errs) == errs {
		p.errs.Error(errEmptyStatic{span: p.span(kw.Start, block.Loc.End)})
	}
	return emptyToNil(block)
}

func emptyToNil(block *ast.StaticBlock) *ast.StaticBlock {
	if len(block.Items) == 0 {
		return nil
	}
	return block
}

// parseItemOrRecover parses an item. If it is malformed, the error is
// reported, the rest of the item is skipped, and nil is returned.
func (p *parser) parseItemOrRecover(inStatic bool) *ast.Item {
	base := len(p.delims)
	item, err := p.parseItem()
	if err != nil {
		p.recover(base, inStatic)
		return nil
	}
	return item
}

// parseItem parses `targets = value ;`.
func (p *parser) parseItem() (*ast.Item, error) {
	start := p.peek().Start
	out := new(ast.Item)
	for {
		t, err := p.parseTarget()
		if err != nil {
			return nil, err
		}
		out.Targets = append(out.Targets, t)
		if !p.at(",") {
			break
		}
		p.pop()
	}

	if _, err := p.expect("=", equals, item.In()); err != nil {
		return nil, err
	}
	value, err := p.parseEval(item.In())
	if err != nil {
		return nil, err
	}
	out.Value = value
	if _, err := p.expect(";", semicolon, item.In()); err != nil {
		return nil, err
	}
	out.Loc = p.loc(start)
	return out, nil
}

// parseTarget parses a target name with an optional `: type`.
func (p *parser) parseTarget() (*ast.Target, error) {
	tok := p.peek()
	var name ast.TargetName
	switch {
	case tok.IsKeyword("_"):
		name = ast.TargetName{Kind: ast.TargetDiscard, Text: tok.Text}
	case tok.Kind == token.Ident:
		name = ast.TargetName{Kind: ast.TargetIdent, Text: tok.Text}
	case tok.Kind == token.WildKey:
		name = ast.TargetName{Kind: ast.TargetWildcard, Text: tok.Text}
	default:
		return nil, p.fail(target.In(), ident, wildKey, underscore)
	}
	p.pop()

	t := &ast.Target{Name: name}
	if p.at(":") {
		p.pop()
		ty, err := p.parseDataType(target.In())
		if err != nil {
			return nil, err
		}
		t.Type = ty
	}
	t.Loc = p.loc(tok.Start)
	return t, nil
}
