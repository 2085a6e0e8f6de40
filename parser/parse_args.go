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
	"strings"

	"github.com/bufbuild/oml/ast"
	"github.com/bufbuild/oml/token"
)

var argNames = []string{"option", "in", "keys", "get"}

// parseArgs parses the arguments of take or read, after the opening `(`, up
// to and including the closing `)`.
func (p *parser) parseArgs() ([]ast.Arg, error) {
	var args []ast.Arg
	for {
		// A JSON path has to be scanned before anything looks at the next
		// token, since the lexer would take `//` for a comment.
		if tok, ok := p.scanJSONPath(); ok {
			args = append(args, &ast.JSONPathArg{Path: tok.Text, Loc: ast.Span{Start: tok.Start, End: tok.End}})
		} else {
			if len(args) == 0 && p.at(")") {
				break
			}
			arg, err := p.parseArg()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}

		if !p.at(",") {
			break
		}
		p.pop()
	}
	if err := p.close(argList.In(), comma); err != nil {
		return nil, err
	}
	return args, nil
}

// parseArg parses one argument other than a JSON path.
func (p *parser) parseArg() (ast.Arg, error) {
	tok := p.peek()
	if tok.Kind != token.Ident {
		return nil, p.fail(argList.In(), argument, rParen)
	}

	if p.peekN(1).IsPunct(":") {
		switch tok.Text {
		case "option":
			return p.parseOptionArg()
		case "in", "keys":
			return p.parseKeysArg()
		case "get":
			return p.parseGetArg()
		default:
			return nil, p.failWith(argList.In(), setOf(argName), didYouMean(tok.Text, argNames))
		}
	}

	p.pop()
	if !p.at("/") && !p.at(".") {
		return &ast.IdentArg{Name: tok.Text, Loc: ast.Span{Start: tok.Start, End: tok.End}}, nil
	}
	fieldPath, err := p.parsePathFrom(tok, argument.In())
	if err != nil {
		return nil, err
	}
	return &ast.PathArg{Path: fieldPath, Loc: fieldPath.Loc}, nil
}

// parsePathFrom parses the rest of a path whose first segment, first, has
// already been consumed.
func (p *parser) parsePathFrom(first token.Token, where place) (*ast.Path, error) {
	out := &ast.Path{Segments: []string{first.Text}}
	var text strings.Builder
	text.WriteString(first.Text)
	for p.at("/") || p.at(".") {
		sep := p.pop()
		seg, err := p.expectIdent(where, path)
		if err != nil {
			return nil, err
		}
		text.WriteString(sep.Text)
		text.WriteString(seg.Text)
		out.Segments = append(out.Segments, seg.Text)
	}
	out.Text = text.String()
	out.Loc = p.loc(first.Start)
	return out, nil
}

// parseOptionArg parses `option:[a, b]`.
func (p *parser) parseOptionArg() (*ast.OptionArg, error) {
	kw := p.pop()
	p.pop() // :
	if !p.at("[") {
		return nil, p.fail(argument.In(), lBracket)
	}
	p.open(optionList)
	arg := new(ast.OptionArg)
	for {
		name, err := p.expectIdent(optionList.In())
		if err != nil {
			return nil, err
		}
		arg.Names = append(arg.Names, name.Text)
		if !p.at(",") {
			break
		}
		p.pop()
	}
	if err := p.close(optionList.In(), comma); err != nil {
		return nil, err
	}
	arg.Loc = p.loc(kw.Start)
	return arg, nil
}

// parseKeysArg parses `keys:[...]` or `in:[...]`, whose keys may be
// wildcards.
func (p *parser) parseKeysArg() (*ast.KeysArg, error) {
	kw := p.pop()
	p.pop() // :
	if !p.at("[") {
		return nil, p.fail(argument.In(), lBracket)
	}
	p.open(keyList)
	arg := &ast.KeysArg{Keyword: kw.Text}
	for {
		tok := p.peek()
		switch tok.Kind {
		case token.Ident:
			arg.Keys = append(arg.Keys, ast.TargetName{Kind: ast.TargetIdent, Text: tok.Text})
		case token.WildKey:
			arg.Keys = append(arg.Keys, ast.TargetName{Kind: ast.TargetWildcard, Text: tok.Text})
		default:
			return nil, p.fail(keyList.In(), ident, wildKey)
		}
		p.pop()
		if !p.at(",") {
			break
		}
		p.pop()
	}
	if err := p.close(keyList.In(), comma); err != nil {
		return nil, err
	}
	arg.Loc = p.loc(kw.Start)
	return arg, nil
}

// parseGetArg parses `get: value`.
func (p *parser) parseGetArg() (*ast.GetArg, error) {
	kw := p.pop()
	p.pop() // :
	tok := p.peek()
	var kind ast.LiteralKind
	switch {
	case tok.Kind == token.String:
		kind = ast.LitString
	case tok.Kind == token.Number:
		kind = ast.LitNumber
	case tok.IsKeyword("true") || tok.IsKeyword("false"):
		kind = ast.LitBool
	case tok.Kind == token.Ident:
		kind = ast.LitIdent
	default:
		return nil, p.fail(argument.In(), ident, number, stringLit, boolean)
	}
	p.pop()
	return &ast.GetArg{Value: literalOf(tok, kind), Loc: p.loc(kw.Start)}, nil
}
