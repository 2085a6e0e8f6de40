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

package parser_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/oml/ast"
	"github.com/bufbuild/oml/internal/corpora"
	"github.com/bufbuild/oml/parser"
	"github.com/bufbuild/oml/report"
)

// ignoreSpans compares trees by shape only.
var ignoreSpans = cmpopts.IgnoreTypes(ast.Span{})

// parse parses text, which must not produce any diagnostics.
func parse(t *testing.T, text string) *ast.Document {
	t.Helper()
	var r report.Report
	doc, ok := parser.Parse("test.oml", text, &r)
	require.True(t, ok, "%s", r.Render(report.Simple))
	require.Empty(t, r, "%s", r.Render(report.Simple))
	return doc
}

// parseItem parses a document whose body is the single item text.
func parseItem(t *testing.T, text string) *ast.Item {
	t.Helper()
	doc := parse(t, "name: test\n---\n"+text+"\n")
	require.Len(t, doc.Items, 1)
	return doc.Items[0]
}

func ident(name string) ast.TargetName {
	return ast.TargetName{Kind: ast.TargetIdent, Text: name}
}

func chars(value string) *ast.ValueExpr {
	return &ast.ValueExpr{
		Type:    &ast.DataType{Kind: ast.TypeChars},
		Literal: &ast.Literal{Kind: ast.LitIdent, Value: value},
	}
}

func TestCorpus(t *testing.T) {
	t.Parallel()

	corpora.Corpus{
		Root:      "testdata",
		Refresh:   "OML_REFRESH",
		Extension: "oml",
		Outputs: []corpora.Output{
			{Extension: "yaml"},
			{Extension: "stderr"},
		},
		Test: func(t *testing.T, c corpora.Case) []string {
			var r report.Report
			doc, ok := parser.Parse(c.Name, c.Text, &r)

			// Only clean documents get an AST dump; broken ones are
			// described by their diagnostics.
			var dump []byte
			if ok {
				var err error
				dump, err = ast.ToYAML(doc)
				require.NoError(t, err)
			}
			return []string{string(dump), r.Render(report.Simple)}
		},
	}.Run(t)
}

func TestEmptyBody(t *testing.T) {
	t.Parallel()

	doc := parse(t, "name: foo\n---\n")
	assert.Equal(t, "foo", doc.Header.Name.Text)
	assert.True(t, doc.Header.IsEnabled())
	assert.Empty(t, doc.Items)
	assert.Empty(t, doc.Statics)
	assert.False(t, doc.HasPrivacy)
	assert.Nil(t, doc.Privacy)
	assert.Nil(t, doc.PrivacyTags())
}

func TestTypedTargets(t *testing.T) {
	t.Parallel()

	text := "name: foo\n---\na,b:ip = take(option:[x]);\n"
	doc := parse(t, text)
	require.Len(t, doc.Items, 1)

	want := &ast.Item{
		Targets: []*ast.Target{
			{Name: ident("a")},
			{Name: ident("b"), Type: &ast.DataType{Kind: ast.TypeIP}},
		},
		Value: &ast.TakeExpr{Args: []ast.Arg{&ast.OptionArg{Names: []string{"x"}}}},
	}
	assert.Empty(t, cmp.Diff(want, doc.Items[0], ignoreSpans))

	item := doc.Items[0]
	assert.Equal(t, ast.Span{Start: 14, End: 40}, item.Loc)
	assert.Equal(t, "a,b:ip = take(option:[x]);", text[item.Loc.Start:item.Loc.End])
	assert.Equal(t, "b:ip", text[item.Targets[1].Loc.Start:item.Targets[1].Loc.End])
	assert.Equal(t, "take(option:[x])", text[item.Value.Span().Start:item.Value.Span().End])
}

func TestMatch(t *testing.T) {
	t.Parallel()

	item := parseItem(t, `x = match @x { ip("10.0.0.1") => take(); _ => read(); };`)
	want := &ast.MatchExpr{
		Sources: []ast.VarGet{&ast.AtRef{Name: "x"}},
		Arms: []*ast.CaseArm{{
			Conds: []*ast.Condition{{
				Atoms: []ast.CondAtom{&ast.ValueExpr{
					Type:    &ast.DataType{Kind: ast.TypeIP},
					Literal: &ast.Literal{Kind: ast.LitString, Value: "10.0.0.1"},
				}},
			}},
			Result: &ast.TakeExpr{},
		}},
		Default: &ast.DefaultArm{Result: &ast.ReadExpr{}},
	}
	assert.Empty(t, cmp.Diff(want, item.Value, ignoreSpans))
}

func TestMatchConditions(t *testing.T) {
	t.Parallel()

	item := parseItem(t, `x = match (take(a), read(b)) {
  (in(digit(1), digit(9)) | !chars(x), in_range(1, 5)) => collect take(c),
  (regex_match("^a"), is_empty()) => ok;
};`)
	want := &ast.MatchExpr{
		Sources: []ast.VarGet{
			&ast.TakeExpr{Args: []ast.Arg{&ast.IdentArg{Name: "a"}}},
			&ast.ReadExpr{Args: []ast.Arg{&ast.IdentArg{Name: "b"}}},
		},
		Multi: true,
		Arms: []*ast.CaseArm{
			{
				Conds: []*ast.Condition{
					{Atoms: []ast.CondAtom{
						&ast.InCond{
							Lo: &ast.ValueExpr{Type: &ast.DataType{Kind: ast.TypeDigit}, Literal: &ast.Literal{Kind: ast.LitNumber, Value: "1"}},
							Hi: &ast.ValueExpr{Type: &ast.DataType{Kind: ast.TypeDigit}, Literal: &ast.Literal{Kind: ast.LitNumber, Value: "9"}},
						},
						&ast.NotCond{Value: chars("x")},
					}},
					{Atoms: []ast.CondAtom{&ast.MatchFun{
						Kind: ast.MatchInRange,
						Args: []*ast.Literal{{Kind: ast.LitNumber, Value: "1"}, {Kind: ast.LitNumber, Value: "5"}},
					}}},
				},
				Result: &ast.CollectExpr{Source: &ast.TakeExpr{Args: []ast.Arg{&ast.IdentArg{Name: "c"}}}},
			},
			{
				Conds: []*ast.Condition{
					{Atoms: []ast.CondAtom{&ast.MatchFun{
						Kind: ast.MatchRegex,
						Args: []*ast.Literal{{Kind: ast.LitString, Value: "^a"}},
					}}},
					{Atoms: []ast.CondAtom{&ast.MatchFun{Kind: ast.MatchIsEmpty}}},
				},
				Result: &ast.Ident{Name: "ok"},
			},
		},
	}
	assert.Empty(t, cmp.Diff(want, item.Value, ignoreSpans))
}

func TestMatchWithoutTerminators(t *testing.T) {
	t.Parallel()

	item := parseItem(t, `x = match @x { chars(a) => y chars(b) => z _ => w };`)
	want := &ast.MatchExpr{
		Sources: []ast.VarGet{&ast.AtRef{Name: "x"}},
		Arms: []*ast.CaseArm{
			{Conds: []*ast.Condition{{Atoms: []ast.CondAtom{chars("a")}}}, Result: &ast.Ident{Name: "y"}},
			{Conds: []*ast.Condition{{Atoms: []ast.CondAtom{chars("b")}}}, Result: &ast.Ident{Name: "z"}},
		},
		Default: &ast.DefaultArm{Result: &ast.Ident{Name: "w"}},
	}
	assert.Empty(t, cmp.Diff(want, item.Value, ignoreSpans))

	item = parseItem(t, `x = match (take(a), take(b)) { (chars(1), chars(2)) => x (chars(3), chars(4)) => y };`)
	m, ok := item.Value.(*ast.MatchExpr)
	require.True(t, ok)
	require.Len(t, m.Arms, 2)
	assert.Equal(t, &ast.Ident{Name: "x", Loc: m.Arms[0].Result.Span()}, m.Arms[0].Result)
	assert.Len(t, m.Arms[1].Conds, 2)
	assert.Equal(t, &ast.Ident{Name: "y", Loc: m.Arms[1].Result.Span()}, m.Arms[1].Result)
}

func TestSQL(t *testing.T) {
	t.Parallel()

	item := parseItem(t, `x = select * from sessions where user = take() and not (age < 18);`)
	want := &ast.SQLExpr{
		Star:  true,
		Table: "sessions",
		Where: &ast.SQLBinary{
			Op: ast.SQLAnd,
			Left: &ast.SQLCompare{
				LHS: &ast.SQLOperand{Name: "user"},
				Op:  ast.SQLEq,
				RHS: &ast.TakeExpr{},
			},
			Right: &ast.SQLNot{Cond: &ast.SQLParen{Cond: &ast.SQLCompare{
				LHS: &ast.SQLOperand{Name: "age"},
				Op:  ast.SQLLt,
				RHS: &ast.Literal{Kind: ast.LitNumber, Value: "18"},
			}}},
		},
	}
	assert.Empty(t, cmp.Diff(want, item.Value, ignoreSpans))
}

func TestSQLChain(t *testing.T) {
	t.Parallel()

	// and/or associate to the left in source order.
	item := parseItem(t, `x = select a, b from t where a = "x" or lower(read(y)) != 'z' and c >= Now::time();`)
	sql, ok := item.Value.(*ast.SQLExpr)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, sql.Columns)
	assert.False(t, sql.Star)

	top, ok := sql.Where.(*ast.SQLBinary)
	require.True(t, ok)
	assert.Equal(t, ast.SQLAnd, top.Op)
	left, ok := top.Left.(*ast.SQLBinary)
	require.True(t, ok)
	assert.Equal(t, ast.SQLOr, left.Op)

	mid, ok := left.Right.(*ast.SQLCompare)
	require.True(t, ok)
	assert.Empty(t, cmp.Diff(&ast.SQLOperand{
		Name: "lower",
		Arg:  &ast.ReadExpr{Args: []ast.Arg{&ast.IdentArg{Name: "y"}}},
	}, mid.LHS, ignoreSpans))
	assert.Equal(t, ast.SQLNe, mid.Op)

	last, ok := top.Right.(*ast.SQLCompare)
	require.True(t, ok)
	assert.Equal(t, ast.SQLGe, last.Op)
	assert.Empty(t, cmp.Diff(&ast.FunCall{Kind: ast.FunNowTime}, last.RHS, ignoreSpans))
}

func TestArgs(t *testing.T) {
	t.Parallel()

	item := parseItem(t, `x = take(/a//b[0], y, c/d.e, keys:[k*, *], get: 1, in:[z]);`)
	want := &ast.TakeExpr{Args: []ast.Arg{
		&ast.JSONPathArg{Path: "/a//b[0]"},
		&ast.IdentArg{Name: "y"},
		&ast.PathArg{Path: &ast.Path{Text: "c/d.e", Segments: []string{"c", "d", "e"}}},
		&ast.KeysArg{Keyword: "keys", Keys: []ast.TargetName{
			{Kind: ast.TargetWildcard, Text: "k*"},
			{Kind: ast.TargetWildcard, Text: "*"},
		}},
		&ast.GetArg{Value: &ast.Literal{Kind: ast.LitNumber, Value: "1"}},
		&ast.KeysArg{Keyword: "in", Keys: []ast.TargetName{ident("z")}},
	}}
	assert.Empty(t, cmp.Diff(want, item.Value, ignoreSpans))
}

func TestJSONPathAfterComment(t *testing.T) {
	t.Parallel()

	// Outside an argument list, // is still a comment.
	doc := parse(t, "name: x // the name\n---\na = take( # first\n  /a//b);\n")
	require.Len(t, doc.Items, 1)
	take := doc.Items[0].Value.(*ast.TakeExpr)
	assert.Empty(t, cmp.Diff([]ast.Arg{&ast.JSONPathArg{Path: "/a//b"}}, take.Args, ignoreSpans))
}

func TestDefaultBody(t *testing.T) {
	t.Parallel()

	item := parseItem(t, `x = read(a) { _ : take(b) { _ : Now::date(); } };`)
	want := &ast.ReadExpr{
		Args: []ast.Arg{&ast.IdentArg{Name: "a"}},
		Default: &ast.TakeExpr{
			Args:    []ast.Arg{&ast.IdentArg{Name: "b"}},
			Default: &ast.FunCall{Kind: ast.FunNowDate},
		},
	}
	assert.Empty(t, cmp.Diff(want, item.Value, ignoreSpans))
}

func TestOtherForms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want ast.Eval
	}{
		{
			text: `x = fmt("{}-{}", @a, read(b));`,
			want: &ast.FmtExpr{
				Template: &ast.Literal{Kind: ast.LitString, Value: "{}-{}"},
				Args:     []ast.VarGet{&ast.AtRef{Name: "a"}, &ast.ReadExpr{Args: []ast.Arg{&ast.IdentArg{Name: "b"}}}},
			},
		},
		{
			text: `x = object { a, b : chars = take(p); c = Now::hour() };`,
			want: &ast.ObjectExpr{Fields: []*ast.MapItem{
				{
					Names: []string{"a", "b"},
					Type:  &ast.DataType{Kind: ast.TypeChars},
					Value: &ast.TakeExpr{Args: []ast.Arg{&ast.IdentArg{Name: "p"}}},
				},
				{Names: []string{"c"}, Value: &ast.FunCall{Kind: ast.FunNowHour}},
			}},
		},
		{
			text: `x = collect read(keys:[a*]);`,
			want: &ast.CollectExpr{Source: &ast.ReadExpr{Args: []ast.Arg{
				&ast.KeysArg{Keyword: "keys", Keys: []ast.TargetName{{Kind: ast.TargetWildcard, Text: "a*"}}},
			}}},
		},
		{
			text: `x = pipe @a | nth(0) | get(b/0.c);`,
			want: &ast.PipeExpr{
				Keyword: true,
				Source:  &ast.AtRef{Name: "a"},
				Stages: []*ast.PipeFun{
					{Kind: ast.PipeNth, Number: "0"},
					{Kind: ast.PipeGet, Path: []string{"b", "0", "c"}},
				},
			},
		},
		{
			text: `x = take(a) | Time::to_ts_zone(-8, ms) | map_to("y");`,
			want: &ast.PipeExpr{
				Source: &ast.TakeExpr{Args: []ast.Arg{&ast.IdentArg{Name: "a"}}},
				Stages: []*ast.PipeFun{
					{Kind: ast.PipeToTSZone, Number: "-8", Word: "ms"},
					{Kind: ast.PipeMapTo, Literal: &ast.Literal{Kind: ast.LitString, Value: "y"}},
				},
			},
		},
		{
			text: `x = array/chars(a);`,
			want: &ast.ValueExpr{
				Type:    &ast.DataType{Kind: ast.TypeArray, Param: "chars"},
				Literal: &ast.Literal{Kind: ast.LitIdent, Value: "a"},
			},
		},
		{
			text: `x = bool(true);`,
			want: &ast.ValueExpr{
				Type:    &ast.DataType{Kind: ast.TypeBool},
				Literal: &ast.Literal{Kind: ast.LitBool, Value: "true"},
			},
		},
		{
			text: `x = ip(10.0.0.1);`,
			want: &ast.ValueExpr{
				Type:    &ast.DataType{Kind: ast.TypeIP},
				Literal: &ast.Literal{Kind: ast.LitIP, Value: "10.0.0.1"},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.text, func(t *testing.T) {
			t.Parallel()
			item := parseItem(t, test.text)
			assert.Empty(t, cmp.Diff(test.want, item.Value, ignoreSpans))
		})
	}
}

func TestKeywordsAsIdentifiers(t *testing.T) {
	t.Parallel()

	doc := parse(t, `name: x
---
take = take;
match, select : chars = pipe;
static, object = collect;
`)
	require.Len(t, doc.Items, 3)
	assert.Empty(t, cmp.Diff(&ast.Ident{Name: "take"}, doc.Items[0].Value, ignoreSpans))
	assert.Equal(t, ident("take"), doc.Items[0].Targets[0].Name)
	assert.Equal(t, ident("select"), doc.Items[1].Targets[1].Name)
	assert.Empty(t, cmp.Diff(&ast.Ident{Name: "pipe"}, doc.Items[1].Value, ignoreSpans))
	assert.Equal(t, ident("static"), doc.Items[2].Targets[0].Name)
}

func TestHeader(t *testing.T) {
	t.Parallel()

	doc := parse(t, "name: nginx/access\nrule: /nginx/*/access, /srv/**\nenable: false\n---\n")
	h := doc.Header
	assert.Equal(t, "nginx/access", h.Name.Text)
	assert.Equal(t, []string{"nginx", "access"}, h.Name.Segments)
	require.Len(t, h.Rules, 2)
	assert.Equal(t, "/nginx/*/access", h.Rules[0].Pattern)
	assert.Equal(t, "/srv/**", h.Rules[1].Pattern)
	assert.False(t, h.IsEnabled())
	assert.True(t, h.MatchRule("/nginx/edge/access"))
	assert.True(t, h.MatchRule("/srv/a/b"))
	assert.False(t, h.MatchRule("/nginx/a/b/access"))
}

func TestStatic(t *testing.T) {
	t.Parallel()

	doc := parse(t, "name: x\n---\nstatic {\n  a = chars(x);\n  b : digit = digit(1);\n}\nc = take();\n")
	require.Len(t, doc.Statics, 1)
	assert.Len(t, doc.Statics[0].Items, 2)
	require.Len(t, doc.Items, 1)

	var names []string
	for _, b := range doc.Bindings() {
		names = append(names, b.Target.Name.Text)
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)
}

func TestPrivacy(t *testing.T) {
	t.Parallel()

	doc := parse(t, "name: x\n---\na = take();\n---\na: privacy_ip\nb : privacy_keymsg\n")
	assert.True(t, doc.HasPrivacy)
	assert.Equal(t, map[string]ast.PrivacyKind{
		"a": ast.PrivacyIP,
		"b": ast.PrivacyKeymsg,
	}, doc.PrivacyTags())
}

func TestPure(t *testing.T) {
	t.Parallel()

	text := `name: x
---
a = match (take(a), @b) { (chars(x), !digit(1)) => y; _ => z };
b = select * from t where not x = 1 or (y = read(z) { _ : none });
`
	first := parse(t, text)
	second := parse(t, text)
	assert.Empty(t, cmp.Diff(first, second))
}

func TestDataTypeSpellings(t *testing.T) {
	t.Parallel()

	for _, name := range ast.DataTypeNames() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			kind, _ := ast.DataTypeByName(name)

			item := parseItem(t, fmt.Sprintf("x : %s = take();", name))
			assert.Equal(t, kind, item.Targets[0].Type.Kind)

			item = parseItem(t, fmt.Sprintf("x = %s(1);", name))
			value, ok := item.Value.(*ast.ValueExpr)
			require.True(t, ok)
			assert.Equal(t, kind, value.Type.Kind)
		})
	}

	item := parseItem(t, "x : time/custom = take();")
	assert.Equal(t, &ast.DataType{Kind: ast.TypeTime, Param: "custom", Loc: ast.Span{Start: 19, End: 30}}, item.Targets[0].Type)
}

func TestPipeFunSpellings(t *testing.T) {
	t.Parallel()

	args := map[ast.PipeFunKind]string{
		ast.PipeNth:          "(1)",
		ast.PipeGet:          "(a/b)",
		ast.PipeBase64Decode: "(utf8)",
		ast.PipePath:         "(name)",
		ast.PipeURL:          "(host)",
		ast.PipeToTSZone:     "(8, s)",
		ast.PipeStartsWith:   `("x")`,
		ast.PipeMapTo:        "(1)",
	}
	for _, name := range ast.PipeFunNames() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			kind, _ := ast.PipeFunByName(name)

			item := parseItem(t, fmt.Sprintf("x = take(a) | %s%s;", name, args[kind]))
			pipe, ok := item.Value.(*ast.PipeExpr)
			require.True(t, ok)
			require.Len(t, pipe.Stages, 1)
			assert.Equal(t, kind, pipe.Stages[0].Kind)
		})
	}

	// base64_decode may also go without parentheses.
	item := parseItem(t, "x = take(a) | base64_decode | to_str;")
	assert.Len(t, item.Value.(*ast.PipeExpr).Stages, 2)
}

func TestValidateHandBuilt(t *testing.T) {
	t.Parallel()

	text := "name: x\n---\na = match (take(b), take(c)) { (chars(1), chars(2)) => d; };\n"
	doc := parse(t, text)
	m, ok := doc.Items[0].Value.(*ast.MatchExpr)
	require.True(t, ok)
	m.Arms = append(m.Arms, &ast.CaseArm{Result: &ast.Ident{Name: "e"}, Loc: m.Arms[0].Loc})

	// Neither sources nor conditions: nothing to compare against.
	doc.Items = append(doc.Items, &ast.Item{Value: &ast.MatchExpr{
		Multi: true,
		Arms:  []*ast.CaseArm{{Result: &ast.Ident{Name: "f"}}},
	}})

	var r report.Report
	require.NotPanics(t, func() {
		parser.Validate(report.File{Path: "test.oml", Text: text}, doc, &r)
	})
	assert.Equal(t, []report.Kind{report.ArityMismatch}, r.Kinds())
	assert.Contains(t, r.Render(report.Simple), "match arm has 0 conditions, but the match has 2 sources")
}

func TestErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, text string
		kinds      []report.Kind
		check      func(t *testing.T, doc *ast.Document, r report.Report)
	}{
		{
			name:  "missing separator",
			text:  "name: x\na = take();\n",
			kinds: []report.Kind{report.UnexpectedToken, report.UnexpectedToken},
		},
		{
			name:  "missing name",
			text:  "---\na = take();\n",
			kinds: []report.Kind{report.UnexpectedToken},
			check: func(t *testing.T, doc *ast.Document, _ report.Report) {
				assert.Len(t, doc.Items, 1)
			},
		},
		{
			name:  "name not first",
			text:  "rule: /a\nname: x\n---\n",
			kinds: []report.Kind{report.UnexpectedToken},
			check: func(t *testing.T, doc *ast.Document, _ report.Report) {
				assert.Equal(t, "x", doc.Header.Name.Text)
				assert.Len(t, doc.Header.Rules, 1)
			},
		},
		{
			name:  "duplicate name",
			text:  "name: x\nname: y\n---\n",
			kinds: []report.Kind{report.DuplicateSection},
			check: func(t *testing.T, doc *ast.Document, _ report.Report) {
				assert.Equal(t, "x", doc.Header.Name.Text)
			},
		},
		{
			name:  "duplicate enable",
			text:  "name: x\nenable: true\nenable: false\n---\n",
			kinds: []report.Kind{report.DuplicateSection},
			check: func(t *testing.T, doc *ast.Document, _ report.Report) {
				assert.True(t, doc.Header.IsEnabled())
			},
		},
		{
			name:  "unknown header field",
			text:  "name: x\nrules: /a\n---\na = b;\n",
			kinds: []report.Kind{report.UnexpectedToken},
			check: func(t *testing.T, doc *ast.Document, r report.Report) {
				assert.Equal(t, []string{"did you mean `rule`?"}, r[0].Help())
				assert.Len(t, doc.Items, 1)
			},
		},
		{
			name:  "duplicate rule",
			text:  "name: x\nrule: /a, /a\n---\n",
			kinds: []report.Kind{""},
			check: func(t *testing.T, doc *ast.Document, r report.Report) {
				assert.Equal(t, report.Warning, r[0].Level)
				assert.Len(t, doc.Header.Rules, 1)
			},
		},
		{
			name:  "third separator",
			text:  "name: x\n---\n---\na: privacy_ip\n---\n",
			kinds: []report.Kind{report.DuplicateSection},
			check: func(t *testing.T, doc *ast.Document, _ report.Report) {
				assert.Len(t, doc.Privacy, 1)
			},
		},
		{
			name:  "empty privacy section",
			text:  "name: x\n---\na = take();\n---\n",
			kinds: []report.Kind{report.UnexpectedToken},
			check: func(t *testing.T, doc *ast.Document, _ report.Report) {
				assert.True(t, doc.HasPrivacy)
				assert.Len(t, doc.Items, 1)
			},
		},
		{
			name:  "duplicate privacy name",
			text:  "name: x\n---\n---\na: privacy_ip\na: privacy_mail\n",
			kinds: []report.Kind{""},
			check: func(t *testing.T, doc *ast.Document, _ report.Report) {
				assert.Equal(t, ast.PrivacyMail, doc.PrivacyTags()["a"])
			},
		},
		{
			name:  "unknown privacy type",
			text:  "name: x\n---\n---\na: privacy_mial\nb: privacy_ip\n",
			kinds: []report.Kind{report.UnexpectedToken},
			check: func(t *testing.T, doc *ast.Document, r report.Report) {
				assert.Equal(t, []string{"did you mean `privacy_mail`?"}, r[0].Help())
				assert.Len(t, doc.Privacy, 1)
			},
		},
		{
			name:  "empty static block",
			text:  "name: x\n---\nstatic { }\n",
			kinds: []report.Kind{report.DuplicateSection},
			check: func(t *testing.T, doc *ast.Document, _ report.Report) {
				assert.Empty(t, doc.Statics)
			},
		},
		{
			name:  "static wildcard target",
			text:  "name: x\n---\nstatic {\n  a, user* = take();\n}\n",
			kinds: []report.Kind{report.ArityMismatch},
		},
		{
			name:  "static discard target",
			text:  "name: x\n---\nstatic { _ = take(); }\n",
			kinds: []report.Kind{report.ArityMismatch},
		},
		{
			name:  "unterminated static",
			text:  "name: x\n---\nstatic {\n  a = take();\n",
			kinds: []report.Kind{report.UnterminatedConstruct},
		},
		{
			name:  "error inside static",
			text:  "name: x\n---\nstatic {\n  a = take(x) y;\n  b = c;\n}\nd = e;\n",
			kinds: []report.Kind{report.UnexpectedToken},
			check: func(t *testing.T, doc *ast.Document, _ report.Report) {
				require.Len(t, doc.Statics, 1)
				assert.Len(t, doc.Statics[0].Items, 1)
				assert.Len(t, doc.Items, 1)
			},
		},
		{
			name:  "missing semicolon before brace",
			text:  "name: x\n---\nstatic { a = b }\nc = d;\n",
			kinds: []report.Kind{report.UnexpectedToken},
			check: func(t *testing.T, doc *ast.Document, _ report.Report) {
				assert.Empty(t, doc.Statics)
				assert.Len(t, doc.Items, 1)
			},
		},
		{
			name:  "unterminated take",
			text:  "name: x\n---\na = take(",
			kinds: []report.Kind{report.UnterminatedConstruct},
		},
		{
			name:  "unterminated take before separator",
			text:  "name: x\n---\na = take(\n---\nf: privacy_ip\n",
			kinds: []report.Kind{report.UnterminatedConstruct},
			check: func(t *testing.T, doc *ast.Document, _ report.Report) {
				assert.Empty(t, doc.Items)
				assert.Equal(t, map[string]ast.PrivacyKind{"f": ast.PrivacyIP}, doc.PrivacyTags())
			},
		},
		{
			name:  "unterminated take before semicolon",
			text:  "name: x\n---\na = take(;\nb = read();\n",
			kinds: []report.Kind{report.UnterminatedConstruct},
			check: func(t *testing.T, doc *ast.Document, r report.Report) {
				assert.Equal(t, "error: test.oml:3:9: unclosed `(` in argument list\n", r.Render(report.Simple))
				require.Len(t, doc.Items, 1)
				assert.Equal(t, "b", doc.Items[0].Targets[0].Name.Text)
			},
		},
		{
			name:  "unterminated option list",
			text:  "name: x\n---\na = take(option:[x, y);\nb = c;\n",
			kinds: []report.Kind{report.UnexpectedToken},
			check: func(t *testing.T, doc *ast.Document, _ report.Report) {
				assert.Len(t, doc.Items, 1)
			},
		},
		{
			name:  "unterminated match",
			text:  "name: x\n---\na = match @x {\n  chars(a) => b;\n",
			kinds: []report.Kind{report.UnterminatedConstruct},
		},
		{
			name:  "trailing tokens",
			text:  "name: x\n---\na = take(x) y;\nb = take();\n",
			kinds: []report.Kind{report.UnexpectedToken},
			check: func(t *testing.T, doc *ast.Document, _ report.Report) {
				require.Len(t, doc.Items, 1)
				assert.Equal(t, "b", doc.Items[0].Targets[0].Name.Text)
			},
		},
		{
			name:  "stray brace",
			text:  "name: x\n---\n}\na = take();\n",
			kinds: []report.Kind{report.UnexpectedToken},
			check: func(t *testing.T, doc *ast.Document, _ report.Report) {
				assert.Len(t, doc.Items, 1)
			},
		},
		{
			name:  "reference without pipe",
			text:  "name: x\n---\na = @b;\n",
			kinds: []report.Kind{report.UnexpectedToken},
		},
		{
			name:  "unknown pipe function",
			text:  "name: x\n---\na = take(b) | to_jsn;\n",
			kinds: []report.Kind{report.UnexpectedToken},
			check: func(t *testing.T, _ *ast.Document, r report.Report) {
				assert.Equal(t, []string{"did you mean `to_json`?"}, r[0].Help())
			},
		},
		{
			name:  "unknown data type",
			text:  "name: x\n---\na: chras = take();\n",
			kinds: []report.Kind{report.UnexpectedToken},
			check: func(t *testing.T, _ *ast.Document, r report.Report) {
				assert.Equal(t, []string{"did you mean `chars`?"}, r[0].Help())
			},
		},
		{
			name:  "unknown argument",
			text:  "name: x\n---\na = take(opton: [x]);\n",
			kinds: []report.Kind{report.UnexpectedToken},
			check: func(t *testing.T, _ *ast.Document, r report.Report) {
				assert.Equal(t, []string{"did you mean `option`?"}, r[0].Help())
			},
		},
		{
			name:  "unknown function",
			text:  "name: x\n---\na = tkae(x);\n",
			kinds: []report.Kind{report.UnexpectedToken},
			check: func(t *testing.T, _ *ast.Document, r report.Report) {
				assert.Equal(t, []string{"did you mean `take`?"}, r[0].Help())
			},
		},
		{
			name:  "match in default body",
			text:  "name: x\n---\na = take(x) { _ : match @y { chars(1) => z } };\nb = c;\n",
			kinds: []report.Kind{report.UnexpectedToken},
			check: func(t *testing.T, doc *ast.Document, r report.Report) {
				assert.Len(t, r[0].Notes(), 1)
				assert.Len(t, doc.Items, 1)
			},
		},
		{
			name:  "tuple arm arity",
			text:  "name: x\n---\na = match (take(b), take(c)) {\n  (chars(1), chars(2)) => d;\n  (chars(3)) => e;\n};\n",
			kinds: []report.Kind{report.ArityMismatch},
			check: func(t *testing.T, _ *ast.Document, r report.Report) {
				assert.Equal(t, "match arm has 1 condition, but the match has 2 sources", r[0].Err.Error())
			},
		},
		{
			name:  "single source tuple",
			text:  "name: x\n---\na = match (take(b)) { (chars(1)) => d; };\n",
			kinds: []report.Kind{report.UnexpectedToken},
		},
		{
			name:  "arm after default",
			text:  "name: x\n---\na = match @b { _ => c; chars(1) => d; };\n",
			kinds: []report.Kind{report.UnexpectedToken},
		},
		{
			name:  "lex error does not cascade",
			text:  "name: x\n---\na = digit(1.2.3);\n",
			kinds: []report.Kind{report.LexError},
			check: func(t *testing.T, doc *ast.Document, _ report.Report) {
				assert.Len(t, doc.Items, 1)
			},
		},
		{
			name:  "unterminated string",
			text:  "name: x\n---\na = chars(\"abc);\nb = take();\nc = read();\n",
			kinds: []report.Kind{report.UnterminatedConstruct},
			check: func(t *testing.T, doc *ast.Document, r report.Report) {
				assert.Equal(t, "error: test.oml:3:11: unterminated string literal\n", r.Render(report.Simple))
				require.Len(t, doc.Items, 2)
				assert.Equal(t, "b", doc.Items[0].Targets[0].Name.Text)
				assert.Equal(t, "c", doc.Items[1].Targets[0].Name.Text)
			},
		},
		{
			name:  "unterminated string before separator",
			text:  "name: x\n---\nx = 'unterminated\n---\na: privacy_ip\n",
			kinds: []report.Kind{report.UnterminatedConstruct},
			check: func(t *testing.T, doc *ast.Document, _ report.Report) {
				assert.Empty(t, doc.Items)
				assert.Equal(t, map[string]ast.PrivacyKind{"a": ast.PrivacyIP}, doc.PrivacyTags())
			},
		},
		{
			name:  "unterminated string in arguments",
			text:  "name: x\n---\na = take(x, \"y);\nb = read();\n",
			kinds: []report.Kind{report.UnterminatedConstruct},
			check: func(t *testing.T, doc *ast.Document, _ report.Report) {
				require.Len(t, doc.Items, 1)
				assert.Equal(t, "b", doc.Items[0].Targets[0].Name.Text)
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			var r report.Report
			doc, ok := parser.Parse("test.oml", test.text, &r)
			require.NotNil(t, doc)
			assert.Equal(t, test.kinds, r.Kinds(), "%s", r.Render(report.Simple))
			assert.Equal(t, r.HasErrors(), !ok)
			if test.check != nil {
				test.check(t, doc, r)
			}
		})
	}
}
