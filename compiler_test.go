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

package oml

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/oml/ast"
	"github.com/bufbuild/oml/report"
)

var sources = map[string]string{
	"a.oml": "name: a\n---\nx = take();\n",
	"b.oml": "name: b\nrule: /b/*\n---\ny = read(z) | to_str;\n",
	"bad.oml": "name: bad\n---\nx = take(;\ny = @z;\n",
	"warn.oml": "name: warn\nrule: /w, /w\n---\n",
}

func mapResolver() *SourceResolver {
	return &SourceResolver{Accessor: SourceAccessorFromMap(sources)}
}

func TestCompile(t *testing.T) {
	t.Parallel()

	comp := Compiler{Resolver: mapResolver()}
	files, err := comp.Compile(context.Background(), "b.oml", "a.oml")
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, "b.oml", files[0].Path)
	assert.Equal(t, "b", files[0].AST.Header.Name.Text)
	assert.Equal(t, sources["b.oml"], files[0].Text)
	assert.True(t, files[0].OK())
	assert.Equal(t, "a.oml", files[1].Path)
	assert.Equal(t, "a", files[1].AST.Header.Name.Text)

	assert.Same(t, files[1], files.FindFileByPath("a.oml"))
	assert.Nil(t, files.FindFileByPath("c.oml"))
}

func TestCompileNothing(t *testing.T) {
	t.Parallel()

	comp := Compiler{Resolver: mapResolver()}
	files, err := comp.Compile(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, files)
}

func TestCompileOnce(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	comp := Compiler{
		Resolver: ResolverFunc(func(path string) (SearchResult, error) {
			calls.Add(1)
			return mapResolver().FindFileByPath(path)
		}),
	}
	files, err := comp.Compile(context.Background(), "a.oml", "a.oml", "b.oml", "a.oml")
	require.NoError(t, err)
	require.Len(t, files, 4)
	assert.Equal(t, int32(2), calls.Load())
	assert.Same(t, files[0], files[1])
	assert.Same(t, files[0], files[3])
}

func TestCompileMany(t *testing.T) {
	t.Parallel()

	srcs := make(map[string]string)
	var paths []string
	for i := range 50 {
		path := fmt.Sprintf("doc%02d.oml", i)
		srcs[path] = fmt.Sprintf("name: doc%02d\n---\nv = chars(x%d);\n", i, i)
		paths = append(paths, path)
	}

	comp := Compiler{
		Resolver:       &SourceResolver{Accessor: SourceAccessorFromMap(srcs)},
		MaxParallelism: 4,
	}
	files, err := comp.Compile(context.Background(), paths...)
	require.NoError(t, err)
	require.Len(t, files, len(paths))
	for i, f := range files {
		assert.Equal(t, paths[i], f.Path)
		assert.Equal(t, fmt.Sprintf("doc%02d", i), f.AST.Header.Name.Text)
	}
}

func TestCompileErrors(t *testing.T) {
	t.Parallel()

	var warnings []string
	comp := Compiler{
		Resolver: mapResolver(),
		Warnings: func(d *report.Diagnostic) {
			warnings = append(warnings, d.Err.Error())
		},
	}
	files, err := comp.Compile(context.Background(), "a.oml", "bad.oml", "warn.oml")
	require.ErrorIs(t, err, report.ErrInvalidSource)
	require.Len(t, files, 3)

	assert.True(t, files[0].OK())
	assert.False(t, files[1].OK())
	assert.Equal(t,
		[]report.Kind{report.UnterminatedConstruct, report.UnexpectedToken},
		files[1].Report.Kinds(),
	)
	require.Len(t, files[1].AST.Items, 0)
	assert.True(t, files[2].OK())
	assert.Equal(t, []string{"rule pattern `/w` is listed more than once"}, warnings)
}

func TestCompileAbort(t *testing.T) {
	t.Parallel()

	abort := errors.New("abort")
	comp := Compiler{
		Resolver: mapResolver(),
		Reporter: func(*report.Diagnostic) error { return abort },
	}
	files, err := comp.Compile(context.Background(), "bad.oml", "a.oml")
	assert.ErrorIs(t, err, abort)
	assert.Nil(t, files)
}

func TestCompileNotFound(t *testing.T) {
	t.Parallel()

	comp := Compiler{Resolver: mapResolver()}
	_, err := comp.Compile(context.Background(), "a.oml", "missing.oml")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestCompileCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	block := make(chan struct{})
	defer close(block)
	comp := Compiler{
		Resolver: ResolverFunc(func(string) (SearchResult, error) {
			<-block
			return SearchResult{}, ErrNotFound
		}),
	}
	_, err := comp.Compile(ctx, "a.oml")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompileAST(t *testing.T) {
	t.Parallel()

	doc := &ast.Document{Header: &ast.Header{Name: &ast.Path{Text: "pre"}}}
	comp := Compiler{
		Resolver: CompositeResolver{
			ResolverFunc(func(path string) (SearchResult, error) {
				if path == "pre.oml" {
					return SearchResult{AST: doc}, nil
				}
				return SearchResult{}, ErrNotFound
			}),
			mapResolver(),
		},
	}
	files, err := comp.Compile(context.Background(), "pre.oml", "a.oml")
	require.NoError(t, err)
	assert.Same(t, doc, files[0].AST)
	assert.Empty(t, files[0].Text)
	assert.Equal(t, "a", files[1].AST.Header.Name.Text)
}

func TestCompositeResolver(t *testing.T) {
	t.Parallel()

	_, err := CompositeResolver(nil).FindFileByPath("a.oml")
	assert.ErrorIs(t, err, ErrNotFound)

	first := errors.New("first")
	res := CompositeResolver{
		ResolverFunc(func(string) (SearchResult, error) { return SearchResult{}, first }),
		ResolverFunc(func(string) (SearchResult, error) { return SearchResult{}, ErrNotFound }),
	}
	_, err = res.FindFileByPath("a.oml")
	assert.ErrorIs(t, err, first)
}

func TestSourceResolverImportPaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "two"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "two", "x.oml"), []byte("name: x\n---\n"), 0o600))

	res := &SourceResolver{ImportPaths: []string{filepath.Join(dir, "one"), filepath.Join(dir, "two")}}
	sr, err := res.FindFileByPath("x.oml")
	require.NoError(t, err)
	data, err := io.ReadAll(sr.Source)
	require.NoError(t, err)
	assert.Equal(t, "name: x\n---\n", string(data))
	require.NoError(t, sr.Source.(io.Closer).Close())

	_, err = res.FindFileByPath("y.oml")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	metrics, err := NewMetrics(reg)
	require.NoError(t, err)

	comp := Compiler{Resolver: mapResolver(), Metrics: metrics}
	_, err = comp.Compile(context.Background(), "a.oml", "bad.oml", "warn.oml", "missing.oml")
	require.Error(t, err)

	assert.InDelta(t, 2, testutil.ToFloat64(metrics.documents.WithLabelValues("ok")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.documents.WithLabelValues("invalid")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.documents.WithLabelValues("failed")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.diagnostics.WithLabelValues("error", "unterminated-construct")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.diagnostics.WithLabelValues("warning", "none")), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.duration))

	// A second set of collectors cannot share the registry.
	_, err = NewMetrics(reg)
	assert.Error(t, err)

	// Nil metrics are ignored.
	var none *Metrics
	none.fileFailed()
	none.fileCompiled(0, nil)
}

func ExampleCompiler() {
	comp := Compiler{
		Resolver: &SourceResolver{Accessor: SourceAccessorFromMap(map[string]string{
			"nginx.oml": "name: nginx/access\n---\nip: ip = take(option:[client, remote]);\n",
		})},
	}
	files, err := comp.Compile(context.Background(), "nginx.oml")
	if err != nil {
		fmt.Println(err)
		return
	}
	doc := files[0].AST
	fmt.Println(doc.Header.Name.Text, strings.Join(doc.Header.Name.Segments, " "))
	for _, b := range doc.Bindings() {
		fmt.Println(b.Target.Name.Text, b.Target.Type)
	}
	// Output:
	// nginx/access nginx access
	// ip ip
}
