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
	"fmt"
	"io"
	"runtime"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/bufbuild/oml/ast"
	"github.com/bufbuild/oml/parser"
	"github.com/bufbuild/oml/report"
)

// Compiler runs the OML front-end over a set of documents: each one is
// loaded through the Resolver, lexed, parsed and validated.
//
// Documents are independent of each other, so they are processed in
// parallel; all diagnostics go through a single [report.Handler].
type Compiler struct {
	// Resolves paths into source code or already parsed documents. This is
	// the only required field.
	Resolver Resolver
	// The maximum parallelism to use when compiling. If unspecified or set to
	// a non-positive value, then min(runtime.NumCPU(), runtime.GOMAXPROCS(-1))
	// will be used.
	MaxParallelism int
	// Called for every error-level diagnostic. If it returns an error, the
	// compilation is aborted and that error is returned from Compile. If
	// unspecified, every error is collected and Compile returns
	// [report.ErrInvalidSource] once all documents are done.
	Reporter report.ErrorReporter
	// Called for every diagnostic that is not an error. May be nil.
	Warnings report.WarningReporter
	// Instrumentation for the compilation. May be nil.
	Metrics *Metrics
}

// File is the result of compiling one document.
type File struct {
	Path string
	// The parsed document. When the report has errors, it holds only what
	// could be parsed.
	AST *ast.Document
	// The document's source. Empty if the resolver supplied an AST.
	Text string
	// The diagnostics produced for this document alone.
	Report report.Report
}

// OK returns whether the document compiled without errors.
func (f *File) OK() bool {
	return !f.Report.HasErrors()
}

// Files is a list of compiled documents.
type Files []*File

// FindFileByPath returns the file with the given path, or nil.
func (f Files) FindFileByPath(path string) *File {
	i := slices.IndexFunc(f, func(file *File) bool { return file.Path == path })
	if i < 0 {
		return nil
	}
	return f[i]
}

// Compile compiles the given paths, returning one file for each, in the same
// order. A path that appears more than once is only compiled once.
//
// If any document had errors and the Reporter did not abort, the files are
// returned along with [report.ErrInvalidSource], so that tools can still look
// at what was parsed.
func (c *Compiler) Compile(ctx context.Context, paths ...string) (Files, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	par := c.MaxParallelism
	if par <= 0 {
		par = min(runtime.GOMAXPROCS(-1), runtime.NumCPU())
	}

	e := executor{
		c:       c,
		h:       report.NewHandler(c.Reporter, c.Warnings),
		s:       semaphore.NewWeighted(int64(par)),
		cancel:  cancel,
		results: map[string]*result{},
	}

	results := make([]*result, len(paths))
	for i, path := range paths {
		results[i] = e.compile(ctx, path)
	}

	files := make(Files, len(paths))
	for i, r := range results {
		select {
		case <-r.ready:
		case <-ctx.Done():
			if err := e.h.ReporterError(); err != nil {
				return nil, err
			}
			return nil, ctx.Err()
		}
		if r.err != nil {
			if err := e.h.ReporterError(); err != nil {
				return nil, err
			}
			return nil, r.err
		}
		files[i] = r.res
	}

	return files, e.h.Error()
}

type result struct {
	ready chan struct{}
	res   *File
	err   error
}

func (r *result) fail(err error) {
	r.err = err
	close(r.ready)
}

func (r *result) complete(f *File) {
	r.res = f
	close(r.ready)
}

type executor struct {
	c      *Compiler
	h      *report.Handler
	s      *semaphore.Weighted
	cancel context.CancelFunc

	mu      sync.Mutex
	results map[string]*result
}

func (e *executor) compile(ctx context.Context, path string) *result {
	e.mu.Lock()
	defer e.mu.Unlock()
	r := e.results[path]
	if r != nil {
		return r
	}

	r = &result{
		ready: make(chan struct{}),
	}
	e.results[path] = r
	go func() {
		e.doCompile(ctx, path, r)
	}()
	return r
}

func (e *executor) doCompile(ctx context.Context, path string, r *result) {
	if err := e.s.Acquire(ctx, 1); err != nil {
		r.fail(err)
		return
	}
	defer e.s.Release(1)

	sr, err := e.c.Resolver.FindFileByPath(path)
	if err != nil {
		e.c.Metrics.fileFailed()
		r.fail(err)
		return
	}
	defer func() {
		// if results included a result, don't leave it open if it can be closed
		if c, ok := sr.Source.(io.Closer); ok {
			_ = c.Close()
		}
	}()

	file, err := e.asFile(path, sr)
	if err != nil {
		e.c.Metrics.fileFailed()
		r.fail(err)
		return
	}

	if err := e.h.HandleReport(file.Report); err != nil {
		// The reporter asked to stop; nobody should wait on other files.
		e.cancel()
		r.fail(err)
		return
	}
	r.complete(file)
}

func (e *executor) asFile(path string, sr SearchResult) (*File, error) {
	if sr.AST != nil {
		e.c.Metrics.fileCompiled(0, nil)
		return &File{Path: path, AST: sr.AST}, nil
	}
	if sr.Source == nil {
		return nil, fmt.Errorf("search result for %q has neither source nor AST", path)
	}

	data, err := io.ReadAll(sr.Source)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}

	file := &File{Path: path, Text: string(data)}
	start := time.Now()
	file.AST, _ = parser.Parse(path, file.Text, &file.Report)
	e.c.Metrics.fileCompiled(time.Since(start), file.Report)
	return file, nil
}
