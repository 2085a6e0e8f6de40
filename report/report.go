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

package report

import (
	"errors"
	"fmt"
	"runtime"
	"slices"
)

const (
	Error Level = 1 + iota
	Warning
	Remark
	note // Used internally within the diagnostic renderer.
)

const (
	Simple Style = 1 + iota
	Monochrome
	Colored
)

// The diagnostic kinds produced by the OML front-end.
const (
	// No token rule matches at some offset.
	LexError Kind = "lex-error"
	// The parser was at a choice point where every alternative failed.
	UnexpectedToken Kind = "unexpected-token"
	// An opening delimiter or quote was never closed.
	UnterminatedConstruct Kind = "unterminated-construct"
	// A tuple width or target shape does not match what its context requires.
	ArityMismatch Kind = "arity-mismatch"
	// A section or header field appears more often than allowed.
	DuplicateSection Kind = "duplicate-section"
)

// ErrInvalidSource is returned by the compiler when errors were reported for
// a document but the configured reporter chose not to abort.
var ErrInvalidSource = errors.New("parse failed: invalid OML source")

// Level represents the severity of a diagnostic message.
type Level int8

// Style indicates how a diagnostic should be rendered to show a user.
type Style int

// Kind is a machine-readable classification of a diagnostic.
//
// Kinds are lowercase identifiers separated by dashes.
type Kind string

// String implements [fmt.Stringer].
func (l Level) String() string {
	switch l {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Remark:
		return "remark"
	case note:
		return "note"
	default:
		return fmt.Sprintf("Level(%d)", int8(l))
	}
}

// Diagnose is an error that can be rendered as a diagnostic.
type Diagnose interface {
	error

	// Diagnose writes out this error to the given diagnostic.
	//
	// This function should not set Level nor Err; those are set by the
	// diagnostics framework.
	Diagnose(*Diagnostic)
}

// Diagnostic is a type of error that can be rendered as a rich diagnostic.
//
// Not all Diagnostics are "errors", even though Diagnostic does embed error;
// some represent warnings, or perhaps debugging remarks.
type Diagnostic struct {
	// The error that prompted this diagnostic. Its Error() return is used
	// as the diagnostic message.
	Err error

	// The kind of diagnostic this is, which affects how and whether it is shown
	// to users.
	Level Level

	kind        Kind
	mention     string
	snippets    []snippet
	notes, help []string

	// Stack trace information for the diagnostic, for use in debugging
	// the parser. Only populated when the env var OML_DEBUG is set.
	trace []runtime.Frame
}

type snippet struct {
	file       File
	start, end Location
	message    string
	primary    bool
}

// Kind returns the classification of this diagnostic; it is empty if none was
// set.
func (d *Diagnostic) Kind() Kind {
	return d.kind
}

// Is checks whether this diagnostic has a particular kind.
func (d *Diagnostic) Is(kind Kind) bool {
	return d.kind == kind
}

// Primary returns this diagnostic's primary diagnostic, if it has one.
func (d *Diagnostic) Primary() (file File, start, end Location) {
	if len(d.snippets) == 0 {
		file.Path = d.mention
		return
	}

	return d.snippets[0].file, d.snippets[0].start, d.snippets[0].end
}

// Notes returns the notes attached to this diagnostic.
func (d *Diagnostic) Notes() []string {
	return slices.Clone(d.notes)
}

// Help returns the help lines attached to this diagnostic.
func (d *Diagnostic) Help() []string {
	return slices.Clone(d.help)
}

// With applies the given options to this diagnostic.
func (d *Diagnostic) With(options ...DiagnosticOption) {
	for _, option := range options {
		if option != nil {
			option(d)
		}
	}
}

// DiagnosticOption is an option that can be applied to a [Diagnostic].
//
// Nil options are ignored.
type DiagnosticOption func(*Diagnostic)

// Tag returns a DiagnosticOption that sets the diagnostic's kind. The last
// tag applied wins.
func Tag(kind Kind) DiagnosticOption {
	return func(d *Diagnostic) { d.kind = kind }
}

// MentionFile returns a DiagnosticOption that causes a diagnostic without
// a primary span to mention the given file.
func MentionFile(path string) DiagnosticOption {
	return func(d *Diagnostic) { d.mention = path }
}

// Snippet returns a DiagnosticOption that adds a new snippet to the
// diagnostic.
//
// The first snippet added is the "primary" snippet, and will be rendered
// differently from the others.
func Snippet[Spanner interface{ Span() S }, S Span](at Spanner, format string, args ...any) DiagnosticOption {
	return SnippetAt(at.Span(), format, args...)
}

// SnippetAt is like Snippet, but takes a span rather than something with a Span() method.
func SnippetAt(span Span, format string, args ...any) DiagnosticOption {
	if span == nil {
		return nil
	}
	return func(d *Diagnostic) {
		d.snippets = append(d.snippets, snippet{
			file:    span.File(),
			start:   span.Start(),
			end:     span.End(),
			message: fmt.Sprintf(format, args...),
			primary: len(d.snippets) == 0,
		})
	}
}

// Note returns a DiagnosticOption that provides the user with context about the
// diagnostic, after the snippets.
func Note(format string, args ...any) DiagnosticOption {
	return func(d *Diagnostic) {
		d.notes = append(d.notes, fmt.Sprintf(format, args...))
	}
}

// Help returns a DiagnosticOption that provides the user with a helpful prose
// suggestion for resolving the diagnostic.
func Help(format string, args ...any) DiagnosticOption {
	return func(d *Diagnostic) {
		d.help = append(d.help, fmt.Sprintf(format, args...))
	}
}

// Report is a collection of diagnostics.
type Report []Diagnostic

// Error pushes an error diagnostic onto this report.
func (r *Report) Error(err error, opts ...DiagnosticOption) {
	r.push(1, err, Error, opts)
}

// Errorf is like Error, but formats a message.
func (r *Report) Errorf(format string, args ...any) func(...DiagnosticOption) {
	err := fmt.Errorf(format, args...)
	return func(opts ...DiagnosticOption) { r.push(1, err, Error, opts) }
}

// Warn pushes a warning diagnostic onto this report.
func (r *Report) Warn(err error, opts ...DiagnosticOption) {
	r.push(1, err, Warning, opts)
}

// Remark pushes a remark diagnostic onto this report.
func (r *Report) Remark(err error, opts ...DiagnosticOption) {
	r.push(1, err, Remark, opts)
}

// Errors returns the number of error-level diagnostics in this report.
func (r Report) Errors() int {
	var n int
	for i := range r {
		if r[i].Level == Error {
			n++
		}
	}
	return n
}

// HasErrors returns whether any diagnostic in this report is an error.
func (r Report) HasErrors() bool {
	return r.Errors() > 0
}

// Kinds returns the kind of every diagnostic in this report, in order.
func (r Report) Kinds() []Kind {
	kinds := make([]Kind, len(r))
	for i := range r {
		kinds[i] = r[i].kind
	}
	return kinds
}

// Sort sorts this report by file, then by primary location. Diagnostics
// without a location sort first within their file.
func (r Report) Sort() {
	slices.SortStableFunc(r, func(a, b Diagnostic) int {
		af, as, _ := a.Primary()
		bf, bs, _ := b.Primary()
		if af.Path != bf.Path {
			if af.Path < bf.Path {
				return -1
			}
			return 1
		}
		return as.Offset - bs.Offset
	})
}

// push is the core "make me a diagnostic" function.
func (r *Report) push(skip int, err error, level Level, opts []DiagnosticOption) {
	*r = append(*r, Diagnostic{Err: err, Level: level})
	d := &(*r)[len(*r)-1]
	if diag, ok := err.(Diagnose); ok {
		diag.Diagnose(d)
	}
	d.With(opts...)

	// If debugging is on, capture a stack trace.
	if debugMode > debugOff {
		// Unwind the stack to find program counter information.
		pc := make([]uintptr, 64)
		pc = pc[:runtime.Callers(skip+2, pc)]

		// Fill trace with the result.
		var zero runtime.Frame
		frames := runtime.CallersFrames(pc)
		for {
			next, more := frames.Next()
			if next != zero {
				d.trace = append(d.trace, next)
			}
			if !more {
				break
			}
		}
	}
}
