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
	"slices"
	"sync"
)

// ErrorReporter is responsible for reporting an error-level diagnostic. If it
// returns a non-nil error, the compilation using it is aborted and that error
// is returned to the caller. Returning nil keeps the compilation going, so
// that more errors can be found.
type ErrorReporter func(*Diagnostic) error

// WarningReporter is told about every non-error diagnostic.
type WarningReporter func(*Diagnostic)

// Handler is a sink for diagnostics that may be shared by several concurrent
// parses. It records every diagnostic it is given, forwards them to the
// configured reporters, and remembers the first error a reporter returned.
type Handler struct {
	errs     ErrorReporter
	warnings WarningReporter

	mu           sync.Mutex
	report       Report
	errsReported bool
	err          error
}

// NewHandler returns a new handler. Either reporter may be nil; a nil error
// reporter never aborts.
func NewHandler(errs ErrorReporter, warnings WarningReporter) *Handler {
	return &Handler{errs: errs, warnings: warnings}
}

// HandleReport records every diagnostic in r, in order.
//
// It returns a non-nil error once a reporter has asked to abort; any
// diagnostics after that point are recorded but no longer forwarded.
func (h *Handler) HandleReport(r Report) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i := range r {
		d := &r[i]
		h.report = append(h.report, *d)
		if h.err != nil {
			continue
		}
		if d.Level != Error {
			if h.warnings != nil {
				h.warnings(d)
			}
			continue
		}
		h.errsReported = true
		if h.errs != nil {
			h.err = h.errs(d)
		}
	}
	return h.err
}

// Report returns a copy of every diagnostic handled so far.
func (h *Handler) Report() Report {
	h.mu.Lock()
	defer h.mu.Unlock()

	return slices.Clone(h.report)
}

// Error returns the error that should be returned to the caller: the
// reporter's own error if it aborted, [ErrInvalidSource] if errors were
// reported but none aborted, or nil.
func (h *Handler) Error() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.errsReported && h.err == nil {
		return ErrInvalidSource
	}
	return h.err
}

// ReporterError returns the error returned by the error reporter, if any.
func (h *Handler) ReporterError() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.err
}
