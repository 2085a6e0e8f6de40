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
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bufbuild/oml/report"
)

// Metrics records what a [Compiler] does:
//
//   - oml_documents_total: documents compiled, by outcome (ok, invalid,
//     failed);
//   - oml_diagnostics_total: diagnostics reported, by level and kind;
//   - oml_parse_duration_seconds: time spent lexing, parsing and validating
//     one document.
//
// A nil *Metrics records nothing.
type Metrics struct {
	documents   *prometheus.CounterVec
	diagnostics *prometheus.CounterVec
	duration    prometheus.Histogram
}

// NewMetrics creates the compiler's collectors and registers them with reg.
// If reg is nil, the collectors are created but not registered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		documents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "oml",
				Name:      "documents_total",
				Help:      "Total number of documents compiled, by outcome",
			},
			[]string{"outcome"},
		),
		diagnostics: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "oml",
				Name:      "diagnostics_total",
				Help:      "Total number of diagnostics reported, by level and kind",
			},
			[]string{"level", "kind"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "oml",
				Name:      "parse_duration_seconds",
				Help:      "Duration of parsing one document in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs to 2.6s
			},
		),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{m.documents, m.diagnostics, m.duration} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// fileCompiled records a document that was parsed in the given time, with
// the given diagnostics. A zero duration means parsing was skipped.
func (m *Metrics) fileCompiled(took time.Duration, r report.Report) {
	if m == nil {
		return
	}

	outcome := "ok"
	if r.HasErrors() {
		outcome = "invalid"
	}
	m.documents.WithLabelValues(outcome).Inc()
	if took > 0 {
		m.duration.Observe(took.Seconds())
	}

	for i := range r {
		kind := string(r[i].Kind())
		if kind == "" {
			kind = "none"
		}
		m.diagnostics.WithLabelValues(r[i].Level.String(), kind).Inc()
	}
}

// fileFailed records a document that could not be loaded.
func (m *Metrics) fileFailed() {
	if m == nil {
		return
	}
	m.documents.WithLabelValues("failed").Inc()
}
