// Package metrics exposes Prometheus counters for evaluations served over HTTP.
package metrics

import (
	"net/http"
	"time"

	"github.com/kakunje/prakriti/internal/assessment"
	q "github.com/kakunje/prakriti/internal/questionnaire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Evaluation outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeFallback = "fallback"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

// Metrics holds the collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	Evaluations *prometheus.CounterVec
	Fallbacks   *prometheus.CounterVec
	Severity    *prometheus.CounterVec
	Duration    prometheus.Histogram
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Evaluations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prakriti_evaluations_total",
				Help: "Total number of answer sheets evaluated, by outcome",
			},
			[]string{"outcome"},
		),
		Fallbacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prakriti_fallbacks_total",
				Help: "Total number of scoring fallbacks, by kind",
			},
			[]string{"kind"},
		),
		Severity: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prakriti_severity_classifications_total",
				Help: "Combined category severities reported, by category and level",
			},
			[]string{"category", "level"},
		),
		Duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "prakriti_evaluation_duration_seconds",
			Help:    "Duration of answer sheet evaluation in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
	}
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveReport records a successful evaluation.
func (m *Metrics) ObserveReport(r *assessment.Report, elapsed time.Duration) {
	m.Duration.Observe(elapsed.Seconds())

	kinds := r.Fallbacks.Kinds()
	if len(kinds) > 0 {
		m.Evaluations.WithLabelValues(OutcomeFallback).Inc()
	} else {
		m.Evaluations.WithLabelValues(OutcomeOK).Inc()
	}
	for _, k := range kinds {
		m.Fallbacks.WithLabelValues(k).Inc()
	}
	for _, c := range q.Categories {
		if level, ok := r.Recommendations.Health.Severity[c]; ok {
			m.Severity.WithLabelValues(c.String(), level.String()).Inc()
		}
	}
}

// ObserveFailure records an evaluation that produced no report.
func (m *Metrics) ObserveFailure(outcome string, elapsed time.Duration) {
	m.Duration.Observe(elapsed.Seconds())
	m.Evaluations.WithLabelValues(outcome).Inc()
}
