// Package observability exposes Prometheus metrics for the reconciliation service.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hotel-reconciliation/internal/domain"
)

// Outcome labels for the reconciliations counter.
const (
	OutcomeOK           = "ok"
	OutcomeEmpty        = "empty"
	OutcomeInvalidInput = "invalid_input"
	OutcomeError        = "error"
)

// Metrics groups the collectors registered on a dedicated registry.
type Metrics struct {
	registry        *prometheus.Registry
	reconciliations *prometheus.CounterVec
	matchedRows     prometheus.Histogram
	discrepantRows  prometheus.Histogram
	warnings        *prometheus.CounterVec
}

// NewMetrics registers the collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		reconciliations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hotel_reconciliation",
			Name:      "reconciliations_total",
			Help:      "Reconciliation requests by outcome.",
		}, []string{"outcome"}),
		matchedRows: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hotel_reconciliation",
			Name:      "matched_rows",
			Help:      "Dates present in both exports per reconciliation.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 7),
		}),
		discrepantRows: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hotel_reconciliation",
			Name:      "discrepant_rows",
			Help:      "Matched dates with a non-zero difference per reconciliation.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 7),
		}),
		warnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hotel_reconciliation",
			Name:      "warnings_total",
			Help:      "Advisory warnings raised by code.",
		}, []string{"code"}),
	}
	m.registry.MustRegister(
		m.reconciliations,
		m.matchedRows,
		m.discrepantRows,
		m.warnings,
		collectors.NewGoCollector(),
	)
	return m
}

// ObserveReport records a successful reconciliation.
func (m *Metrics) ObserveReport(report *domain.ReconciliationReport) {
	outcome := OutcomeOK
	if report.Summary.Empty {
		outcome = OutcomeEmpty
	}
	m.reconciliations.WithLabelValues(outcome).Inc()
	m.matchedRows.Observe(float64(report.Summary.MatchedRows))
	m.discrepantRows.Observe(float64(report.Summary.DiscrepantRows))
	for _, w := range report.Warnings {
		m.warnings.WithLabelValues(string(w.Code)).Inc()
	}
}

// ObserveFailure records a rejected reconciliation.
func (m *Metrics) ObserveFailure(err error) {
	outcome := OutcomeError
	if domain.IsInputError(err) {
		outcome = OutcomeInvalidInput
	}
	m.reconciliations.WithLabelValues(outcome).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
