// Package metrics exposes Prometheus counters for catalog imports.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Import outcomes used as the requests_total label.
const (
	OutcomeSuccess  = "success"
	OutcomePartial  = "partial"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

var (
	importRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "menuboard",
		Subsystem: "import",
		Name:      "requests_total",
		Help:      "Total number of catalog imports broken down by outcome.",
	}, []string{"outcome"})

	importRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "menuboard",
		Subsystem: "import",
		Name:      "rows_total",
		Help:      "Total number of imported data rows broken down by validation result.",
	}, []string{"result"})

	importDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "menuboard",
		Subsystem: "import",
		Name:      "duration_seconds",
		Help:      "Time spent decoding, validating and persisting one import.",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	})
)

// RecordImport counts one finished import.
func RecordImport(outcome string, validRows, errorRows int, elapsed time.Duration) {
	if outcome == "" {
		outcome = "unknown"
	}
	importRequests.WithLabelValues(outcome).Inc()
	importRows.WithLabelValues("valid").Add(float64(validRows))
	importRows.WithLabelValues("invalid").Add(float64(errorRows))
	importDuration.Observe(elapsed.Seconds())
}

// RecordFailure counts an import that ended with an error before producing
// a result.
func RecordFailure(elapsed time.Duration) {
	importRequests.WithLabelValues(OutcomeFailed).Inc()
	importDuration.Observe(elapsed.Seconds())
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
