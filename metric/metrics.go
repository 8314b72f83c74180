// Package metric exposes Prometheus counters for validation activity,
// served over HTTP when brickcheck runs in watch mode.
package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ValidationsTotal counts validation runs, labeled by conformance.
	ValidationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "brickcheck_validations_total",
		Help: "Number of validation runs, labeled by conformance outcome.",
	}, []string{"conforms"})

	// ViolationsTotal counts constraint violations across all runs.
	ViolationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "brickcheck_violations_total",
		Help: "Number of constraint violations reported.",
	})

	// UnresolvedViolationsTotal counts violations no triple finder handled.
	UnresolvedViolationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "brickcheck_unresolved_violations_total",
		Help: "Number of violations left without an offending-triple attachment.",
	})
)

// RecordRun updates the counters for one validation run.
func RecordRun(conforms bool, violations, unresolved int) {
	label := "false"
	if conforms {
		label = "true"
	}
	ValidationsTotal.WithLabelValues(label).Inc()
	ViolationsTotal.Add(float64(violations))
	UnresolvedViolationsTotal.Add(float64(unresolved))
}

// Handler returns the HTTP handler serving the default Prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
