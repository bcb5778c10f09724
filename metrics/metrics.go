// Package metrics provides Prometheus instrumentation for ffxl.
//
// All collectors are registered in a custom [prometheus.Registry] (not the
// global default) so that only ffxl metrics appear wherever the handler is
// mounted. [Metrics] implements [ffxl.Observer] and can be attached to a
// snapshot with [ffxl.WithObserver].
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matt-riley/ffxl"
)

// Metrics holds all Prometheus collectors used by ffxl.
type Metrics struct {
	Registry *prometheus.Registry

	EvaluationsTotal   *prometheus.CounterVec
	SnapshotFeatures   prometheus.Gauge
	SnapshotLoadsTotal prometheus.Counter
}

// New creates and registers all ffxl metrics in a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,

		EvaluationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ffxl_feature_evaluations_total",
			Help: "Total number of feature evaluations by feature, reason, and result.",
		}, []string{"feature", "reason", "enabled"}),

		SnapshotFeatures: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ffxl_snapshot_features",
			Help: "Number of features in the currently served snapshot.",
		}),

		SnapshotLoadsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ffxl_snapshot_loads_total",
			Help: "Total number of snapshot loads and swaps.",
		}),
	}

	reg.MustRegister(
		m.EvaluationsTotal,
		m.SnapshotFeatures,
		m.SnapshotLoadsTotal,
	)

	return m
}

// Handler returns an [http.Handler] that serves the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// ObserveEvaluation implements [ffxl.Observer]. The user id is deliberately
// not a label: identities are unbounded and would blow up cardinality.
func (m *Metrics) ObserveEvaluation(feature string, enabled bool, reason ffxl.Reason, _ string) {
	m.EvaluationsTotal.WithLabelValues(feature, string(reason), strconv.FormatBool(enabled)).Inc()
}

// RecordSnapshotLoad notes that a snapshot with featureCount features was
// loaded or swapped in.
func (m *Metrics) RecordSnapshotLoad(featureCount int) {
	m.SnapshotLoadsTotal.Inc()
	m.SnapshotFeatures.Set(float64(featureCount))
}
