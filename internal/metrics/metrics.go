// Package metrics registers the engine's Prometheus collectors.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics bundles the engine collectors so callers can register them on
// any registry (tests use a private one to avoid global collisions).
type Metrics struct {
	SessionsStarted prometheus.Counter
	StatusUpdates   *prometheus.CounterVec
	LoadFailures    prometheus.Counter
	ResolveDuration prometheus.Histogram
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "espalier_sessions_started_total",
			Help: "Total number of sessions started",
		}),
		StatusUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "espalier_status_updates_total",
			Help: "Total number of course status updates",
		}, []string{"status"}),
		LoadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "espalier_plan_load_failures_total",
			Help: "Total number of plan documents rejected at load time",
		}),
		ResolveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: "espalier_resolve_duration_seconds",
			Help: "Duration of full eligibility resolution passes",
		}),
	}
	reg.MustRegister(m.SessionsStarted, m.StatusUpdates, m.LoadFailures, m.ResolveDuration)
	return m
}

// NewNop creates unregistered collectors, for callers that do not expose
// metrics.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}
