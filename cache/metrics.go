package cache

import "github.com/prometheus/client_golang/prometheus"

// Metrics collects cache behavior counters.
type Metrics struct {
	hits          prometheus.Counter
	misses        prometheus.Counter
	dedups        prometheus.Counter
	invalidations prometheus.Counter
	evictions     prometheus.Counter
	inflight      prometheus.Gauge
}

// NewMetrics creates the cache collectors and registers them.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dashboard",
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Queries answered from a resident entry.",
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dashboard",
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Queries that required a fetch.",
		}),
		dedups: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dashboard",
			Subsystem: "cache",
			Name:      "dedups_total",
			Help:      "Queries that joined an in-flight fetch for the same key.",
		}),
		invalidations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dashboard",
			Subsystem: "cache",
			Name:      "invalidations_total",
			Help:      "Entries marked stale by mutations.",
		}),
		evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dashboard",
			Subsystem: "cache",
			Name:      "evictions_total",
			Help:      "Idle entries removed by the janitor.",
		}),
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "dashboard",
			Subsystem: "cache",
			Name:      "inflight_fetches",
			Help:      "Fetches currently in flight.",
		}),
	}

	reg.MustRegister(m.hits, m.misses, m.dedups, m.invalidations, m.evictions, m.inflight)
	return m
}
