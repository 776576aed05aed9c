package client

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects request counts and latency for the HTTP adapter.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the adapter collectors and registers them.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dashboard",
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "API requests by method and outcome.",
		}, []string{"method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "dashboard",
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "API request latency by method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}

	reg.MustRegister(m.requests, m.duration)
	return m
}

func (m *Metrics) observe(method string, resp *http.Response, err error, elapsed time.Duration) {
	status := "network_error"
	if err == nil && resp != nil {
		status = strconv.Itoa(resp.StatusCode)
	}

	m.requests.WithLabelValues(method, status).Inc()
	m.duration.WithLabelValues(method).Observe(elapsed.Seconds())
}
