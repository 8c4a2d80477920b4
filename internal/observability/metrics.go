package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the portal's Prometheus collectors.
type Metrics struct {
	requests       *prometheus.CounterVec
	errors         *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	realtimeEvents *prometheus.CounterVec
}

// NewMetrics registers collectors on the given registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crew_portal_http_requests_total",
			Help: "HTTP requests by path, method and status.",
		}, []string{"path", "method", "status"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crew_portal_http_errors_total",
			Help: "Request errors by path, method and error code.",
		}, []string{"path", "method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "crew_portal_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"path", "method"}),
		realtimeEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crew_portal_realtime_events_total",
			Help: "Change-feed events published per table and action.",
		}, []string{"table", "action"}),
	}
	reg.MustRegister(m.requests, m.errors, m.duration, m.realtimeEvents)
	return m
}

// RecordRequest increments request counters and latency.
func (m *Metrics) RecordRequest(path, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(path, method).Observe(elapsed.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(path, method, code).Inc()
}

// RecordRealtimeEvent counts a published change-feed event.
func (m *Metrics) RecordRealtimeEvent(table, action string) {
	if m == nil {
		return
	}
	m.realtimeEvents.WithLabelValues(table, action).Inc()
}
