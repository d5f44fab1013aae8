// Package metrics exposes Prometheus counters for the HTTP layer and the
// OD mail pipeline. All methods are nil-safe so services can run without a
// collector (tests, CLI).
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry
type Metrics struct {
	registry *prometheus.Registry

	httpRequests     *prometheus.CounterVec
	httpLatency      *prometheus.HistogramVec
	timetableUploads *prometheus.CounterVec
	timetableEntries prometheus.Counter
	autoFills        *prometheus.CounterVec
	emailsGenerated  *prometheus.CounterVec
	dispatches       *prometheus.CounterVec
}

// New registers all collectors on a fresh registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "odmail_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "odmail_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		timetableUploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "odmail_timetable_uploads_total",
			Help: "Timetable uploads by format and outcome.",
		}, []string{"format", "outcome"}),
		timetableEntries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "odmail_timetable_entries_total",
			Help: "Timetable entries accepted across all uploads.",
		}),
		autoFills: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "odmail_autofill_total",
			Help: "Auto-fill attempts by outcome.",
		}, []string{"outcome"}),
		emailsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "odmail_emails_generated_total",
			Help: "Email compositions by outcome.",
		}, []string{"outcome"}),
		dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "odmail_dispatch_total",
			Help: "Email dispatch attempts by relay and result code.",
		}, []string{"relay", "result"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpLatency,
		m.timetableUploads,
		m.timetableEntries,
		m.autoFills,
		m.emailsGenerated,
		m.dispatches,
	)
	return m
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveHTTP records one request
func (m *Metrics) ObserveHTTP(route, method string, status int, latency time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpLatency.WithLabelValues(route).Observe(latency.Seconds())
}

// TimetableUploaded records an upload and the number of accepted entries
func (m *Metrics) TimetableUploaded(format, outcome string, entries int) {
	if m == nil {
		return
	}
	m.timetableUploads.WithLabelValues(format, outcome).Inc()
	m.timetableEntries.Add(float64(entries))
}

// AutoFilled records an auto-fill attempt
func (m *Metrics) AutoFilled(outcome string) {
	if m == nil {
		return
	}
	m.autoFills.WithLabelValues(outcome).Inc()
}

// EmailGenerated records a composition attempt
func (m *Metrics) EmailGenerated(outcome string) {
	if m == nil {
		return
	}
	m.emailsGenerated.WithLabelValues(outcome).Inc()
}

// Dispatched records a dispatch attempt; result is "ok" or a transport code
func (m *Metrics) Dispatched(relay, result string) {
	if m == nil {
		return
	}
	m.dispatches.WithLabelValues(relay, result).Inc()
}
