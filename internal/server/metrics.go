package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the HTTP and credential collectors, registered on their own registry.
type Metrics struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestsFlight  prometheus.Gauge
	requestDuration *prometheus.HistogramVec
	authAttempts    *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors, plus the Go runtime and process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mymusic_http_requests_total",
				Help: "Total number of HTTP requests by route and status class",
			},
			[]string{"method", "route", "status"},
		),
		requestsFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "mymusic_http_requests_in_flight",
				Help: "Number of HTTP requests currently being served",
			},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mymusic_http_request_duration_seconds",
				Help:    "HTTP request latency by route",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		authAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mymusic_auth_attempts_total",
				Help: "Signup and login attempts by outcome",
			},
			[]string{"operation", "result"},
		),
	}

	m.registry.MustRegister(
		m.requestsTotal,
		m.requestsFlight,
		m.requestDuration,
		m.authAttempts,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records request count, latency and in-flight requests.
//
// Routes are labelled by their registered pattern so path parameters do not explode cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		m.requestsFlight.Inc()
		defer m.requestsFlight.Dec()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}

		m.requestsTotal.WithLabelValues(r.Method, route, fmt.Sprintf("%dxx", rec.status/100)).Inc()
		m.requestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// ObserveAuth counts a signup or login outcome.
func (m *Metrics) ObserveAuth(operation, result string) {
	m.authAttempts.WithLabelValues(operation, result).Inc()
}

var _ Handler = (*Metrics)(nil)

// ServeHTTP writes the registry in the Prometheus exposition format.
func (m *Metrics) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}).ServeHTTP(w, r)
}

func (m *Metrics) Routes() []string { return []string{"GET /metrics"} }
