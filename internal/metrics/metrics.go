// Package metrics defines the Prometheus metrics exported by playtrack.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Label values for the ingestion and forwarding counters.
const (
	FormatXAPI    = "xapi"
	FormatSCORM12 = "scorm12"

	OutcomeSaved    = "saved"
	OutcomeDisabled = "disabled"
	OutcomeInvalid  = "invalid"
	OutcomeFailed   = "failed"

	OutcomeSubmitted = "submitted"
	OutcomeDropped   = "dropped"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Ingestion metrics
	IngestionTotal    *prometheus.CounterVec
	IngestionDuration *prometheus.HistogramVec

	// LRS forwarding metrics
	LRSForwardTotal *prometheus.CounterVec
	LRSQueueDepth   prometheus.Gauge

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

// New creates all metrics and registers them, together with the Go and process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		IngestionTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "playtrack_ingestion_total",
				Help: "Total number of telemetry ingestion attempts",
			},
			[]string{"format", "outcome"},
		),
		IngestionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "playtrack_ingestion_duration_seconds",
				Help:    "Time to normalize and store one telemetry payload",
				Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"format"},
		),
		LRSForwardTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "playtrack_lrs_forward_total",
				Help: "Total number of statements handed to the LRS forwarder",
			},
			[]string{"outcome"},
		),
		LRSQueueDepth: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "playtrack_lrs_queue_depth",
				Help: "Number of statements waiting to be forwarded to the LRS",
			},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "playtrack_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "playtrack_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.IngestionTotal,
		m.IngestionDuration,
		m.LRSForwardTotal,
		m.LRSQueueDepth,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
	)
	return m
}

// Registry returns the registry every metric is registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveIngestion records the outcome and latency of one ingestion.
func (m *Metrics) ObserveIngestion(format, outcome string, started time.Time) {
	if m == nil {
		return
	}
	m.IngestionTotal.WithLabelValues(format, outcome).Inc()
	m.IngestionDuration.WithLabelValues(format).Observe(time.Since(started).Seconds())
}

// ObserveForward records what happened to a statement handed to the forwarder.
func (m *Metrics) ObserveForward(outcome string) {
	if m == nil {
		return
	}
	m.LRSForwardTotal.WithLabelValues(outcome).Inc()
}

// SetQueueDepth reports the forwarder backlog.
func (m *Metrics) SetQueueDepth(depth int) {
	if m == nil {
		return
	}
	m.LRSQueueDepth.Set(float64(depth))
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// HTTPMiddleware instruments requests routed by a gorilla/mux router.
// The path label is the route template, so path parameters do not create new series.
func (m *Metrics) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		path := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if template, err := route.GetPathTemplate(); err == nil {
				path = template
			}
		}
		m.HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(rw.statusCode)).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}
