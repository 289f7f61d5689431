// Package metrics exposes prometheus collectors for HTTP traffic and feed refreshes
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so tests and multiple servers never collide
type Metrics struct {
	reg *prometheus.Registry

	httpDuration *prometheus.HistogramVec
	httpInflight prometheus.Gauge

	fetchDuration *prometheus.HistogramVec
	fetchTotal    *prometheus.CounterVec
	fetchInflight *prometheus.GaugeVec
	lastSuccess   *prometheus.GaugeVec
	items         *prometheus.GaugeVec
}

// New builds collectors under namespace (e.g. "oasis") and registers runtime collectors
func New(namespace string) *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route pattern and status",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		httpInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "HTTP requests currently being served",
		}),
		fetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "fetch_duration_seconds",
			Help:      "Upstream feed fetch latency per scheduler",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}, []string{"scheduler"}),
		fetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "fetches_total",
			Help:      "Feed fetches by scheduler, trigger and outcome (ok, error, discarded)",
		}, []string{"scheduler", "trigger", "outcome"}),
		fetchInflight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "fetch_in_flight",
			Help:      "1 while a scheduler is fetching",
		}, []string{"scheduler"}),
		lastSuccess: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last applied successful fetch",
		}, []string{"scheduler"}),
		items: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "items",
			Help:      "Items held by the scheduler after the last successful fetch",
		}, []string{"scheduler"}),
	}
	m.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpDuration, m.httpInflight,
		m.fetchDuration, m.fetchTotal, m.fetchInflight, m.lastSuccess, m.items,
	)
	return m
}

// Registry exposes the underlying registry (tests, extra collectors)
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// Handler serves the registry in the prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// Middleware records latency per chi route pattern, so path params do not explode cardinality
func (m *Metrics) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m.httpInflight.Inc()
			defer m.httpInflight.Dec()

			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(sw, r)

			route := "unmatched"
			if rc := chi.RouteContext(r.Context()); rc != nil {
				if p := rc.RoutePattern(); p != "" {
					route = p
				}
			}
			m.httpDuration.
				WithLabelValues(r.Method, route, strconv.Itoa(sw.status)).
				Observe(time.Since(start).Seconds())
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (s *statusWriter) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// FetchStarted marks scheduler as fetching
func (m *Metrics) FetchStarted(scheduler string) {
	m.fetchInflight.WithLabelValues(scheduler).Set(1)
}

// Outcome labels for FetchFinished
const (
	OutcomeOK        = "ok"
	OutcomeError     = "error"
	OutcomeDiscarded = "discarded"
)

// FetchFinished records one completed fetch
func (m *Metrics) FetchFinished(scheduler, trigger, outcome string, took time.Duration) {
	m.fetchInflight.WithLabelValues(scheduler).Set(0)
	m.fetchDuration.WithLabelValues(scheduler).Observe(took.Seconds())
	m.fetchTotal.WithLabelValues(scheduler, trigger, outcome).Inc()
}

// Applied records a successful fetch that replaced the held result
func (m *Metrics) Applied(scheduler string, at time.Time, items int) {
	m.lastSuccess.WithLabelValues(scheduler).Set(float64(at.Unix()))
	m.items.WithLabelValues(scheduler).Set(float64(items))
}
