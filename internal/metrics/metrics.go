// Package metrics exposes Prometheus instruments for the HTTP surface and the
// scoring workflow. A nil *Recorder is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "scorekeeper"

// Recorder owns a private registry so tests can construct as many as they
// like without colliding on the default one.
type Recorder struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	scoreUpdates *prometheus.CounterVec
	transitions  *prometheus.CounterVec
	warnings     *prometheus.CounterVec
	storageUp    prometheus.Gauge
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		scoreUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "score_updates_total",
			Help:      "Live-score upserts by outcome.",
		}, []string{"outcome"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fixture_transitions_total",
			Help:      "Committed fixture lifecycle transitions.",
		}, []string{"from", "to"}),
		warnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "secondary_write_warnings_total",
			Help:      "Non-fatal secondary mutation failures by operation.",
		}, []string{"op"}),
		storageUp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "storage_up",
			Help:      "1 when the last storage probe succeeded.",
		}),
	}
	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.httpRequests, r.httpDuration, r.scoreUpdates, r.transitions, r.warnings, r.storageUp,
	)
	return r
}

// RecordHTTPRequest tracks basic HTTP metrics. route should be the matched
// pattern, not the raw path.
func (r *Recorder) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordScoreUpdate counts an upsert attempt. outcome is "ok" or an error
// kind name.
func (r *Recorder) RecordScoreUpdate(outcome string) {
	if r == nil {
		return
	}
	r.scoreUpdates.WithLabelValues(outcome).Inc()
}

// RecordTransition counts a committed lifecycle step.
func (r *Recorder) RecordTransition(from, to string) {
	if r == nil {
		return
	}
	r.transitions.WithLabelValues(from, to).Inc()
}

// RecordWarning counts a secondary write that failed without failing the
// request.
func (r *Recorder) RecordWarning(op string) {
	if r == nil {
		return
	}
	r.warnings.WithLabelValues(op).Inc()
}

// SetStorageUp records the outcome of a storage probe.
func (r *Recorder) SetStorageUp(up bool) {
	if r == nil {
		return
	}
	if up {
		r.storageUp.Set(1)
		return
	}
	r.storageUp.Set(0)
}

// StorageUpGauge exposes the probe gauge for tests.
func (r *Recorder) StorageUpGauge() prometheus.Gauge {
	return r.storageUp
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
