package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics records request counts and latency per route/status.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewHTTPMetrics registers the HTTP metrics on the provided registerer.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Count of handled HTTP requests.",
	}, []string{"method", "route", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of handled HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	reg.MustRegister(requests, duration)
	return &HTTPMetrics{requests: requests, duration: duration}
}

// Observe records one handled request.
func (m *HTTPMetrics) Observe(method, route, status string, elapsed time.Duration) {
	if m == nil || m.requests == nil {
		return
	}
	m.requests.WithLabelValues(method, normalizeLabel(route), status).Inc()
	m.duration.WithLabelValues(method, normalizeLabel(route)).Observe(elapsed.Seconds())
}

// LiveViewMetrics tracks the mirror-driven recompute pipeline.
type LiveViewMetrics struct {
	rebuilds        *prometheus.CounterVec
	rebuildDuration prometheus.Histogram
	trackedRequests prometheus.Gauge
}

// NewLiveViewMetrics registers the live-view metrics on the provided registerer.
func NewLiveViewMetrics(reg prometheus.Registerer) *LiveViewMetrics {
	if reg == nil {
		return &LiveViewMetrics{}
	}
	rebuilds := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "liveview_rebuilds_total",
		Help: "Full view recomputations, labeled by the collection that triggered them.",
	}, []string{"trigger"})
	rebuildDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "liveview_rebuild_duration_seconds",
		Help:    "Duration of one full index rebuild plus aggregation pass.",
		Buckets: prometheus.DefBuckets,
	})
	trackedRequests := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "liveview_tracked_requests",
		Help: "Requests in the current mirrored snapshot.",
	})
	reg.MustRegister(rebuilds, rebuildDuration, trackedRequests)
	return &LiveViewMetrics{
		rebuilds:        rebuilds,
		rebuildDuration: rebuildDuration,
		trackedRequests: trackedRequests,
	}
}

// ObserveRebuild records one recompute triggered by the named collection.
func (m *LiveViewMetrics) ObserveRebuild(trigger string, elapsed time.Duration, trackedRequests int) {
	if m == nil || m.rebuilds == nil {
		return
	}
	m.rebuilds.WithLabelValues(normalizeLabel(trigger)).Inc()
	m.rebuildDuration.Observe(elapsed.Seconds())
	m.trackedRequests.Set(float64(trackedRequests))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
