package metrics

import (
	"strconv"
	"time"

	"mercator-hq/slotgen/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// ServiceMetrics tracks the long-running surfaces around the engine.
//
// Metrics:
//   - slotgen_engine_reloads_total: Engine rebuilds by trigger and result
//   - slotgen_engine_last_reload_success_timestamp_seconds: Time of the last swap
//   - slotgen_engine_http_requests_total: HTTP requests by route and code
//   - slotgen_engine_http_request_duration_seconds: HTTP handler latency by route
type ServiceMetrics struct {
	reloadsTotal      *prometheus.CounterVec
	lastReloadSuccess prometheus.Gauge
	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
}

// NewServiceMetrics creates and registers service metrics.
func NewServiceMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ServiceMetrics {
	sm := &ServiceMetrics{
		reloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "reloads_total",
				Help:      "Total number of engine rebuilds",
			},
			[]string{"trigger", "result"},
		),

		lastReloadSuccess: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "last_reload_success_timestamp_seconds",
				Help:      "Unix time of the last successful engine rebuild",
			},
		),

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests served",
			},
			[]string{"route", "code"},
		),

		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		),
	}

	registry.MustRegister(
		sm.reloadsTotal,
		sm.lastReloadSuccess,
		sm.httpRequestsTotal,
		sm.httpDuration,
	)

	return sm
}

// RecordReload records one rebuild attempt.
func (sm *ServiceMetrics) RecordReload(trigger string, ok bool) {
	result := "success"
	if !ok {
		result = "failure"
	}
	sm.reloadsTotal.WithLabelValues(trigger, result).Inc()
	if ok {
		sm.lastReloadSuccess.SetToCurrentTime()
	}
}

// RecordHTTPRequest records one served request.
func (sm *ServiceMetrics) RecordHTTPRequest(route string, code int, duration time.Duration) {
	sm.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(code)).Inc()
	sm.httpDuration.WithLabelValues(route).Observe(duration.Seconds())
}
