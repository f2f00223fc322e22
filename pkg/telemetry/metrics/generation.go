package metrics

import (
	"time"

	"mercator-hq/slotgen/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// GenerationMetrics tracks template generation.
//
// Metrics:
//   - slotgen_engine_generations_total: Generate calls by template and status
//   - slotgen_engine_generation_duration_seconds: Generate latency by template
type GenerationMetrics struct {
	generationsTotal   *prometheus.CounterVec
	generationDuration *prometheus.HistogramVec
}

// NewGenerationMetrics creates and registers generation metrics.
func NewGenerationMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *GenerationMetrics {
	gm := &GenerationMetrics{
		generationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "generations_total",
				Help:      "Total number of template generations",
			},
			[]string{"template", "status"},
		),

		generationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "generation_duration_seconds",
				Help:      "Duration of template generations in seconds",
				// 1µs to ~16ms
				Buckets: prometheus.ExponentialBuckets(0.000001, 4, 8),
			},
			[]string{"template"},
		),
	}

	registry.MustRegister(gm.generationsTotal, gm.generationDuration)

	return gm
}

// RecordGeneration records one generation outcome.
func (gm *GenerationMetrics) RecordGeneration(template, status string, duration time.Duration) {
	gm.generationsTotal.WithLabelValues(template, status).Inc()
	if status == "success" {
		gm.generationDuration.WithLabelValues(template).Observe(duration.Seconds())
	}
}
