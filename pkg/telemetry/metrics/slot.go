package metrics

import (
	"mercator-hq/slotgen/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// SlotMetrics tracks value selection.
//
// Metrics:
//   - slotgen_engine_draws_total: Values drawn by slot and kind ("reusable", "single_use")
//   - slotgen_engine_refills_total: Pool refills by slot
type SlotMetrics struct {
	drawsTotal   *prometheus.CounterVec
	refillsTotal *prometheus.CounterVec
}

// NewSlotMetrics creates and registers slot metrics.
func NewSlotMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *SlotMetrics {
	sm := &SlotMetrics{
		drawsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "draws_total",
				Help:      "Total number of values drawn from slots",
			},
			[]string{"slot", "kind"},
		),

		refillsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "refills_total",
				Help:      "Total number of slot refills after single-use values ran out",
			},
			[]string{"slot"},
		),
	}

	registry.MustRegister(sm.drawsTotal, sm.refillsTotal)

	return sm
}

// RecordDraw records one draw.
func (sm *SlotMetrics) RecordDraw(slot string, singleUse bool) {
	kind := "reusable"
	if singleUse {
		kind = "single_use"
	}
	sm.drawsTotal.WithLabelValues(slot, kind).Inc()
}

// RecordRefill records one refill.
func (sm *SlotMetrics) RecordRefill(slot string) {
	sm.refillsTotal.WithLabelValues(slot).Inc()
}
