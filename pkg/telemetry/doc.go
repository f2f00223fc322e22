// Package telemetry groups slotgen's observability packages.
//
//   - logging: slog logger construction and request context fields
//   - metrics: Prometheus collector, also a generator.Observer
//   - health: liveness and readiness endpoints for slotgen serve
package telemetry
