// Package metrics provides Prometheus metrics for slotgen.
//
// # Overview
//
// A Collector registers its metrics on a private registry and exposes them
// through Handler. It implements generator.Observer, so wiring it into an
// engine is a single option:
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	engine, err := generator.New(path, generator.WithObserver(collector))
//	mux.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
//
// # Metrics
//
//   - generations_total{template,status}: status is "success" or the grammar error type
//   - generation_duration_seconds{template}
//   - draws_total{slot,kind}: kind is "reusable" or "single_use"
//   - refills_total{slot}
//   - reloads_total{trigger,result} and last_reload_success_timestamp_seconds
//   - http_requests_total{route,code} and http_request_duration_seconds{route}
//
// All names carry the configured namespace and subsystem prefix
// (slotgen_engine_ by default). When telemetry.metrics.enabled is false
// every Record and Observe call is a no-op.
//
// # Cardinality
//
// Template names reach the collector from HTTP callers, including names
// that do not exist. Undefined names are recorded under the "unknown" label.
// After 1000 distinct defined templates further names are recorded under the
// "other" label.
package metrics
