// Package server provides the HTTP surface of slotgen serve.
//
// # Routes
//
//   - GET  /v1/templates?q=QUERY        template names, fuzzy-filtered by q
//   - GET  /v1/generate/{name}?count=N&split=true
//   - POST /v1/reload                   rebuild the engine from disk
//   - GET  /health, /ready, /version    see package health
//   - GET  /metrics                     Prometheus exposition (path configurable)
//
// An unknown template answers 404 with the message listing every defined
// template. With split=true each output is also returned split on the newline
// marker under "lines".
//
// # Concurrency
//
// All generation goes through a reload.Holder, which serializes access to the
// single engine. Draw state is shared across requests: single-use values drawn
// by one request are unavailable to the next until the slot refills.
//
// # Basic Usage
//
//	srv := server.NewServer(&cfg.Server, holder,
//	    server.WithMetrics(collector, cfg.Telemetry.Metrics.Path),
//	    server.WithHealthChecker(checker),
//	)
//	if err := srv.Start(ctx); err != nil {
//	    return err
//	}
package server
