// Package health provides liveness and readiness endpoints for slotgen serve.
//
//   - /health answers 200 while the process is up.
//   - /ready runs every registered component check and answers 503 when any fails.
//   - /version reports build information.
//
// Usage:
//
//	checker := health.New(2 * time.Second)
//	checker.Register("engine", holder.Check)
//	checker.Register("corpus", store.Ping)
//	health.Register(mux, checker, version, commit, buildTime)
package health
