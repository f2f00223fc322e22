// Package middleware provides the HTTP middleware chain for slotgen serve:
// request IDs, request logging, panic recovery, and the shared JSON error body.
//
// The server applies them outermost first:
//
//	handler = middleware.Recovery(logger)(
//	    middleware.RequestID(
//	        middleware.Logging(logger)(mux)))
package middleware
