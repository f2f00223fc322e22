package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"mercator-hq/slotgen/pkg/telemetry/logging"
)

// RequestIDHeader is the HTTP header for request ID.
const RequestIDHeader = "X-Request-ID"

// RequestID puts a request ID on the context and the response headers.
// A client supplied X-Request-ID is reused; otherwise a UUID is generated.
//
// Handlers read it with logging.GetRequestID(r.Context()).
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx := logging.WithRequestID(r.Context(), requestID)
		w.Header().Set(RequestIDHeader, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
