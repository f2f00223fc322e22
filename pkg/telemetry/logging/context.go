package logging

import (
	"context"
	"log/slog"
)

// Context keys for common log fields.
type contextKey string

const (
	// RequestIDKey is the context key for request IDs.
	RequestIDKey contextKey = "request_id"

	// TemplateKey is the context key for the template being generated.
	TemplateKey contextKey = "template"
)

// WithRequestID adds a request ID to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID retrieves the request ID from the context.
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// WithTemplate adds a template name to the context.
func WithTemplate(ctx context.Context, template string) context.Context {
	return context.WithValue(ctx, TemplateKey, template)
}

// GetTemplate retrieves the template name from the context.
func GetTemplate(ctx context.Context) string {
	if template, ok := ctx.Value(TemplateKey).(string); ok {
		return template
	}
	return ""
}

// FromContext returns logger with the context's request fields attached.
func FromContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	args := extractContextFields(ctx)
	if len(args) == 0 {
		return logger
	}
	return logger.With(args...)
}

// extractContextFields extracts the known log fields from ctx as key/value pairs.
func extractContextFields(ctx context.Context) []any {
	var fields []any
	if requestID := GetRequestID(ctx); requestID != "" {
		fields = append(fields, "request_id", requestID)
	}
	if template := GetTemplate(ctx); template != "" {
		fields = append(fields, "template", template)
	}
	return fields
}
