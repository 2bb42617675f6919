package api

import "context"

type contextKey string

const requestIDKey contextKey = "codeval_request_id"

// WithRequestID attaches a request ID to the context. The client sends it as
// the X-Request-ID header and the logging decorator records it.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFrom extracts the request ID from the context.
func RequestIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}
