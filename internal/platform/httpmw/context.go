package httpmw

import "context"

// Context keys threaded through the request context by handlers/services.
type contextKey string

const (
	// RequestIDKey is the context key for the inbound request's trace id.
	RequestIDKey contextKey = "request_id"
)

// WithRequestID returns a new context carrying the given request id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// GetRequestID extracts the request id from the context.
func GetRequestID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(RequestIDKey).(string)
	return v, ok
}
