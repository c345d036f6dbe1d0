// Package types holds the shared primitives of the orderline service: the
// application error taxonomy, the redacted secret string type, and
// request-scoped context helpers.
package types

import "context"

type contextKey string

const requestIDKey contextKey = "request_id"

// WithRequestID stores the request correlation ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// GetRequestID retrieves the request correlation ID from the context.
// Returns the empty string if none has been set.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
