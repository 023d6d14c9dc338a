// Package requestctx carries the request id assigned at the HTTP edge so
// middleware, handlers, and domain logs can correlate one evaluation
// request end to end.
package requestctx

import "context"

type ctxKey struct{}

// WithRequestID stores the id for the lifetime of the request context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, requestID)
}

// GetRequestID returns the stored id, or "" for contexts that never passed
// through the edge middleware (background jobs, tests).
func GetRequestID(ctx context.Context) string {
	if value, ok := ctx.Value(ctxKey{}).(string); ok {
		return value
	}
	return ""
}
