// Package requestcontext carries per-request metadata (request id, clock)
// through context.Context so handlers, services, and stores stay decoupled
// from the HTTP layer.
package requestcontext

import (
	"context"
	"time"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	clockKey     contextKey = "clock"
)

// Clock returns the current time. Injected in tests for deterministic timestamps.
type Clock func() time.Time

// WithRequestID returns a context carrying the given request id.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestID extracts the request id from the context, or "" when absent.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// WithClock returns a context carrying an injected clock.
func WithClock(ctx context.Context, clock Clock) context.Context {
	return context.WithValue(ctx, clockKey, clock)
}

// Now returns the injected clock's time if one is present, otherwise the
// wall clock. Always UTC.
func Now(ctx context.Context) time.Time {
	if clock, ok := ctx.Value(clockKey).(Clock); ok && clock != nil {
		return clock().UTC()
	}
	return time.Now().UTC()
}
