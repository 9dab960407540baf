package middleware

import "context"

// Request-context keys. Handlers read these through gin, but the app layer
// only sees context.Context.
type (
	requestIDKey     struct{}
	correlationIDKey struct{}
	claimsKey        struct{}
)

// valueFrom returns the value stored under key, or the zero value when ctx
// is nil or carries none.
func valueFrom[T any](ctx context.Context, key any) T {
	var zero T
	if ctx == nil {
		return zero
	}

	if v, ok := ctx.Value(key).(T); ok {
		return v
	}

	return zero
}

// RequestIDFromContext returns the request ID, or "" when unset.
func RequestIDFromContext(ctx context.Context) string {
	return valueFrom[string](ctx, requestIDKey{})
}

// CorrelationIDFromContext returns the correlation ID, or "" when unset.
func CorrelationIDFromContext(ctx context.Context) string {
	return valueFrom[string](ctx, correlationIDKey{})
}

// ClaimsFromContext returns the authenticated caller, or nil for requests
// that never passed the auth gate.
func ClaimsFromContext(ctx context.Context) *Claims {
	return valueFrom[*Claims](ctx, claimsKey{})
}

func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// ContextWithClaims stores the authenticated caller.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}
