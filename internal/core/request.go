package core

import "context"

type requestIDKey struct{}

// WithRequestID attaches the gateway's correlation id to ctx so downstream
// backend calls can tag their requests with it.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestIDFrom returns the correlation id attached to ctx, or "" when the
// call did not pass through the gateway.
func RequestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}
