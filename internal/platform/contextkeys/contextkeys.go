// Package contextkeys holds request-scoped values shared between middleware and handlers.
package contextkeys

import "context"

type requestIDKey struct{}

type localeKey struct{}

// WithRequestID adds a request ID to the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns the request ID and a boolean indicating whether it was found.
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok
}

// WithLocale stores the locale resolved for the current request.
func WithLocale(ctx context.Context, code string) context.Context {
	return context.WithValue(ctx, localeKey{}, code)
}

// GetLocale returns the locale resolved for the current request, if any.
func GetLocale(ctx context.Context) (string, bool) {
	code, ok := ctx.Value(localeKey{}).(string)
	return code, ok && code != ""
}
