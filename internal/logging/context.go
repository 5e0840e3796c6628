package logging

import "context"

type contextKey string

const requestIDKey contextKey = "request_id"

// WithRequestID stores the id of the request being served in ctx. Loggers
// add it to every entry logged with that context. An empty id is ignored.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the id stored by WithRequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
