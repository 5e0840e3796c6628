// Package logging is the structured logger used across docsauth: zap for
// the issuer, slog for the session CLI. Both accept alternating key/value
// pairs and pick up the request id stored with WithRequestID.
package logging

import "context"

// Logger is a leveled key/value logger. ctx may carry a request id.
//
//	log.Info(ctx, "token issued", "expires_in", 604800)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that adds args to every entry.
	With(args ...any) Logger
}
