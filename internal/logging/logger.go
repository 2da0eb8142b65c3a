// Package logging defines the context-aware structured logger the directory
// client writes through, and its log/slog implementation.
package logging

import "context"

// Logger takes variadic key-value pairs after the message:
//
//	log.Error(ctx, "load favorites failed", "err", err)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given pairs.
	With(args ...any) Logger
}
