// Package logging defines the structured, context-aware logger used across
// caltrack and its log/slog implementation.
package logging

import "context"

// Logger is a context-aware, structured logger. The variadic args are
// key-value pairs:
//
//	log.Info(ctx, "entry added", "id", id, "kcal", kcal)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	// Warn is for recoverable problems such as entries that degrade to 0 kcal.
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
	// With returns a child logger that always includes the given pairs.
	With(args ...any) Logger
}
