// Package logging defines the structured-logging interface shared by the
// identity store, its wiring and the admin CLI.
package logging

import "context"

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key-value pairs, e.g.:
//
//	log.Info(ctx, "migrations applied", "version", v)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs lifecycle events.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs unusual but non-fatal conditions, such as a rejected role
	// assignment.
	Warn(ctx context.Context, msg string, args ...any)

	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key-value pairs.
	With(args ...any) Logger
}
