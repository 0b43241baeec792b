package infrastructure

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// EnsureRunID returns ctx with a UUID v4 run ID unless it already has one.
func EnsureRunID(ctx context.Context) context.Context {
	if GetRunID(ctx) == "" {
		return WithRunID(ctx, uuid.NewString())
	}
	return ctx
}

// WithComponent creates a logger with a component field
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	return logger.With("component", component)
}
