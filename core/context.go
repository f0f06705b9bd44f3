package core

import (
	"context"

	"go.uber.org/zap"
)

// Context keys for command options
type contextKey string

const loggerKey contextKey = "logger"

// WithLogger attaches a logger for the executors to the context
func WithLogger(ctx context.Context, log *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, log)
}

// loggerFrom returns the context logger, or a no-op logger when none is set
func loggerFrom(ctx context.Context) *zap.Logger {
	if log, ok := ctx.Value(loggerKey).(*zap.Logger); ok && log != nil {
		return log
	}
	return zap.NewNop()
}
