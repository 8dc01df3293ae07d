package slogx

import (
	"context"
	"log/slog"
)

type (
	ctxKey    struct{}
	holderKey struct{}
)

// loggerHolder lets HTTPMiddleware see attributes added further down the
// chain when it writes the access log line.
type loggerHolder struct {
	logger *slog.Logger
}

func withHolder(ctx context.Context, h *loggerHolder) context.Context {
	return context.WithValue(ctx, holderKey{}, h)
}

func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

func FromContext(ctx context.Context) *slog.Logger {
	l, ok := ctx.Value(ctxKey{}).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return l
}

// With enriches the request logger stored in ctx, e.g. with the therapist id
// once the bearer token has been verified.
func With(ctx context.Context, args ...any) context.Context {
	l := FromContext(ctx).With(args...)
	if h, ok := ctx.Value(holderKey{}).(*loggerHolder); ok {
		h.logger = l
	}
	return WithContext(ctx, l)
}
