package logging

import (
	"context"
	"log/slog"
	"time"

	"github.com/secmon-lab/ecocoder/pkg/domain/types"
)

type ctxRequestIDKey struct{}

// CtxRequestID returns request ID from context. If request ID is not set, return new request ID and context with it
func CtxRequestID(ctx context.Context) (types.RequestID, context.Context) {
	if id, ok := ctx.Value(ctxRequestIDKey{}).(types.RequestID); ok {
		return id, ctx
	}

	newID := types.NewRequestID()
	return newID, context.WithValue(ctx, ctxRequestIDKey{}, newID)
}

type ctxLoggerKey struct{}

func With(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxLoggerKey{}, logger)
}

// From returns logger from context, or the default logger.
func From(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxLoggerKey{}).(*slog.Logger); ok {
		return l
	}
	return defaultLogger
}

type ctxClockKey struct{}

// Clock returns the current time. Report timestamps are taken from it so that tests can fix them.
type Clock func() time.Time

func CtxTime(ctx context.Context) time.Time {
	if c, ok := ctx.Value(ctxClockKey{}).(Clock); ok {
		return c()
	}
	return time.Now()
}

func CtxWithClock(ctx context.Context, clock Clock) context.Context {
	return context.WithValue(ctx, ctxClockKey{}, clock)
}

// Detach returns a context that is not canceled with src but carries its logger, request ID and clock.
// Webhook handlers use it to keep analyzing after the response was sent.
func Detach(src context.Context) context.Context {
	dst := context.Background()
	dst = With(dst, From(src))

	if reqID, ok := src.Value(ctxRequestIDKey{}).(types.RequestID); ok {
		dst = context.WithValue(dst, ctxRequestIDKey{}, reqID)
	}
	if c, ok := src.Value(ctxClockKey{}).(Clock); ok {
		dst = context.WithValue(dst, ctxClockKey{}, c)
	}

	return dst
}
