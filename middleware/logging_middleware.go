package middleware

import (
	"context"
	"time"

	"go.uber.org/zap"

	"livebridge/protocol"
)

// Logging records every dispatched command with its duration and outcome.
func Logging(log *zap.Logger) Middleware {
	if log == nil {
		log = zap.NewNop()
	}
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, cmd *protocol.Command) *protocol.Response {
			start := time.Now()
			resp := next(ctx, cmd)
			fields := []zap.Field{
				zap.String("command", cmd.Type),
				zap.Duration("duration", time.Since(start)),
			}
			if resp.IsError() {
				fields = append(fields, zap.String("error", resp.Message))
				log.Warn("command failed", fields...)
			} else {
				log.Debug("command handled", fields...)
			}
			return resp
		}
	}
}
