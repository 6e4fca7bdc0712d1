package middleware

import (
	"context"
	"fmt"
	"runtime/debug"

	"go.uber.org/zap"

	"livebridge/protocol"
)

// Recovery converts a handler panic into a structured error response.
// The stack trace goes to the local log only — never over the wire.
func Recovery(log *zap.Logger) Middleware {
	if log == nil {
		log = zap.NewNop()
	}
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, cmd *protocol.Command) (resp *protocol.Response) {
			defer func() {
				if r := recover(); r != nil {
					log.Error("panic in command handler",
						zap.String("command", cmd.Type),
						zap.Any("panic", r),
						zap.ByteString("stack", debug.Stack()))
					resp = protocol.Error(fmt.Sprintf("internal error handling %s", cmd.Type))
				}
			}()
			return next(ctx, cmd)
		}
	}
}
