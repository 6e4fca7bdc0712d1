package middleware

import (
	"context"

	"golang.org/x/time/rate"

	"livebridge/protocol"
)

// RateLimit rejects commands beyond r per second (token bucket with the
// given burst). The limiter is shared across all connections, bounding
// the total command pressure on the host.
func RateLimit(r float64, burst int) Middleware {
	limiter := rate.NewLimiter(rate.Limit(r), burst)
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, cmd *protocol.Command) *protocol.Response {
			if !limiter.Allow() {
				return protocol.Error("rate limit exceeded")
			}
			return next(ctx, cmd)
		}
	}
}
