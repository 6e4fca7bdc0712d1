// Package middleware provides the dispatch middleware chain: cross-cutting
// concerns (logging, panic containment, rate limiting) wrapped around the
// router's command execution in onion order.
package middleware

import (
	"context"

	"livebridge/protocol"
)

// HandlerFunc is the dispatch signature middlewares wrap: one command in,
// exactly one response out.
type HandlerFunc func(ctx context.Context, cmd *protocol.Command) *protocol.Response

// Middleware wraps a HandlerFunc with additional behavior.
type Middleware func(next HandlerFunc) HandlerFunc

// Chain composes middlewares into one. Chain(A, B, C)(handler) produces
// A(B(C(handler))): A sees the command first and the response last.
func Chain(middlewares ...Middleware) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		for i := len(middlewares) - 1; i >= 0; i-- {
			next = middlewares[i](next)
		}
		return next
	}
}
