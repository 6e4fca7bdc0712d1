// Package router maps flat command names to handlers and dispatches each
// command through one of two handling classes:
//
//   - Immediate: read-only queries, executed synchronously on the calling
//     worker goroutine (safe because the model's read accessors are
//     goroutine-safe).
//   - Deferred: mutating operations, an explicit allow-list that is only
//     ever executed through the main-thread bridge, never directly on a
//     worker — however cheap the operation looks.
//
// The table is a plain inspectable data structure built once at startup.
// Unknown names produce a structured error response with a hint of valid
// commands; they never crash a connection.
package router

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"livebridge/bridge"
	"livebridge/middleware"
	"livebridge/protocol"
)

// HandlerFunc executes one command. Handlers own their own parameter
// validation and return descriptive errors for out-of-range input.
type HandlerFunc func(p Params) (any, error)

// Table holds the command registry, split by handling class.
type Table struct {
	immediate map[string]HandlerFunc
	deferred  map[string]HandlerFunc
}

// NewTable returns an empty command table.
func NewTable() *Table {
	return &Table{
		immediate: make(map[string]HandlerFunc),
		deferred:  make(map[string]HandlerFunc),
	}
}

// Immediate registers a read-only handler, run directly on the worker.
func (t *Table) Immediate(name string, h HandlerFunc) {
	t.immediate[name] = h
}

// Deferred registers a mutating handler, only ever run via the bridge.
func (t *Table) Deferred(name string, h HandlerFunc) {
	t.deferred[name] = h
}

// IsDeferred reports whether name is on the mutating allow-list.
func (t *Table) IsDeferred(name string) bool {
	_, ok := t.deferred[name]
	return ok
}

// Names returns every registered command name, sorted.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.immediate)+len(t.deferred))
	for name := range t.immediate {
		names = append(names, name)
	}
	for name := range t.deferred {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// exampleCommands seeds the hint in unknown-command errors.
var exampleCommands = []string{
	"get_session_info", "get_track_info", "set_track_volume",
	"set_track_pan", "create_clip", "fire_scene", "set_tempo",
}

// Router dispatches commands through an optional middleware chain into
// the table, routing deferred commands over the bridge.
type Router struct {
	table  *Table
	bridge *bridge.Bridge

	middlewares []middleware.Middleware
	chain       middleware.HandlerFunc
	buildOnce   sync.Once
}

// New creates a Router over a populated table. The bridge carries every
// deferred command onto the scheduler thread.
func New(table *Table, b *bridge.Bridge) *Router {
	return &Router{table: table, bridge: b}
}

// Use appends a middleware. Middlewares apply in registration order and
// must all be registered before the first Dispatch.
func (r *Router) Use(mw middleware.Middleware) {
	r.middlewares = append(r.middlewares, mw)
}

// Dispatch classifies and executes one command, always returning a
// response — handler errors, unknown names, and timeouts all come back as
// structured error responses, never as transport failures.
func (r *Router) Dispatch(ctx context.Context, cmd *protocol.Command) *protocol.Response {
	r.buildOnce.Do(func() {
		r.chain = middleware.Chain(r.middlewares...)(r.execute)
	})
	return r.chain(ctx, cmd)
}

func (r *Router) execute(_ context.Context, cmd *protocol.Command) *protocol.Response {
	params := Params(cmd.Params)

	if h, ok := r.table.immediate[cmd.Type]; ok {
		result, err := h(params)
		if err != nil {
			return protocol.Error(err.Error())
		}
		return protocol.Success(result)
	}

	if h, ok := r.table.deferred[cmd.Type]; ok {
		return r.bridge.Run(func() (any, error) {
			return h(params)
		})
	}

	return protocol.Error(fmt.Sprintf(
		"Unknown command: %s. Available commands include: %s, etc.",
		cmd.Type, strings.Join(exampleCommands, ", ")))
}
