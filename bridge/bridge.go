// Package bridge marshals state-mutating work onto the host's scheduler
// goroutine and funnels the result back to the calling worker.
//
// Commands arrive concurrently on per-connection workers, but the host
// object model may only be mutated from its single scheduler tick. The
// bridge packages the mutation as a task, queues it for the next tick,
// and blocks the worker on a single-slot result channel with a bounded
// wait:
//
//	worker ──Run(task)──→ scheduler queue ──tick──→ task() → result chan
//	   └────────────── blocks (≤ timeout) ←──────────────────────┘
//
// Each worker has at most one task in flight at a time because it does
// not read its next command until the current response is produced.
package bridge

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"livebridge/live"
	"livebridge/protocol"
)

// DefaultTimeout bounds the wait for a scheduled task's result.
const DefaultTimeout = 10 * time.Second

// Task performs the actual mutation against the host model and returns a
// result value or an error. It always runs on the scheduler goroutine.
type Task func() (any, error)

// Bridge routes tasks onto a Scheduler and waits for their results.
type Bridge struct {
	sched   live.Scheduler
	timeout time.Duration
	log     *zap.Logger
}

// New creates a Bridge over the given scheduler. timeout <= 0 selects
// DefaultTimeout.
func New(sched live.Scheduler, timeout time.Duration, logger *zap.Logger) *Bridge {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bridge{sched: sched, timeout: timeout, log: logger}
}

// Run executes task on the scheduler goroutine and returns its outcome as
// a Response.
//
// Re-entrancy: if the caller is already the scheduler goroutine, the task
// runs inline immediately — queuing and waiting would deadlock the tick.
//
// Timeout: if the result does not arrive within the bound, a timeout
// error Response is returned and the task's eventual result is discarded.
// The task is NOT cancelled; the mutation may still land after the worker
// has given up. This is deliberate: the host offers no way to revoke a
// queued tick callback, and the result channel's single buffered slot
// lets the abandoned task complete without blocking the scheduler.
func (b *Bridge) Run(task Task) *protocol.Response {
	if b.sched.IsSchedulerThread() {
		return run(task)
	}

	resultCh := make(chan *protocol.Response, 1)
	b.sched.RunAsync(func() {
		resultCh <- run(task)
	})

	select {
	case resp := <-resultCh:
		return resp
	case <-time.After(b.timeout):
		b.log.Warn("deferred task timed out; result will be discarded",
			zap.Duration("timeout", b.timeout))
		return protocol.Error("Timeout waiting for operation to complete")
	}
}

// run invokes the task and converts panics into error responses so a
// misbehaving handler cannot take down the scheduler goroutine.
func run(task Task) (resp *protocol.Response) {
	defer func() {
		if r := recover(); r != nil {
			resp = protocol.Error(fmt.Sprintf("internal error: %v", r))
		}
	}()

	result, err := task()
	if err != nil {
		return protocol.Error(err.Error())
	}
	return protocol.Success(result)
}
