// Package live models the host application side of the bridge: the
// single-threaded object model (Song) and the cooperative scheduler that
// owns all mutations of it.
//
// The real host runs its control logic on exactly one thread — the
// "tick". Worker goroutines may read the model freely (read accessors are
// goroutine-safe) but every mutation must be marshalled onto the scheduler
// via the bridge package.
package live

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
)

// Scheduler is the capability the bridge needs from the host: queue a task
// for the next tick, and tell whether the caller is already running on the
// scheduler goroutine. RunAsync must be safe to call from the scheduler
// goroutine itself without deadlocking (the bridge runs inline in that
// case, so a conforming implementation only has to accept the enqueue).
type Scheduler interface {
	// RunAsync queues task to run at the next tick.
	RunAsync(task func())

	// IsSchedulerThread reports whether the calling goroutine is the
	// scheduler goroutine.
	IsSchedulerThread() bool
}

// Looper is the reference Scheduler: a single goroutine draining a task
// queue in FIFO order. One Looper tick is the simulator's equivalent of
// the host's scheduler tick.
type Looper struct {
	tasks     chan func()
	done      chan struct{}
	gid       atomic.Uint64
	closeOnce sync.Once
}

// NewLooper starts the scheduler goroutine and returns the Looper.
func NewLooper() *Looper {
	l := &Looper{
		tasks: make(chan func(), 64),
		done:  make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *Looper) run() {
	l.gid.Store(goroutineID())
	defer close(l.done)
	for task := range l.tasks {
		task()
	}
}

// RunAsync queues a task for the next tick. Blocks only if the queue is
// full, never deadlocks when called from a running task: the queue has
// slack and the loop keeps draining.
func (l *Looper) RunAsync(task func()) {
	l.tasks <- task
}

// IsSchedulerThread reports whether the caller is the loop goroutine.
func (l *Looper) IsSchedulerThread() bool {
	return goroutineID() == l.gid.Load()
}

// Close stops the loop after draining already-queued tasks and waits for
// the goroutine to exit. RunAsync must not be called after Close.
func (l *Looper) Close() {
	l.closeOnce.Do(func() {
		close(l.tasks)
	})
	<-l.done
}

// goroutineID extracts the numeric id from the first line of the calling
// goroutine's stack ("goroutine 18 [running]:"). There is no public API
// for this; the textual form is stable across Go releases.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	fields := bytes.Fields(buf[:n])
	if len(fields) < 2 {
		return 0
	}
	id, err := strconv.ParseUint(string(fields[1]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
