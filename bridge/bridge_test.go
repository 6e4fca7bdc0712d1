package bridge

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"livebridge/live"
	"livebridge/protocol"
)

func TestRunDeliversResult(t *testing.T) {
	l := live.NewLooper()
	defer l.Close()
	b := New(l, time.Second, nil)

	resp := b.Run(func() (any, error) {
		return map[string]any{"track_index": 0}, nil
	})

	if resp.IsError() {
		t.Fatalf("unexpected error: %s", resp.Message)
	}
	result, ok := resp.Result.(map[string]any)
	if !ok || result["track_index"] != 0 {
		t.Errorf("unexpected result: %#v", resp.Result)
	}
}

func TestRunSurfacesTaskError(t *testing.T) {
	l := live.NewLooper()
	defer l.Close()
	b := New(l, time.Second, nil)

	resp := b.Run(func() (any, error) {
		return nil, errors.New("track index 5 out of range (0-2)")
	})

	if !resp.IsError() {
		t.Fatal("expected error response")
	}
	if resp.Message != "track index 5 out of range (0-2)" {
		t.Errorf("message: got %q", resp.Message)
	}
}

// A task that never completes must yield a timeout error within the bound,
// and the abandoned task must still run to completion afterwards without
// blocking the scheduler (fire-and-forget, no cancellation).
func TestRunTimeoutAbandonsResult(t *testing.T) {
	l := live.NewLooper()
	defer l.Close()
	b := New(l, 50*time.Millisecond, nil)

	release := make(chan struct{})
	var completed atomic.Bool

	start := time.Now()
	resp := b.Run(func() (any, error) {
		<-release
		completed.Store(true)
		return "late", nil
	})
	elapsed := time.Since(start)

	if !resp.IsError() {
		t.Fatal("expected timeout error response")
	}
	if resp.Message != "Timeout waiting for operation to complete" {
		t.Errorf("message: got %q", resp.Message)
	}
	if elapsed > time.Second {
		t.Errorf("timeout took %v, want ~50ms", elapsed)
	}
	if completed.Load() {
		t.Error("task completed before it was released")
	}

	// Let the abandoned task finish; the scheduler must stay usable.
	close(release)
	probe := make(chan struct{})
	l.RunAsync(func() { close(probe) })
	select {
	case <-probe:
	case <-time.After(time.Second):
		t.Fatal("scheduler blocked by abandoned task")
	}
	if !completed.Load() {
		t.Error("abandoned task never completed")
	}
}

// A task dispatched from the scheduler goroutine itself must run inline
// rather than deadlocking on its own queue.
func TestRunInlineWhenOnSchedulerThread(t *testing.T) {
	l := live.NewLooper()
	defer l.Close()
	b := New(l, time.Second, nil)

	done := make(chan *protocol.Response, 1)
	l.RunAsync(func() {
		done <- b.Run(func() (any, error) { return "inline", nil })
	})

	select {
	case resp := <-done:
		if resp.IsError() {
			t.Fatalf("unexpected error: %s", resp.Message)
		}
		if resp.Result != "inline" {
			t.Errorf("result: got %v", resp.Result)
		}
	case <-time.After(time.Second):
		t.Fatal("re-entrant Run deadlocked")
	}
}

func TestRunRecoversPanic(t *testing.T) {
	l := live.NewLooper()
	defer l.Close()
	b := New(l, time.Second, nil)

	resp := b.Run(func() (any, error) {
		panic("handler bug")
	})

	if !resp.IsError() {
		t.Fatal("expected error response from panicking task")
	}
}
