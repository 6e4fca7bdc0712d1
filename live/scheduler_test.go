package live

import (
	"testing"
	"time"
)

func TestLooperRunsTasksInOrder(t *testing.T) {
	l := NewLooper()
	defer l.Close()

	var got []int
	done := make(chan struct{})
	for i := 0; i < 5; i++ {
		i := i
		l.RunAsync(func() { got = append(got, i) })
	}
	l.RunAsync(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("tasks did not run")
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("task order broken: got %v", got)
		}
	}
}

func TestLooperIsSchedulerThread(t *testing.T) {
	l := NewLooper()
	defer l.Close()

	if l.IsSchedulerThread() {
		t.Error("test goroutine must not be the scheduler thread")
	}

	result := make(chan bool, 1)
	l.RunAsync(func() { result <- l.IsSchedulerThread() })

	select {
	case onLoop := <-result:
		if !onLoop {
			t.Error("IsSchedulerThread false inside a scheduled task")
		}
	case <-time.After(time.Second):
		t.Fatal("task did not run")
	}
}

func TestLooperCloseDrainsQueue(t *testing.T) {
	l := NewLooper()

	ran := 0
	for i := 0; i < 10; i++ {
		l.RunAsync(func() { ran++ })
	}
	l.Close()

	if ran != 10 {
		t.Errorf("Close dropped queued tasks: ran %d of 10", ran)
	}
}
