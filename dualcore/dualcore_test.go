package dualcore

import (
	"sync"
	"testing"
	"time"

	"padcore/ioiface"
)

type fakeOutput struct {
	ioiface.Output
	core1 func()
}

func (f *fakeOutput) Core1Task() func() { return f.core1 }

func TestSelectTaskNoneRegistered(t *testing.T) {
	task, err := SelectTask([]ioiface.Output{&fakeOutput{}, &fakeOutput{}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task != nil {
		t.Fatal("expected no task when no output registers one")
	}
}

func TestSelectTaskSingleRegistered(t *testing.T) {
	marker := func() {}
	outputs := []ioiface.Output{&fakeOutput{}, &fakeOutput{core1: marker}, &fakeOutput{}}
	task, err := SelectTask(outputs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task == nil {
		t.Fatal("expected the single registered task to be returned")
	}
}

func TestSelectTaskRejectsMultiple(t *testing.T) {
	outputs := []ioiface.Output{
		&fakeOutput{core1: func() {}},
		&fakeOutput{core1: func() {}},
	}
	_, err := SelectTask(outputs)
	if err != ErrMultipleCore1Tasks {
		t.Fatalf("expected ErrMultipleCore1Tasks, got %v", err)
	}
}

// channelSync is a host-test double for the wfe/sev handshake: Waiter
// blocks on a channel receive, Waker sends (idempotently, via close).
type channelSync struct {
	mu   sync.Mutex
	ch   chan struct{}
	once bool
}

func newChannelSync() *channelSync {
	return &channelSync{ch: make(chan struct{})}
}

func (c *channelSync) wait() { <-c.ch }

func (c *channelSync) wake() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.once {
		close(c.ch)
		c.once = true
	}
}

func TestDispatcherRunsAssignedTaskOnlyAfterArm(t *testing.T) {
	sync := newChannelSync()
	ran := make(chan struct{})
	var entered bool

	d := New(func(fn func()) { go fn() }, sync.wait, sync.wake, func() { entered = true })
	d.Launch()
	d.AssignTask(func() { close(ran) })

	select {
	case <-ran:
		t.Fatal("task must not run before Arm")
	case <-time.After(20 * time.Millisecond):
	}

	d.Arm()

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("task did not run after Arm")
	}
	if !entered {
		t.Fatal("expected onEnter hook to run before waiting on the ready flag")
	}
}

func TestDispatcherIdlesRepeatedlyWithNoTask(t *testing.T) {
	var calls int32
	idleSeen := make(chan struct{})
	var mu sync.Mutex
	armed := false

	waiter := func() {
		mu.Lock()
		isArmed := armed
		mu.Unlock()
		calls++
		if isArmed && calls > 3 {
			select {
			case idleSeen <- struct{}{}:
			default:
			}
		}
	}

	d := New(func(fn func()) { go fn() }, waiter, func() {}, nil)
	d.Launch()
	mu.Lock()
	armed = true
	mu.Unlock()
	d.Arm()

	select {
	case <-idleSeen:
	case <-time.After(time.Second):
		t.Fatal("expected the no-task Core 1 wrapper to keep idling, calling Waiter repeatedly")
	}
}
