// Package dualcore implements the Core 1 dispatcher (component C9): Core 1
// is launched early into a wrapper that parks on a ready flag, and Core 0
// assigns it at most one task once all services are initialized and inputs
// and outputs are enumerated. Grounded on this module's dual-core test
// harness (machine.Core1.Start plus an atomic ready flag and the
// wfe/sev wait-for-event handshake), generalized from a counter
// demonstration into the one-real-task dispatch this firmware needs.
package dualcore

import (
	"errors"
	"sync/atomic"

	"padcore/ioiface"
)

// ErrMultipleCore1Tasks is returned by SelectTask when more than one
// registered output wants to run on Core 1. Only one output's timing-
// critical task may claim the second core; the first one enumerated is
// the one bound, and the rest never run.
var ErrMultipleCore1Tasks = errors.New("dualcore: more than one output registered a Core1Task")

// SelectTask scans outputs in enumeration order and returns the single
// non-nil Core1Task found, or nil if none declared one. If more than one
// did, it returns the first one together with ErrMultipleCore1Tasks.
func SelectTask(outputs []ioiface.Output) (func(), error) {
	var task func()
	for _, out := range outputs {
		if out == nil {
			continue
		}
		if t := out.Core1Task(); t != nil {
			if task != nil {
				return task, ErrMultipleCore1Tasks
			}
			task = t
		}
	}
	return task, nil
}

// Launcher starts fn running on Core 1. The real implementation is
// machine.Core1.Start; host builds use a test double.
type Launcher func(fn func())

// Waiter blocks until woken, the wfe half of the handshake. Idle is used
// both while Core 1 waits for its ready flag and, if no task was assigned,
// forever afterward as its low-power idle loop.
type Waiter func()

// Waker is the sev half of the handshake: it unblocks a Waiter.
type Waker func()

// Dispatcher runs the Core 0 side of the pre-start handshake and the Core
// 1 wrapper it launches.
type Dispatcher struct {
	launch Launcher
	wait   Waiter
	wake   Waker

	ready   atomic.Bool
	task    func()
	started atomic.Bool

	// onEnter runs once at the very start of the Core 1 wrapper, before
	// waiting on the ready flag: the hook a board uses to register Core 1
	// as a flash-lockout participant. Left nil on host builds.
	onEnter func()
}

// New builds a Dispatcher. launch, wait, and wake must all be non-nil in a
// real build; host tests supply in-process doubles.
func New(launch Launcher, wait Waiter, wake Waker, onEnter func()) *Dispatcher {
	return &Dispatcher{launch: launch, wait: wait, wake: wake, onEnter: onEnter}
}

// Launch starts Core 1 running the wrapper. Call once, before AssignTask
// and Arm, so Core 1 is already parked on the ready flag by the time Core 0
// finishes init.
func (d *Dispatcher) Launch() {
	if d.started.Swap(true) {
		return
	}
	d.launch(d.core1Wrapper)
}

// AssignTask records the task Core 1 will run once armed. Call at most
// once, after Launch and before Arm.
func (d *Dispatcher) AssignTask(task func()) {
	d.task = task
}

// Arm sets the ready flag and wakes Core 1. Call once Core 0 has finished
// initializing services and enumerating inputs/outputs; only after Arm
// returns may Core 0 enter its main loop.
func (d *Dispatcher) Arm() {
	d.ready.Store(true)
	d.wake()
}

// core1Wrapper is what runs on Core 1: register for flash-lockout
// participation, wait for Core 0 to arm the dispatcher, then either run
// the assigned task (which owns its own forever-loop) or idle.
func (d *Dispatcher) core1Wrapper() {
	if d.onEnter != nil {
		d.onEnter()
	}
	for !d.ready.Load() {
		d.wait()
	}
	if d.task != nil {
		d.task()
		return
	}
	for {
		d.wait()
	}
}
