//go:build tinygo

package dualcore

import (
	"device/arm"
	"machine"
)

// DefaultLauncher starts fn on the second core using the runtime's
// built-in core-launch primitive.
func DefaultLauncher(fn func()) {
	machine.Core1.Start(fn)
}

// DefaultWaiter blocks until the other core signals, without burning
// power spinning.
func DefaultWaiter() {
	arm.Asm("wfe")
}

// DefaultWaker signals any core parked in DefaultWaiter.
func DefaultWaker() {
	arm.Asm("sev")
}
