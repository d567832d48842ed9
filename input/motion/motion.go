// Package motion is an example input backend (C4) for an I2C-attached
// accelerometer, populating input_event.accel. Grounded on the ADXL345
// wiring shown for this firmware's I2C driver registry: a three-axis raw
// reader polled once per task tick, oversampling and range checks left
// out since there is no equivalent shutdown concern here, just a noise
// threshold before a new event is worth publishing.
package motion

import (
	"padcore/ioiface"
	"padcore/router"
)

// Reader returns one raw three-axis acceleration sample. ok is false if
// the sensor has no fresh sample yet.
type Reader func() (x, y, z int16, ok bool)

// abs16 avoids importing math for a single int16 absolute value.
func abs16(v int16) int16 {
	if v < 0 {
		return -v
	}
	return v
}

// Input polls an accelerometer and publishes accel-bearing input_events
// for one player.
type Input struct {
	name   string
	player uint8
	target ioiface.TargetID
	pub    *router.Router

	read      Reader
	buttons   func() uint32
	threshold int16

	last  ioiface.InputEvent
	armed bool
}

// DefaultThreshold is the minimum per-axis raw delta before a new sample
// is considered a change worth publishing; it suppresses idle sensor
// noise from flooding the router every tick.
const DefaultThreshold = 24

// New returns a motion Input publishing to target via pub, with
// DefaultThreshold noise rejection.
func New(name string, player uint8, target ioiface.TargetID, pub *router.Router) *Input {
	return &Input{name: name, player: player, target: target, pub: pub, threshold: DefaultThreshold}
}

// SetReader installs the sensor read function.
func (in *Input) SetReader(fn Reader) {
	in.read = fn
}

// SetButtons installs an optional digital-button source merged into the
// same event stream (a motion controller is rarely accel-only).
func (in *Input) SetButtons(fn func() uint32) {
	in.buttons = fn
}

// SetThreshold overrides DefaultThreshold.
func (in *Input) SetThreshold(t int16) {
	in.threshold = t
}

func (in *Input) Name() string { return in.name }

func (in *Input) Init() error { return nil }

// Task polls the accelerometer and publishes when any axis moves by more
// than the configured threshold since the last published sample.
func (in *Input) Task() {
	if in.read == nil {
		return
	}
	x, y, z, ok := in.read()
	if !ok {
		return
	}

	event := in.last
	event.PlayerIndex = in.player
	event.HasAccel = true
	if in.buttons != nil {
		event.Buttons = in.buttons()
	}

	moved := !in.armed ||
		abs16(x-in.last.Accel[0]) > in.threshold ||
		abs16(y-in.last.Accel[1]) > in.threshold ||
		abs16(z-in.last.Accel[2]) > in.threshold ||
		event.Buttons != in.last.Buttons

	event.Accel = [3]int16{x, y, z}

	if !moved {
		return
	}
	if err := in.pub.Publish(in.target, in.player, event); err != nil {
		return
	}
	in.last = event
	in.armed = true
}
