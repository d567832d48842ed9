// Package proximity is an example input backend (C4) for a
// time-of-flight distance sensor, populating input_event.pressure as a
// hover pad: the closer an object is to the sensor, the higher the
// reported pressure byte. Grounded on the VL53L1X wiring shown for this
// firmware's I2C driver registry, trimmed to a single per-tick
// measurement plus a change check instead of a full read-command round
// trip.
package proximity

import (
	"padcore/ioiface"
	"padcore/router"
)

// Sensor returns one raw distance sample in millimeters. ok is false if
// no fresh sample is available yet.
type Sensor func() (distanceMM uint16, ok bool)

// DefaultNearMM and DefaultFarMM bound the range scaled into a 0..255
// pressure byte: at or below NearMM reports full pressure (255), at or
// beyond FarMM reports no pressure (0).
const (
	DefaultNearMM = 40
	DefaultFarMM  = 300
)

// Input polls a distance sensor and publishes pressure-bearing
// input_events for one player's single pad channel.
type Input struct {
	name   string
	player uint8
	pad    int
	target ioiface.TargetID
	pub    *router.Router

	read    Sensor
	buttons func() uint32
	nearMM  uint16
	farMM   uint16

	last ioiface.InputEvent
	sent bool
}

// New returns a proximity Input publishing to target via pub, reporting
// into pressure channel pad (0..11, see ioiface.InputEvent.Pressure).
func New(name string, player uint8, pad int, target ioiface.TargetID, pub *router.Router) *Input {
	return &Input{name: name, player: player, pad: pad, target: target, pub: pub, nearMM: DefaultNearMM, farMM: DefaultFarMM}
}

// SetSensor installs the distance read function.
func (in *Input) SetSensor(fn Sensor) {
	in.read = fn
}

// SetButtons installs an optional digital-button source merged into the
// same event stream.
func (in *Input) SetButtons(fn func() uint32) {
	in.buttons = fn
}

// SetRange overrides DefaultNearMM/DefaultFarMM.
func (in *Input) SetRange(nearMM, farMM uint16) {
	in.nearMM = nearMM
	in.farMM = farMM
}

func (in *Input) Name() string { return in.name }

func (in *Input) Init() error { return nil }

// scale maps a raw distance onto a 0..255 pressure byte, clamped and
// inverted so closer objects read as higher pressure.
func (in *Input) scale(distanceMM uint16) uint8 {
	if distanceMM <= in.nearMM {
		return 255
	}
	if distanceMM >= in.farMM {
		return 0
	}
	span := in.farMM - in.nearMM
	frac := uint32(in.farMM-distanceMM) * 255 / uint32(span)
	return uint8(frac)
}

// Task polls the sensor and publishes when the pad's pressure, or the
// optional digital buttons, changed since the last publish.
func (in *Input) Task() {
	if in.read == nil || in.pad < 0 || in.pad >= len(in.last.Pressure) {
		return
	}
	distanceMM, ok := in.read()
	if !ok {
		return
	}

	event := in.last
	event.PlayerIndex = in.player
	event.HasPress = true
	if in.buttons != nil {
		event.Buttons = in.buttons()
	}
	event.Pressure[in.pad] = in.scale(distanceMM)

	if in.sent && event == in.last {
		return
	}
	if err := in.pub.Publish(in.target, in.player, event); err != nil {
		return
	}
	in.last = event
	in.sent = true
}
