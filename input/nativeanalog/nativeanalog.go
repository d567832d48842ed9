// Package nativeanalog is an example input backend (C4) for sticks and
// triggers wired directly to ADC-capable pins, with an optional digital
// button source layered on top. It polls every mapped channel once per
// task tick, scales each raw sample into the 0..255 axis range, and
// publishes a full input_event only when the result differs from the
// last one it sent.
//
// Grounded on the ADC sample/range-check timer loop this firmware's
// driver-registry style polling is built from, trimmed to a single
// per-tick poll instead of a timer-scheduled sampling cycle: there is no
// oversampling or range-check shutdown here, just a scale and a
// change check.
package nativeanalog

import (
	"padcore/ioiface"
	"padcore/router"
)

// Sampler reads one raw ADC value from pin. ready is false while a
// conversion is still in flight; callers retry on the next tick.
type Sampler func(pin uint32) (value uint16, ready bool)

// axisChannel binds one profile_output-shape axis to an ADC pin and its
// raw calibration range.
type axisChannel struct {
	pin     uint32
	sample  Sampler
	rawMin  uint16
	rawMax  uint16
	invert  bool
	lastRaw uint16
	armed   bool
}

func (c *axisChannel) scale(raw uint16) uint8 {
	lo, hi := c.rawMin, c.rawMax
	if raw <= lo {
		raw = lo
	}
	if raw >= hi {
		raw = hi
	}
	span := uint32(hi) - uint32(lo)
	if span == 0 {
		return 0
	}
	v := uint32(raw-lo) * 255 / span
	if c.invert {
		v = 255 - v
	}
	return uint8(v)
}

// Input reads stick/trigger axes from ADC pins, plus an optional
// digital button source, into one player's input_event stream.
type Input struct {
	name   string
	player uint8
	target ioiface.TargetID
	pub    *router.Router

	setup   func(pin uint32) error
	buttons func() uint32

	axes [ioiface.AxisCount]*axisChannel
	last ioiface.InputEvent
	sent bool
}

// New returns a nativeanalog Input publishing to target via pub.
func New(name string, player uint8, target ioiface.TargetID, pub *router.Router) *Input {
	return &Input{name: name, player: player, target: target, pub: pub}
}

// SetPinSetup installs the platform hook that prepares a pin for analog
// sampling (pin-mux, ADC channel select). Optional: some boards require
// no per-pin setup beyond what the sampler itself does.
func (in *Input) SetPinSetup(fn func(pin uint32) error) {
	in.setup = fn
}

// SetButtons installs the optional digital-button source: a function
// returning the current abstract button bitset.
func (in *Input) SetButtons(fn func() uint32) {
	in.buttons = fn
}

// SetAxis maps axis (one of ioiface.AxisLX etc.) to pin, sampled with
// sample and scaled from [rawMin, rawMax] into 0..255.
func (in *Input) SetAxis(axis int, pin uint32, sample Sampler, rawMin, rawMax uint16, invert bool) {
	if axis < 0 || axis >= ioiface.AxisCount {
		return
	}
	in.axes[axis] = &axisChannel{pin: pin, sample: sample, rawMin: rawMin, rawMax: rawMax, invert: invert}
}

func (in *Input) Name() string { return in.name }

// Init runs the platform pin-setup hook, if any, over every mapped axis.
func (in *Input) Init() error {
	if in.setup == nil {
		return nil
	}
	for _, ax := range in.axes {
		if ax == nil {
			continue
		}
		if err := in.setup(ax.pin); err != nil {
			return err
		}
	}
	return nil
}

// Task samples every mapped axis and the digital button source, and
// publishes when the assembled event differs from the last one sent.
func (in *Input) Task() {
	event := in.last
	event.PlayerIndex = in.player
	if in.buttons != nil {
		event.Buttons = in.buttons()
	}

	for i, ax := range in.axes {
		if ax == nil || ax.sample == nil {
			continue
		}
		raw, ready := ax.sample(ax.pin)
		if !ready {
			continue
		}
		ax.lastRaw = raw
		ax.armed = true
		event.Analog[i] = ax.scale(raw)
	}

	if in.sent && event == in.last {
		return
	}

	if err := in.pub.Publish(in.target, in.player, event); err != nil {
		return
	}
	in.last = event
	in.sent = true
}
