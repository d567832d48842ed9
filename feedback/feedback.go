// Package feedback implements the pull-model feedback plane (component
// C8): each tick it asks the active output for its current rumble/LED
// state and, on change, pushes rumble to every feedback-capable input and
// updates the player LED service. Grounded on this module's bus-driver
// poll pattern, here polling a USB output identity instead of a sensor.
package feedback

import "padcore/ioiface"

// Puller reads the active output's feedback state. ok is false when the
// output does not implement the richer feedback pull at all.
type Puller func() (ioiface.OutputFeedback, bool)

// RumbleFallback is consulted only when Puller is nil or returns ok=false;
// it carries just a scalar rumble level, with no LED information.
type RumbleFallback func() (uint8, bool)

// LEDSink receives the player LED color an output feedback pull reported.
type LEDSink func(player uint8, r, g, b uint8, ok bool)

// Plane is the feedback plane.
type Plane struct {
	pull      Puller
	fallback  RumbleFallback
	receivers []ioiface.FeedbackReceiver
	leds      LEDSink
}

// New builds a Plane. Any of pull, fallback, leds may be nil; a nil pull
// falls back to fallback, a nil fallback/leds just skips that step.
func New(pull Puller, fallback RumbleFallback, leds LEDSink) *Plane {
	if leds == nil {
		leds = func(uint8, uint8, uint8, uint8, bool) {}
	}
	return &Plane{pull: pull, fallback: fallback, leds: leds}
}

// SetReceivers replaces the set of inputs that receive pushed rumble.
func (p *Plane) SetReceivers(receivers []ioiface.FeedbackReceiver) {
	p.receivers = receivers
}

// Task runs one feedback-plane tick.
func (p *Plane) Task() {
	if p.pull != nil {
		if fb, ok := p.pull(); ok {
			if fb.Dirty {
				p.push(fb, true)
			}
			return
		}
	}
	if p.fallback != nil {
		if level, ok := p.fallback(); ok {
			p.push(ioiface.OutputFeedback{RumbleLeft: level, RumbleRight: level, Dirty: true}, false)
		}
	}
}

// push forwards rumble to every receiver and, when hasLED is true (the
// richer feedback struct was actually populated, not just the scalar
// rumble fallback), updates the player LED color too.
func (p *Plane) push(fb ioiface.OutputFeedback, hasLED bool) {
	for _, r := range p.receivers {
		if r != nil {
			r.ApplyFeedback(fb)
		}
	}
	p.leds(fb.LEDPlayer, fb.LEDR, fb.LEDG, fb.LEDB, hasLED)
}
