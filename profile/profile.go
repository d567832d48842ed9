// Package profile implements the profile engine: button remapping,
// stick/trigger calibration, deadzone/sensitivity, combo detection, and
// hotkey profile switching, applied to every event before a wire report is
// built. The combo detector reuses the timer/duration-flag state-machine
// style used elsewhere in this module for PWM phase tracking, applied here
// to button-combo dwell timers instead.
package profile

import (
	"math/bits"

	"padcore/ioiface"
)

// Flags is a bitset of custom-profile modifiers.
type Flags uint8

const (
	FlagSwapSticks Flags = 1 << iota
	FlagInvertLY
	FlagInvertRY
)

// RemapTable maps a source abstract button bit to a destination bit. A bit
// with no entry passes through unchanged; an entry mapping to 0 drops it.
type RemapTable map[uint32]uint32

// ComboAction is a tagged union: a combo rule either synthesizes an
// additional button or switches the active custom profile.
type ComboAction struct {
	SynthesizeButton uint32 // non-zero: OR this bit into the output on fire
	SwitchToProfile  int    // >=0: switch active profile to this index on fire
	IsSwitch         bool   // true selects SwitchToProfile over SynthesizeButton
}

// ComboRule is one entry in a profile's ordered combo-rule list.
type ComboRule struct {
	Mask     uint32
	HoldTime uint32 // dwell ticks required before the rule fires
	Action   ComboAction
}

// DefaultComboDwellSeconds is the default dwell time for profile-switch
// combos, in seconds. ComboRule.HoldTime is in ticks, so the caller
// multiplies this by its tick rate.
const DefaultComboDwellSeconds = 2

// Profile is either a built-in table (selected by index, applied by the
// output's own fixed remap) or a custom profile.
type Profile struct {
	Name string

	// Custom profile contents. A profile with a nil Remap and zero
	// Sensitivity is the identity mapping.
	Remap       RemapTable
	Sensitivity [4]uint8 // percent, indexed by AxisLX/LY/RX/RY; 0 means "use 100"
	Flags       Flags
	Combos      []ComboRule
}

// BuiltinApply is supplied by an output backend to perform its fixed
// remap + target-specific conventions. It receives the
// raw event and returns the result of the output's built-in table.
type BuiltinApply func(in ioiface.InputEvent) ioiface.ProfileOutput

// comboState is one of idle, arming, fired.
type comboState int

const (
	comboIdle comboState = iota
	comboArming
	comboFired
)

// ComboTracker holds the per-player combo state machine for one profile.
// Callers keep one ComboTracker per (profile, player) pair.
type ComboTracker struct {
	state    comboState
	armedAt  uint32
	armedIdx int // index into Profile.Combos of the rule currently arming/fired
}

// sensPercent returns p.Sensitivity[axis] or 100 if unset (0 means "use
// default 100%", since a genuine 0% sensitivity profile is not a sane
// adapter configuration).
func sensPercent(p *Profile, axis int) uint16 {
	if p == nil || axis >= len(p.Sensitivity) || p.Sensitivity[axis] == 0 {
		return 100
	}
	return uint16(p.Sensitivity[axis])
}

func scaleAxis(v uint8, percent uint16) uint8 {
	delta := int32(v) - ioiface.AnalogCenter
	delta = delta * int32(percent) / 100
	out := int32(ioiface.AnalogCenter) + delta
	if out < 0 {
		out = 0
	}
	if out > 255 {
		out = 255
	}
	return uint8(out)
}

func invert(v uint8) uint8 {
	return uint8(255 - int(v))
}

func remapButtons(in uint32, table RemapTable) uint32 {
	if len(table) == 0 {
		return in
	}
	var out uint32
	for bit := uint32(1); bit != 0; bit <<= 1 {
		if in&bit == 0 {
			continue
		}
		if dst, ok := table[bit]; ok {
			out |= dst
		} else {
			out |= bit
		}
	}
	return out
}

// Apply runs the profile engine on one event. builtin may be
// nil; custom may be nil. When both are nil the result is the identity on
// buttons/sticks with motion/pressure passed through.
func Apply(builtin BuiltinApply, custom *Profile, in ioiface.InputEvent) ioiface.ProfileOutput {
	var out ioiface.ProfileOutput

	if builtin != nil {
		out = builtin(in)
	} else {
		out = ioiface.ProfileOutput{Buttons: in.Buttons, Analog: in.Analog}
	}

	if custom != nil {
		out.Buttons = remapButtons(out.Buttons, custom.Remap)

		lx, ly := out.Analog[ioiface.AxisLX], out.Analog[ioiface.AxisLY]
		rx, ry := out.Analog[ioiface.AxisRX], out.Analog[ioiface.AxisRY]

		if custom.Flags&FlagSwapSticks != 0 {
			lx, rx = rx, lx
			ly, ry = ry, ly
		}

		lx = scaleAxis(lx, sensPercent(custom, ioiface.AxisLX))
		ly = scaleAxis(ly, sensPercent(custom, ioiface.AxisLY))
		rx = scaleAxis(rx, sensPercent(custom, ioiface.AxisRX))
		ry = scaleAxis(ry, sensPercent(custom, ioiface.AxisRY))

		if custom.Flags&FlagInvertLY != 0 {
			ly = invert(ly)
		}
		if custom.Flags&FlagInvertRY != 0 {
			ry = invert(ry)
		}

		out.Analog[ioiface.AxisLX] = lx
		out.Analog[ioiface.AxisLY] = ly
		out.Analog[ioiface.AxisRX] = rx
		out.Analog[ioiface.AxisRY] = ry
	}

	// Motion and pressure pass through unchanged.
	out.HasAccel, out.Accel = in.HasAccel, in.Accel
	out.HasGyro, out.Gyro = in.HasGyro, in.Gyro
	out.HasPress, out.Pressure = in.HasPress, in.Pressure

	return out
}

// DetectCombo advances t for one (profile, player) pair given the current
// raw button mask and the current tick. It returns the rule that just
// fired (ok=true) exactly once per hold, or ok=false otherwise. Multiple
// candidate rules compete by specificity: the mask with more bits set wins,
// ties broken by declaration order.
func DetectCombo(p *Profile, t *ComboTracker, buttons uint32, now uint32) (ComboRule, bool) {
	best := -1
	for i, rule := range p.Combos {
		if buttons&rule.Mask != rule.Mask {
			continue
		}
		if best == -1 || bits.OnesCount32(rule.Mask) > bits.OnesCount32(p.Combos[best].Mask) {
			best = i
		}
	}

	switch t.state {
	case comboIdle:
		if best == -1 {
			return ComboRule{}, false
		}
		t.state = comboArming
		t.armedAt = now
		t.armedIdx = best
		return ComboRule{}, false

	case comboArming:
		if best == -1 || best != t.armedIdx {
			// Rule no longer matches (buttons changed); re-evaluate from idle.
			t.state = comboIdle
			if best != -1 {
				t.state = comboArming
				t.armedAt = now
				t.armedIdx = best
			}
			return ComboRule{}, false
		}
		rule := p.Combos[t.armedIdx]
		if now-t.armedAt >= rule.HoldTime {
			t.state = comboFired
			return rule, true
		}
		return ComboRule{}, false

	case comboFired:
		if best == -1 {
			t.state = comboIdle
		}
		return ComboRule{}, false
	}
	return ComboRule{}, false
}
