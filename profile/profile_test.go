package profile

import (
	"testing"

	"padcore/ioiface"
)

func TestApplyIdentityWithNoProfile(t *testing.T) {
	in := ioiface.InputEvent{
		Buttons: ioiface.BtnB1 | ioiface.BtnDPadUp,
		Analog:  [ioiface.AxisCount]uint8{10, 20, 30, 40, 0, 0},
	}
	out := Apply(nil, nil, in)

	if out.Buttons != in.Buttons {
		t.Fatalf("buttons not identity: got %x want %x", out.Buttons, in.Buttons)
	}
	if out.Analog != in.Analog {
		t.Fatalf("analog not identity: got %v want %v", out.Analog, in.Analog)
	}
}

func TestApplyIdentityWithFullSensitivityProfile(t *testing.T) {
	custom := &Profile{Name: "identity", Sensitivity: [4]uint8{100, 100, 100, 100}}
	in := ioiface.InputEvent{
		Buttons: ioiface.BtnB2,
		Analog:  [ioiface.AxisCount]uint8{128, 200, 50, 128, 0, 0},
	}
	out := Apply(nil, custom, in)

	if out.Buttons != in.Buttons {
		t.Fatalf("buttons changed under identity profile: %x vs %x", out.Buttons, in.Buttons)
	}
	if out.Analog[ioiface.AxisLX] != in.Analog[ioiface.AxisLX] ||
		out.Analog[ioiface.AxisLY] != in.Analog[ioiface.AxisLY] ||
		out.Analog[ioiface.AxisRX] != in.Analog[ioiface.AxisRX] ||
		out.Analog[ioiface.AxisRY] != in.Analog[ioiface.AxisRY] {
		t.Fatalf("sticks changed under identity profile: %v vs %v", out.Analog, in.Analog)
	}
}

// Custom profile with INVERT_LY: input LY=0x20 maps to output LY=0xDF.
func TestApplyInvertLY(t *testing.T) {
	custom := &Profile{Flags: FlagInvertLY}
	in := ioiface.InputEvent{Analog: [ioiface.AxisCount]uint8{128, 0x20, 128, 128, 0, 0}}

	out := Apply(nil, custom, in)

	if out.Analog[ioiface.AxisLY] != 0xDF {
		t.Fatalf("expected LY=0xDF, got 0x%02X", out.Analog[ioiface.AxisLY])
	}
}

func TestApplySwapSticks(t *testing.T) {
	custom := &Profile{Flags: FlagSwapSticks}
	in := ioiface.InputEvent{Analog: [ioiface.AxisCount]uint8{10, 20, 30, 40, 0, 0}}

	out := Apply(nil, custom, in)

	if out.Analog[ioiface.AxisLX] != 30 || out.Analog[ioiface.AxisLY] != 40 ||
		out.Analog[ioiface.AxisRX] != 10 || out.Analog[ioiface.AxisRY] != 20 {
		t.Fatalf("sticks not swapped: %v", out.Analog)
	}
}

func TestApplyRemapButtons(t *testing.T) {
	custom := &Profile{Remap: RemapTable{ioiface.BtnB1: ioiface.BtnB3}}
	in := ioiface.InputEvent{Buttons: ioiface.BtnB1 | ioiface.BtnB2}

	out := Apply(nil, custom, in)

	want := ioiface.BtnB3 | ioiface.BtnB2
	if out.Buttons != want {
		t.Fatalf("remap failed: got %x want %x", out.Buttons, want)
	}
}

func TestApplyPassesThroughMotion(t *testing.T) {
	in := ioiface.InputEvent{HasAccel: true, Accel: [3]int16{1, 2, 3}}
	out := Apply(nil, &Profile{}, in)

	if !out.HasAccel || out.Accel != in.Accel {
		t.Fatalf("motion not passed through: %+v", out)
	}
}

func TestDetectComboFiresAfterDwell(t *testing.T) {
	p := &Profile{
		Combos: []ComboRule{
			{Mask: ioiface.BtnS1 | ioiface.BtnS2, HoldTime: 100, Action: ComboAction{SynthesizeButton: ioiface.BtnA1}},
		},
	}
	tr := &ComboTracker{}
	mask := ioiface.BtnS1 | ioiface.BtnS2

	if _, ok := DetectCombo(p, tr, mask, 0); ok {
		t.Fatal("should not fire immediately on first observation")
	}
	if _, ok := DetectCombo(p, tr, mask, 50); ok {
		t.Fatal("should not fire before dwell elapses")
	}
	rule, ok := DetectCombo(p, tr, mask, 100)
	if !ok {
		t.Fatal("expected combo to fire once dwell elapses")
	}
	if rule.Action.SynthesizeButton != ioiface.BtnA1 {
		t.Fatalf("unexpected action: %+v", rule.Action)
	}

	// Still held: must not keep firing.
	if _, ok := DetectCombo(p, tr, mask, 150); ok {
		t.Fatal("combo should not re-fire while still held")
	}

	// Released: returns to idle.
	if _, ok := DetectCombo(p, tr, 0, 200); ok {
		t.Fatal("release must not fire")
	}
	if _, ok := DetectCombo(p, tr, mask, 250); ok {
		t.Fatal("fresh press must re-arm, not fire immediately")
	}
}

func TestDetectComboSpecificityTieBreak(t *testing.T) {
	p := &Profile{
		Combos: []ComboRule{
			{Mask: ioiface.BtnS1, HoldTime: 0, Action: ComboAction{SynthesizeButton: ioiface.BtnA1}},
			{Mask: ioiface.BtnS1 | ioiface.BtnS2, HoldTime: 0, Action: ComboAction{SynthesizeButton: ioiface.BtnA2}},
		},
	}
	tr := &ComboTracker{}
	mask := ioiface.BtnS1 | ioiface.BtnS2

	// First tick arms the larger mask (more specific); fires next tick since HoldTime=0.
	if _, ok := DetectCombo(p, tr, mask, 0); ok {
		t.Fatal("arming tick should not fire")
	}
	rule, ok := DetectCombo(p, tr, mask, 0)
	if !ok {
		t.Fatal("expected fire with zero dwell on second observation")
	}
	if rule.Action.SynthesizeButton != ioiface.BtnA2 {
		t.Fatalf("expected the larger (more specific) mask to win, got %+v", rule.Action)
	}
}
