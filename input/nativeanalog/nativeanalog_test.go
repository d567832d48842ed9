package nativeanalog

import (
	"testing"

	"padcore/ioiface"
	"padcore/router"
)

func fixedSampler(value uint16, ready bool) Sampler {
	return func(pin uint32) (uint16, bool) { return value, ready }
}

func TestTaskScalesRawRangeIntoAxis(t *testing.T) {
	r := router.New()
	var got ioiface.InputEvent
	var n int
	if err := r.SetTap(0, func(player uint8, event ioiface.InputEvent) {
		got = event
		n++
	}); err != nil {
		t.Fatalf("SetTap: %v", err)
	}

	in := New("stick0", 0, 0, r)
	in.SetAxis(ioiface.AxisLX, 26, fixedSampler(2048, true), 0, 4095, false)
	if err := in.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	in.Task()

	if n != 1 {
		t.Fatalf("expected exactly one publish, got %d", n)
	}
	if got.Analog[ioiface.AxisLX] == 0 {
		t.Fatalf("expected a mid-range scaled value, got 0")
	}
}

func TestTaskSuppressesDuplicatePublish(t *testing.T) {
	r := router.New()
	var n int
	r.SetTap(0, func(player uint8, event ioiface.InputEvent) { n++ })

	in := New("stick0", 0, 0, r)
	in.SetAxis(ioiface.AxisLX, 26, fixedSampler(2048, true), 0, 4095, false)
	in.Init()

	in.Task()
	in.Task()
	in.Task()

	if n != 1 {
		t.Fatalf("expected duplicate unchanged samples to be suppressed, got %d publishes", n)
	}
}

func TestTaskSkipsAxisNotYetReady(t *testing.T) {
	r := router.New()
	var got ioiface.InputEvent
	r.SetTap(0, func(player uint8, event ioiface.InputEvent) { got = event })

	in := New("stick0", 0, 0, r)
	in.SetAxis(ioiface.AxisLX, 26, fixedSampler(9999, false), 0, 4095, false)
	in.Init()

	in.Task()

	if got.Analog[ioiface.AxisLX] != 0 {
		t.Fatalf("expected axis to stay at its zero-value default while not ready, got %d", got.Analog[ioiface.AxisLX])
	}
}

func TestTaskAppliesInvert(t *testing.T) {
	r := router.New()
	var got ioiface.InputEvent
	r.SetTap(0, func(player uint8, event ioiface.InputEvent) { got = event })

	in := New("trigger0", 0, 0, r)
	in.SetAxis(ioiface.AxisL2, 27, fixedSampler(4095, true), 0, 4095, true)
	in.Init()
	in.Task()

	if got.Analog[ioiface.AxisL2] != 0 {
		t.Fatalf("expected max raw with invert to scale to 0, got %d", got.Analog[ioiface.AxisL2])
	}
}

func TestTaskMergesDigitalButtons(t *testing.T) {
	r := router.New()
	var got ioiface.InputEvent
	r.SetTap(0, func(player uint8, event ioiface.InputEvent) { got = event })

	in := New("pad0", 0, 0, r)
	in.SetButtons(func() uint32 { return ioiface.BtnB1 })
	in.Init()
	in.Task()

	if got.Buttons != ioiface.BtnB1 {
		t.Fatalf("expected BtnB1 to be forwarded, got %#x", got.Buttons)
	}
}

func TestPinSetupRunsOverEveryMappedAxis(t *testing.T) {
	r := router.New()
	r.SetTap(0, func(player uint8, event ioiface.InputEvent) {})

	in := New("pad0", 0, 0, r)
	in.SetAxis(ioiface.AxisLX, 26, fixedSampler(0, true), 0, 4095, false)
	in.SetAxis(ioiface.AxisLY, 27, fixedSampler(0, true), 0, 4095, false)

	var setupPins []uint32
	in.SetPinSetup(func(pin uint32) error {
		setupPins = append(setupPins, pin)
		return nil
	})

	if err := in.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if len(setupPins) != 2 {
		t.Fatalf("expected setup to run for both mapped pins, got %v", setupPins)
	}
}
