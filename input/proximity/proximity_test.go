package proximity

import (
	"testing"

	"padcore/ioiface"
	"padcore/router"
)

func TestTaskScalesNearDistanceToFullPressure(t *testing.T) {
	var got ioiface.InputEvent
	r := router.New()
	r.SetTap(0, func(player uint8, event ioiface.InputEvent) { got = event })

	in := New("probe", 0, 3, 0, r)
	in.SetSensor(func() (uint16, bool) { return 10, true })

	in.Task()

	if !got.HasPress {
		t.Fatal("HasPress = false, want true")
	}
	if got.Pressure[3] != 255 {
		t.Errorf("Pressure[3] = %d, want 255", got.Pressure[3])
	}
}

func TestTaskScalesFarDistanceToZeroPressure(t *testing.T) {
	var got ioiface.InputEvent
	r := router.New()
	r.SetTap(0, func(player uint8, event ioiface.InputEvent) { got = event })

	in := New("probe", 0, 3, 0, r)
	in.SetSensor(func() (uint16, bool) { return 500, true })

	in.Task()

	if got.Pressure[3] != 0 {
		t.Errorf("Pressure[3] = %d, want 0", got.Pressure[3])
	}
}

func TestTaskSuppressesDuplicatePublish(t *testing.T) {
	calls := 0
	r := router.New()
	r.SetTap(0, func(player uint8, event ioiface.InputEvent) { calls++ })

	in := New("probe", 0, 0, 0, r)
	in.SetSensor(func() (uint16, bool) { return 100, true })

	in.Task()
	in.Task()

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestTaskSkipsWhenSensorNotOK(t *testing.T) {
	calls := 0
	r := router.New()
	r.SetTap(0, func(player uint8, event ioiface.InputEvent) { calls++ })

	in := New("probe", 0, 0, 0, r)
	in.SetSensor(func() (uint16, bool) { return 0, false })

	in.Task()

	if calls != 0 {
		t.Errorf("calls = %d, want 0", calls)
	}
}

func TestSetRangeOverridesDefaults(t *testing.T) {
	var got ioiface.InputEvent
	r := router.New()
	r.SetTap(0, func(player uint8, event ioiface.InputEvent) { got = event })

	in := New("probe", 0, 0, 0, r)
	in.SetRange(0, 100)
	in.SetSensor(func() (uint16, bool) { return 50, true })

	in.Task()

	if got.Pressure[0] != 127 {
		t.Errorf("Pressure[0] = %d, want 127", got.Pressure[0])
	}
}

func TestTaskMergesDigitalButtons(t *testing.T) {
	var got ioiface.InputEvent
	r := router.New()
	r.SetTap(0, func(player uint8, event ioiface.InputEvent) { got = event })

	in := New("probe", 0, 0, 0, r)
	in.SetSensor(func() (uint16, bool) { return 10, true })
	in.SetButtons(func() uint32 { return ioiface.BtnB1 })

	in.Task()

	if got.Buttons != ioiface.BtnB1 {
		t.Errorf("Buttons = %#x, want BtnB1", got.Buttons)
	}
}
