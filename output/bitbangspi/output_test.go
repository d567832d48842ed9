package bitbangspi

import (
	"testing"

	"padcore/ioiface"
)

func newLoopbackBus(t *testing.T) *Bus {
	t.Helper()
	mosi := &fakeOutPin{}
	sclk := &fakeOutPin{}
	bus, err := NewBus(sclk, mosi, nil, 0, 1000000)
	if err != nil {
		t.Fatalf("NewBus: %v", err)
	}
	bus.setSleep(noSleep)
	return bus
}

func TestTaskTransmitsOnePendingFrame(t *testing.T) {
	bus := newLoopbackBus(t)
	var calledWith uint8 = 255
	apply := func(player uint8, event ioiface.InputEvent) (ioiface.ProfileOutput, uint32) {
		calledWith = player
		return ioiface.ProfileOutput{}, ioiface.BtnB1
	}
	out := New("pad", 0, bus, apply, nil)

	out.Publish(1, ioiface.InputEvent{PlayerIndex: 1})
	out.Task()

	if calledWith != 1 {
		t.Fatalf("expected apply to run for player 1, got %d", calledWith)
	}
}

func TestTaskClearsPendingAfterTransmit(t *testing.T) {
	bus := newLoopbackBus(t)
	calls := 0
	apply := func(player uint8, event ioiface.InputEvent) (ioiface.ProfileOutput, uint32) {
		calls++
		return ioiface.ProfileOutput{}, 0
	}
	out := New("pad", 0, bus, apply, nil)

	out.Publish(0, ioiface.InputEvent{})
	out.Task()
	out.Task()

	if calls != 1 {
		t.Fatalf("expected exactly one apply call across two ticks, got %d", calls)
	}
}

func TestDefaultFrameEncodesButtonsAndAnalog(t *testing.T) {
	out := ioiface.ProfileOutput{Analog: [ioiface.AxisCount]uint8{1, 2, 3, 4, 5, 6}}
	frame := DefaultFrame(2, out, ioiface.BtnB1|ioiface.BtnB2)

	if frame[0] != 2 {
		t.Fatalf("expected player byte 2, got %d", frame[0])
	}
	if frame[1] != byte(ioiface.BtnB1|ioiface.BtnB2) {
		t.Fatalf("unexpected low button byte: %#x", frame[1])
	}
	for i, want := range []byte{1, 2, 3, 4, 5, 6} {
		if frame[5+i] != want {
			t.Fatalf("analog byte %d: got %d want %d", i, frame[5+i], want)
		}
	}
}

func TestSetActiveProfileRejectsOutOfRange(t *testing.T) {
	out := New("pad", 0, newLoopbackBus(t), nil, nil)
	if err := out.SetActiveProfile(5); err != errInvalidProfile {
		t.Fatalf("expected errInvalidProfile, got %v", err)
	}
}

func TestSetProfilesOverridesDefault(t *testing.T) {
	out := New("pad", 0, newLoopbackBus(t), nil, nil)
	out.SetProfiles([]string{"a", "b"})
	if out.ProfileCount() != 2 || out.ProfileName(1) != "b" {
		t.Fatalf("expected profile table to be replaced, got count=%d name=%q", out.ProfileCount(), out.ProfileName(1))
	}
}
