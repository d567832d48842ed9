package player

import "testing"

func TestDisconnectedPlayerRendersOff(t *testing.T) {
	var gotOn bool
	calls := 0
	mgr := NewManager(func(player uint8, r, g, b uint8, on bool) {
		calls++
		gotOn = on
	})

	mgr.Task(0)
	if calls != len(mgr.slots) {
		t.Fatalf("expected one render call per slot, got %d", calls)
	}
	if gotOn {
		t.Fatal("a disconnected player must never render lit")
	}
}

func TestConnectedPlayerHeartbeats(t *testing.T) {
	var renders []bool
	mgr := NewManager(func(player uint8, r, g, b uint8, on bool) {
		if player == 0 {
			renders = append(renders, on)
		}
	})
	mgr.SetConnected(0, true)

	mgr.Task(0)
	mgr.Task(heartbeatOn - 1)
	mgr.Task(heartbeatOn + 1)
	mgr.Task(heartbeatCycle + 1)

	if !renders[0] {
		t.Fatal("heartbeat must start lit on connect")
	}
	if renders[2] {
		t.Fatal("heartbeat must go dark after its on-phase elapses")
	}
	if !renders[3] {
		t.Fatal("heartbeat must relight at the start of the next cycle")
	}
}

func TestProfileBlinkTakesPriorityOverHeartbeat(t *testing.T) {
	mgr := NewManager(func(uint8, uint8, uint8, uint8, bool) {})
	mgr.SetConnected(0, true)
	mgr.SetProfileBlink(0, true)
	mgr.Task(0)

	if mgr.leds[0].pattern != PatternBlinkFast {
		t.Fatalf("expected the profile-switch indicator to win, got pattern %v", mgr.leds[0].pattern)
	}
}

func TestColorOverrideAndClear(t *testing.T) {
	var r, g, b uint8
	mgr := NewManager(func(player uint8, rr, gg, bb uint8, on bool) {
		if player == 1 {
			r, g, b = rr, gg, bb
		}
	})
	mgr.SetConnected(1, true)
	mgr.SetColor(1, 10, 20, 30, true)
	mgr.Task(0)
	if r != 10 || g != 20 || b != 30 {
		t.Fatalf("color override not applied: got %d,%d,%d", r, g, b)
	}

	mgr.SetColor(1, 0, 0, 0, false)
	mgr.Task(0)
	want := defaultColors[1]
	if r != want[0] || g != want[1] || b != want[2] {
		t.Fatalf("clearing override should revert to default color, got %d,%d,%d", r, g, b)
	}
}

func TestDisconnectGoesDarkImmediately(t *testing.T) {
	var on bool
	mgr := NewManager(func(player uint8, r, g, b uint8, o bool) {
		if player == 2 {
			on = o
		}
	})
	mgr.SetConnected(2, true)
	mgr.Task(0)
	if !on {
		t.Fatal("expected lit on first tick after connect")
	}

	mgr.SetConnected(2, false)
	mgr.Task(1)
	if on {
		t.Fatal("expected dark on the tick after disconnect")
	}
}
