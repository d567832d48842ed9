package router

import (
	"testing"

	"padcore/ioiface"
)

func TestPublishInvokesRegisteredTap(t *testing.T) {
	r := New()
	var got ioiface.InputEvent
	var gotPlayer uint8
	calls := 0
	err := r.SetTap(1, func(player uint8, event ioiface.InputEvent) {
		calls++
		gotPlayer = player
		got = event
	})
	if err != nil {
		t.Fatalf("SetTap: %v", err)
	}

	ev := ioiface.InputEvent{PlayerIndex: 2, Buttons: ioiface.BtnB1}
	if err := r.Publish(1, 2, ev); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
	if gotPlayer != 2 || got.Buttons != ioiface.BtnB1 {
		t.Fatalf("unexpected event delivered: player=%d event=%+v", gotPlayer, got)
	}
}

func TestPublishUnregisteredTargetReturnsError(t *testing.T) {
	r := New()
	err := r.Publish(5, 0, ioiface.InputEvent{})
	if err != ErrNoTap {
		t.Fatalf("expected ErrNoTap, got %v", err)
	}
}

func TestSetTapRejectsNil(t *testing.T) {
	r := New()
	if err := r.SetTap(1, nil); err == nil {
		t.Fatal("expected error registering a nil tap")
	}
	if r.HasTap(1) {
		t.Fatal("nil tap must not be registered")
	}
}

func TestPublishIgnoresInvalidPlayerIndex(t *testing.T) {
	r := New()
	calls := 0
	_ = r.SetTap(1, func(uint8, ioiface.InputEvent) { calls++ })

	if err := r.Publish(1, uint8(ioiface.MaxPlayers), ioiface.InputEvent{}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected event for out-of-range player to be dropped, got %d calls", calls)
	}
}
