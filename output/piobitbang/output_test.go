package piobitbang

import (
	"testing"

	"padcore/ioiface"
)

type fakeFIFO struct {
	words []uint32
}

func (f *fakeFIFO) Full() bool { return false }
func (f *fakeFIFO) Put(word uint32) {
	f.words = append(f.words, word)
}

func TestTaskEnqueuesFrameForPendingPlayer(t *testing.T) {
	apply := func(player uint8, event ioiface.InputEvent) (ioiface.ProfileOutput, uint32) {
		return ioiface.ProfileOutput{}, ioiface.BtnB1
	}
	out := New("pad", 0, apply, nil, nil)
	out.Publish(0, ioiface.InputEvent{})
	out.Task()

	frame, ok := out.queue.pop()
	if !ok {
		t.Fatal("expected Task to enqueue a frame")
	}
	if frame[1] != byte(ioiface.BtnB1) {
		t.Fatalf("unexpected button byte: %#x", frame[1])
	}
}

func TestCore1TaskNilWithoutWriter(t *testing.T) {
	out := New("pad", 0, nil, nil, nil)
	if out.Core1Task() != nil {
		t.Fatal("expected a nil Core1Task when no FIFO writer was configured")
	}
}

func TestDrainOnceTransmitsQueuedFrame(t *testing.T) {
	fifo := &fakeFIFO{}
	out := New("pad", 0, nil, nil, fifo)
	out.queue.push([frameSize]byte{9, 1, 2, 3, 4, 0, 0, 0})

	if !out.drainOnce() {
		t.Fatal("expected drainOnce to find the queued frame")
	}
	if len(fifo.words) != 2 {
		t.Fatalf("expected two 32-bit words written, got %d", len(fifo.words))
	}
	if fifo.words[0] != 0x09010203 {
		t.Fatalf("unexpected first word: %#x", fifo.words[0])
	}
}

func TestDrainOnceFalseWhenEmpty(t *testing.T) {
	out := New("pad", 0, nil, nil, &fakeFIFO{})
	if out.drainOnce() {
		t.Fatal("expected drainOnce to report false on an empty queue")
	}
}

func TestSetActiveProfileRejectsOutOfRange(t *testing.T) {
	out := New("pad", 0, nil, nil, nil)
	if err := out.SetActiveProfile(3); err != errInvalidProfile {
		t.Fatalf("expected errInvalidProfile, got %v", err)
	}
}
