package app

import (
	"testing"

	"padcore/feedback"
	"padcore/flashstore"
	"padcore/ioiface"
	"padcore/player"
)

type fakeInput struct {
	name string
}

func (f *fakeInput) Name() string { return f.name }
func (f *fakeInput) Init() error  { return nil }
func (f *fakeInput) Task()        {}

type fakeOutput struct {
	name string
}

func (f *fakeOutput) Name() string                            { return f.name }
func (f *fakeOutput) TargetID() ioiface.TargetID               { return 0 }
func (f *fakeOutput) Init() error                              { return nil }
func (f *fakeOutput) Task()                                    {}
func (f *fakeOutput) ProfileCount() int                        { return 1 }
func (f *fakeOutput) ActiveProfile() int                       { return 0 }
func (f *fakeOutput) SetActiveProfile(idx int) error            { return nil }
func (f *fakeOutput) ProfileName(idx int) string                { return "" }
func (f *fakeOutput) Core1Task() func()                         { return nil }

func newTestApp(inputs []ioiface.Input, outputs []ioiface.Output) *App {
	players := player.NewManager(nil)
	fb := feedback.New(nil, nil, nil)
	store := flashstore.New(flashstore.NewMemSector(), nil)
	a := New(Hooks{
		Inputs:  func() []ioiface.Input { return inputs },
		Outputs: func() []ioiface.Output { return outputs },
	}, players, fb, store)
	if err := a.Init(); err != nil {
		panic(err)
	}
	return a
}

// The main-loop order is fixed: leds, players, storage, every output's
// task, app, every input's task.
func TestTickRunsComponentsInFixedOrder(t *testing.T) {
	inputs := []ioiface.Input{&fakeInput{name: "pad0"}, &fakeInput{name: "pad1"}}
	outputs := []ioiface.Output{&fakeOutput{name: "console"}}
	a := newTestApp(inputs, outputs)

	var steps []string
	a.SetTrace(func(step string) { steps = append(steps, step) })

	a.Tick(0)

	want := []string{"leds", "players", "storage", "output", "app", "input", "input"}
	if len(steps) != len(want) {
		t.Fatalf("got %v, want %v", steps, want)
	}
	for i := range want {
		if steps[i] != want[i] {
			t.Fatalf("step %d: got %q want %q (full: %v)", i, steps[i], want[i], steps)
		}
	}
}

func TestActiveIsFirstEnumeratedOutput(t *testing.T) {
	outputs := []ioiface.Output{&fakeOutput{name: "primary"}, &fakeOutput{name: "secondary"}}
	a := newTestApp(nil, outputs)

	if a.Active().Name() != "primary" {
		t.Fatalf("expected the first output to be active, got %q", a.Active().Name())
	}
}

func TestActiveNilWithNoOutputs(t *testing.T) {
	a := newTestApp(nil, nil)
	if a.Active() != nil {
		t.Fatal("expected Active() to be nil with no outputs")
	}
}

func TestStorageFlushRunsInStorageSlot(t *testing.T) {
	a := newTestApp(nil, nil)
	var flushed bool
	a.SetStorageFlush(func() { flushed = true })

	a.Tick(0)

	if !flushed {
		t.Fatal("expected the storage-slot callback to run during Tick")
	}
}
