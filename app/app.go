// Package app implements the board-agnostic wiring and the main scheduler
// (component C10): a fixed-order cooperative round robin over the LED
// service, the player manager, the flash store, every registered output,
// the app-level glue, and every registered input. Grounded on this
// module's per-board main() loops.
package app

import (
	"padcore/feedback"
	"padcore/flashstore"
	"padcore/ioiface"
	"padcore/player"
)

// Hooks are the board/target-specific callbacks this package never
// implements itself: app_init, app_task, and the two enumerators that
// discover the inputs and outputs wired on a given board.
type Hooks struct {
	Init    func() error
	Task    func()
	Inputs  func() []ioiface.Input
	Outputs func() []ioiface.Output
}

// App runs the fixed-order main loop over one board's wiring.
type App struct {
	hooks    Hooks
	players  *player.Manager
	feedback *feedback.Plane
	store    *flashstore.Store

	inputs  []ioiface.Input
	outputs []ioiface.Output

	// storageFlush runs in the "storage" scheduler slot. Most ticks it is
	// nil or a no-op: flash is only actually written on a mode change or a
	// profile-slot save, not every tick.
	storageFlush func()

	// trace, if set, observes the exact order components run in; used by
	// tests to assert scheduler ordering. Production builds leave it nil.
	trace func(step string)
}

// New builds an App. players, fb, and store must be non-nil; hooks.Inputs
// and hooks.Outputs may be nil, in which case Init enumerates no inputs or
// outputs.
func New(hooks Hooks, players *player.Manager, fb *feedback.Plane, store *flashstore.Store) *App {
	return &App{hooks: hooks, players: players, feedback: fb, store: store}
}

// SetStorageFlush installs the optional per-tick storage-slot callback.
func (a *App) SetStorageFlush(fn func()) {
	a.storageFlush = fn
}

// SetTrace installs a per-step observer, used only by tests.
func (a *App) SetTrace(fn func(step string)) {
	a.trace = fn
}

// Init runs app_init and then the two enumerators, capturing the board's
// inputs and outputs for the rest of this App's lifetime.
func (a *App) Init() error {
	if a.hooks.Init != nil {
		if err := a.hooks.Init(); err != nil {
			return err
		}
	}
	if a.hooks.Inputs != nil {
		a.inputs = a.hooks.Inputs()
	}
	if a.hooks.Outputs != nil {
		a.outputs = a.hooks.Outputs()
	}
	return nil
}

// Inputs returns the inputs discovered by Init.
func (a *App) Inputs() []ioiface.Input { return a.inputs }

// Outputs returns the outputs discovered by Init.
func (a *App) Outputs() []ioiface.Output { return a.outputs }

// Active returns the primary output: the first one enumerated. Exactly
// one output is ever targeted by the router and the feedback plane, even
// when a board enumerates more than one.
func (a *App) Active() ioiface.Output {
	if len(a.outputs) == 0 {
		return nil
	}
	return a.outputs[0]
}

func (a *App) emit(step string) {
	if a.trace != nil {
		a.trace(step)
	}
}

// Tick runs one cooperative round: LEDs, players, storage, every output's
// task, the app-level glue (feedback plane plus hooks.Task), then every
// input's task. This exact order is load-bearing: outputs are ticked
// before inputs so output hardware is primed before an input's task can
// enqueue an event destined for it.
func (a *App) Tick(now uint32) {
	a.emit("leds")
	a.players.Task(now)

	a.emit("players")

	a.emit("storage")
	if a.storageFlush != nil {
		a.storageFlush()
	}

	for _, out := range a.outputs {
		a.emit("output")
		out.Task()
	}

	a.emit("app")
	a.feedback.Task()
	if a.hooks.Task != nil {
		a.hooks.Task()
	}

	for _, in := range a.inputs {
		a.emit("input")
		in.Task()
	}
}
