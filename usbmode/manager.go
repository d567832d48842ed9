package usbmode

import "padcore/ioiface"

// pendingSlot is one player's latest-wins pending event.
type pendingSlot struct {
	event ioiface.InputEvent
	valid bool
}

// USBPump is the external USB-device stack's per-tick pump, run first in
// Manager.Task. Its internals are out of scope: this package only calls it.
type USBPump func()

// Manager runs the active mode's per-tick task and drains the
// pending-event queue through the profile engine. The stack's descriptor
// callbacks reach the active mode through Dispatcher, not Manager.
type Manager struct {
	registry *Registry
	current  *Mode
	pending  [ioiface.MaxPlayers]pendingSlot
	pump     USBPump

	// kbmIdle is consulted only for ModeKeyboardMouse: even with no
	// pending event, an idle mouse report must keep flowing so continuous
	// movement is not starved.
	kbmIdle func() (report []byte, ok bool)
}

// NewManager binds registry (already frozen) and pump.
func NewManager(registry *Registry, pump USBPump) *Manager {
	if pump == nil {
		pump = func() {}
	}
	return &Manager{registry: registry, pump: pump}
}

// SetCurrent sets the active mode. Call once during app init.
func (m *Manager) SetCurrent(mode *Mode) {
	m.current = mode
}

// Current returns the active mode.
func (m *Manager) Current() *Mode {
	return m.current
}

// SetKeyboardMouseIdle registers the idle-mouse-report generator used only
// when the active mode is ModeKeyboardMouse.
func (m *Manager) SetKeyboardMouseIdle(fn func() ([]byte, bool)) {
	m.kbmIdle = fn
}

// Publish is the router tap this manager registers for its target: it
// writes the player's slot and marks it valid, overwriting any event not
// yet consumed.
func (m *Manager) Publish(player uint8, event ioiface.InputEvent) {
	if int(player) >= len(m.pending) {
		return
	}
	m.pending[player] = pendingSlot{event: event, valid: true}
}

// Applier lets the caller plug the profile engine in without
// this package importing it directly (profile already imports ioiface, and
// importing profile here would be a needless layering inversion since the
// manager only needs "apply this player's pending event to a report").
type Applier func(player uint8, event ioiface.InputEvent) (out ioiface.ProfileOutput, buttons uint32)

// Task runs one manager tick.
func (m *Manager) Task(apply Applier) {
	m.pump()

	if m.current == nil {
		return
	}
	if m.current.Task != nil {
		m.current.Task()
	}

	if m.current.IsReady == nil || !m.current.IsReady() {
		// USB not ready: drop this tick's emission, keep the pending
		// event for the next tick.
		return
	}

	sentAny := false
	for player := range m.pending {
		slot := &m.pending[player]
		if !slot.valid {
			continue
		}
		out, buttons := apply(uint8(player), slot.event)
		m.current.SendReport(uint8(player), slot.event, out, buttons)
		slot.valid = false
		sentAny = true
	}

	if !sentAny && m.current.ModeID == ModeKeyboardMouse && m.kbmIdle != nil {
		m.kbmIdle()
	}
}
