// Package player implements the player manager and LED service: player
// connection tracking, the current player→LED mapping, and the per-tick
// blink/color state machine that animates each player's indicator.
package player

import "padcore/ioiface"

// playerSlot is one player's connection and LED override state.
type playerSlot struct {
	connected    bool
	profileBlink bool
	hasColor     bool
	r, g, b      uint8
}

// RenderFunc drives the physical LED (a single RGB LED, a WS2812 pixel, or
// a GPIO PWM channel) for one player. on is the current duty-cycle phase
// from the blink state machine; r/g/b are only meaningful while on.
type RenderFunc func(player uint8, r, g, b uint8, on bool)

// defaultColors gives connected players with no output-supplied color a
// stable per-slot identity instead of going dark.
var defaultColors = [ioiface.MaxPlayers][3]uint8{
	{255, 0, 0},
	{0, 255, 0},
	{0, 0, 255},
	{255, 255, 0},
}

// Manager is the player/LED service (component C7).
type Manager struct {
	slots  [ioiface.MaxPlayers]playerSlot
	leds   [ioiface.MaxPlayers]ledState
	render RenderFunc
}

// NewManager binds render, called once per player per Task tick.
func NewManager(render RenderFunc) *Manager {
	if render == nil {
		render = func(uint8, uint8, uint8, uint8, bool) {}
	}
	return &Manager{render: render}
}

// SetConnected marks player as connected or not. A disconnected player's
// LED goes dark on the next tick.
func (m *Manager) SetConnected(player uint8, connected bool) {
	if int(player) >= len(m.slots) {
		return
	}
	m.slots[player].connected = connected
}

// SetProfileBlink arms or disarms the active-profile-switch indicator
// blink for player, which takes priority over the idle heartbeat.
func (m *Manager) SetProfileBlink(player uint8, blinking bool) {
	if int(player) >= len(m.slots) {
		return
	}
	m.slots[player].profileBlink = blinking
}

// SetColor records the output-supplied color for player (from
// get_player_led or get_feedback). Passing ok=false clears the override
// and reverts to the default per-slot color.
func (m *Manager) SetColor(player uint8, r, g, b uint8, ok bool) {
	if int(player) >= len(m.slots) {
		return
	}
	m.slots[player].hasColor = ok
	m.slots[player].r, m.slots[player].g, m.slots[player].b = r, g, b
}

// Task runs one LED-service tick: pattern selection (heartbeat for a
// connected player with no pending indicator, fast blink for the
// active-profile indicator, off when disconnected) followed by rendering.
func (m *Manager) Task(now uint32) {
	for i := range m.slots {
		slot := &m.slots[i]
		led := &m.leds[i]

		switch {
		case !slot.connected:
			led.setPattern(PatternOff, now)
		case slot.profileBlink:
			led.setPattern(PatternBlinkFast, now)
		default:
			led.setPattern(PatternHeartbeat, now)
		}
		led.advance(now)

		r, g, b := defaultColors[i][0], defaultColors[i][1], defaultColors[i][2]
		if slot.hasColor {
			r, g, b = slot.r, slot.g, slot.b
		}
		m.render(uint8(i), r, g, b, led.on)
	}
}
