package piobitbang

import (
	"errors"

	"padcore/ioiface"
)

var errInvalidProfile = errors.New("piobitbang: invalid profile index")

// pendingSlot mirrors the latest-wins per-player pending event queue
// used across this firmware's output backends.
type pendingSlot struct {
	event ioiface.InputEvent
	valid bool
}

// Applier runs one player's pending event through the profile engine.
type Applier func(player uint8, event ioiface.InputEvent) (out ioiface.ProfileOutput, buttons uint32)

// FrameFunc encodes one player's profile output into the frameSize-byte
// wire frame shifted out by the PIO program. DefaultFrame is used when
// nil.
type FrameFunc func(player uint8, out ioiface.ProfileOutput, buttons uint32) [frameSize]byte

// FIFOWriter is the PIO TX FIFO capability Core 1's drain loop needs:
// Full reports backpressure, Put transmits one 32-bit word. Satisfied
// by the rp2-pio state machine on-device, and a fake in host tests.
type FIFOWriter interface {
	Full() bool
	Put(word uint32)
}

// Output drives a native console pad over a PIO-shifted serial link. It
// is the one output backend allowed to return a non-nil Core1Task: its
// drain loop is timing-critical enough to own the second core outright
// instead of sharing the cooperative Core 0 main loop.
type Output struct {
	name   string
	target ioiface.TargetID
	apply  Applier
	frame  FrameFunc
	writer FIFOWriter
	// idle runs when Core 1's drain loop finds nothing pending; nil on
	// host builds, machine idle/wfe on-device.
	idle func()

	queue frameQueue

	pending [ioiface.MaxPlayers]pendingSlot

	profiles []string
	active   int
}

// New returns an Output named name, targeting target. writer may be nil
// on host builds that only exercise the Core 0 side (Task, profile
// accessors); Core1Task then returns nil.
func New(name string, target ioiface.TargetID, apply Applier, frame FrameFunc, writer FIFOWriter) *Output {
	if frame == nil {
		frame = DefaultFrame
	}
	return &Output{name: name, target: target, apply: apply, frame: frame, writer: writer, profiles: []string{"default"}}
}

// SetIdle installs the hook Core 1's drain loop runs when the queue is
// empty, instead of hot-spinning.
func (o *Output) SetIdle(fn func()) {
	o.idle = fn
}

// SetProfiles overrides the built-in single "default" profile table.
func (o *Output) SetProfiles(names []string) {
	if len(names) == 0 {
		return
	}
	o.profiles = names
	if o.active >= len(o.profiles) {
		o.active = 0
	}
}

func (o *Output) Name() string              { return o.name }
func (o *Output) TargetID() ioiface.TargetID { return o.target }
func (o *Output) Init() error                { return nil }

func (o *Output) ProfileCount() int  { return len(o.profiles) }
func (o *Output) ActiveProfile() int { return o.active }
func (o *Output) ProfileName(idx int) string {
	if idx < 0 || idx >= len(o.profiles) {
		return ""
	}
	return o.profiles[idx]
}

func (o *Output) SetActiveProfile(idx int) error {
	if idx < 0 || idx >= len(o.profiles) {
		return errInvalidProfile
	}
	o.active = idx
	return nil
}

// Publish is the router tap this output registers: latest-wins per
// player.
func (o *Output) Publish(player uint8, event ioiface.InputEvent) {
	if int(player) >= len(o.pending) {
		return
	}
	o.pending[player] = pendingSlot{event: event, valid: true}
}

// Task builds a frame for every valid pending player event and enqueues
// it for Core 1 to drain. This is the only interaction Core 0 has with
// the queue; everything else happens on the other core.
func (o *Output) Task() {
	if o.apply == nil {
		return
	}
	for player := range o.pending {
		slot := &o.pending[player]
		if !slot.valid {
			continue
		}
		out, buttons := o.apply(uint8(player), slot.event)
		o.queue.push(o.frame(uint8(player), out, buttons))
		slot.valid = false
	}
}

// Core1Task returns the forever-loop this output runs on Core 1: drain
// the queue into the PIO FIFO, idling when nothing is pending. Returns
// nil if no writer was configured.
func (o *Output) Core1Task() func() {
	if o.writer == nil {
		return nil
	}
	return func() {
		for {
			if !o.drainOnce() && o.idle != nil {
				o.idle()
			}
		}
	}
}

// drainOnce pops one frame, if any, and shifts it out through writer.
// Split out from Core1Task's forever-loop so tests can exercise one
// iteration without blocking forever.
func (o *Output) drainOnce() bool {
	frame, ok := o.queue.pop()
	if !ok {
		return false
	}
	writeFrame(o.writer, frame)
	return true
}

func writeFrame(w FIFOWriter, frame [frameSize]byte) {
	for i := 0; i < frameSize; i += 4 {
		word := uint32(frame[i])<<24 | uint32(frame[i+1])<<16 | uint32(frame[i+2])<<8 | uint32(frame[i+3])
		for w.Full() {
		}
		w.Put(word)
	}
}

// DefaultFrame packs player, buttons (4 bytes LE), and the first three
// analog axes into the fixed frameSize-byte frame.
func DefaultFrame(player uint8, out ioiface.ProfileOutput, buttons uint32) [frameSize]byte {
	var frame [frameSize]byte
	frame[0] = player
	frame[1] = byte(buttons)
	frame[2] = byte(buttons >> 8)
	frame[3] = byte(buttons >> 16)
	frame[4] = byte(buttons >> 24)
	frame[5] = out.Analog[ioiface.AxisLX]
	frame[6] = out.Analog[ioiface.AxisLY]
	frame[7] = out.Analog[ioiface.AxisRX]
	return frame
}
