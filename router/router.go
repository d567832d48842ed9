// Package router implements the input-event plane: one tap per output
// target, published synchronously with no queuing or locking. Routing is a
// direct function-pointer call, single-threaded on Core 0 — the sink
// decides whether and how to buffer.
package router

import (
	"errors"

	"padcore/ioiface"
)

// Tap receives one normalized event for one player, destined for a single
// output target.
type Tap func(player uint8, event ioiface.InputEvent)

// ErrNoTap is returned by Publish when no tap has been registered for a
// target. A placeholder tap that silently no-ops is never registered here;
// an unwired target fails loudly instead of swallowing events.
var ErrNoTap = errors.New("router: no tap registered for target")

// Router maintains one tap per output target.
type Router struct {
	taps map[ioiface.TargetID]Tap
}

// New returns an empty Router.
func New() *Router {
	return &Router{taps: make(map[ioiface.TargetID]Tap)}
}

// SetTap registers the tap invoked by Publish for target. A nil fn is
// rejected outright: every target must have a real tap wired before
// routing is enabled, never a placeholder.
func (r *Router) SetTap(target ioiface.TargetID, fn Tap) error {
	if fn == nil {
		return errors.New("router: refusing to register a nil tap")
	}
	r.taps[target] = fn
	return nil
}

// HasTap reports whether target has a registered tap.
func (r *Router) HasTap(target ioiface.TargetID) bool {
	_, ok := r.taps[target]
	return ok
}

// Publish synchronously invokes the tap registered for target. An invalid
// player index is dropped silently; an unregistered target returns ErrNoTap
// rather than panicking in production use (callers that want the stricter
// "must already be wired" guarantee check HasTap during app init instead).
func (r *Router) Publish(target ioiface.TargetID, player uint8, event ioiface.InputEvent) error {
	if int(player) >= ioiface.MaxPlayers {
		return nil
	}
	tap, ok := r.taps[target]
	if !ok {
		return ErrNoTap
	}
	tap(player, event)
	return nil
}
