package usbmode

import "errors"

// Registry is the fixed-size mode table, a fixed array indexed by mode id
// in the same OID-indexed style used elsewhere in this module for bus
// driver instances.
type Registry struct {
	modes [modeCount]*Mode
	built bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds mode to the registry. Calling Register after Freeze
// returns an error — the registry is populated once at startup and is
// read-only thereafter.
func (r *Registry) Register(mode *Mode) error {
	if r.built {
		return errors.New("usbmode: registry is frozen, cannot register after Freeze")
	}
	if int(mode.ModeID) >= len(r.modes) {
		return errors.New("usbmode: mode id out of range")
	}
	if mode.SendReport == nil {
		return errors.New("usbmode: mode must declare a non-nil SendReport")
	}
	r.modes[mode.ModeID] = mode
	return nil
}

// Freeze marks the registry immutable. Call once after all modes for this
// build are registered.
func (r *Registry) Freeze() {
	r.built = true
}

// Get returns the mode registered for id, or nil if none is registered.
func (r *Registry) Get(id ID) *Mode {
	if int(id) >= len(r.modes) {
		return nil
	}
	return r.modes[id]
}

// Has reports whether id is registered.
func (r *Registry) Has(id ID) bool {
	return r.Get(id) != nil
}

// DefaultMode is the mode selected when the persisted choice is absent or
// unsupported.
const DefaultMode ID = ModeHIDDInput

// Resolve returns the mode for persisted, falling back to DefaultMode if
// persisted is not registered.
func (r *Registry) Resolve(persisted ID) *Mode {
	if m := r.Get(persisted); m != nil {
		return m
	}
	return r.Get(DefaultMode)
}
