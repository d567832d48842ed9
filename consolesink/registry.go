// Package consolesink is the telemetry sink for the CDC configuration
// console: a response registry that declares the wire shape of the
// frames this firmware emits (profile_state, mode_status, combo_event),
// wrapped in tinycompress's zlib stream format (stored blocks). The host
// companion tool in cmd/padctl does not decode it. Grounded on a dictionary/response-
// registry pattern, with the bootstrap-specific members (identify,
// get_config, finalize_config, allocate_oids) dropped: this firmware's
// only host-facing channel is the CDC console, not a live 1kHz command
// stream, so there is nothing to bootstrap a clock/OID table for.
package consolesink

import (
	"encoding/json"

	"padcore/tinycompress"
)

// Frame ids. Stable across firmware builds so a host companion tool
// built against an older dictionary can still recognize known frames.
const (
	FrameProfileState uint16 = 1
	FrameModeStatus   uint16 = 2
	FrameComboEvent   uint16 = 3
)

// Command ids the console accepts from the host, on the same
// SendCommand/Transport machinery the telemetry frames ride on. These
// live above the frame ids so a single id space can't collide.
const (
	CommandSetMode    uint16 = 128
	CommandSetProfile uint16 = 129
)

// frameSchema describes one frame's name and field layout for the
// dictionary sent to the host; purely descriptive, the wire encoding
// itself is fixed Go code in sink.go.
type frameSchema struct {
	ID     uint16   `json:"id"`
	Fields []string `json:"fields"`
}

// Registry is the frame-name table this firmware exposes to a host
// companion tool, analogous to the dictionary's command/response maps
// but scoped to telemetry frames only.
type Registry struct {
	frames map[string]frameSchema
}

// NewRegistry returns the fixed registry of this firmware's telemetry
// frames.
func NewRegistry() *Registry {
	return &Registry{frames: map[string]frameSchema{
		"profile_state": {ID: FrameProfileState, Fields: []string{"player", "profile_index", "combo_armed"}},
		"mode_status":   {ID: FrameModeStatus, Fields: []string{"mode_id", "ready"}},
		"combo_event":   {ID: FrameComboEvent, Fields: []string{"player", "rule_index", "fired"}},
	}}
}

// Build renders the registry as a JSON blob in a zlib stream (stored
// blocks, via tinycompress).
func (r *Registry) Build() ([]byte, error) {
	raw, err := json.Marshal(r.frames)
	if err != nil {
		return nil, err
	}
	enc := tinycompress.NewZlib(len(raw) + 64)
	compressed, _, err := enc.Compress(raw)
	if err != nil {
		return nil, err
	}
	return compressed, nil
}
