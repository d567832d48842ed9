package consolesink

import "padcore/protocol"

// Sink forwards telemetry frames to the configuration console over a
// CRC16 sync-framed transport, reusing the transport's SendCommand with
// the frame ids declared in registry.go in place of a response id.
type Sink struct {
	transport *protocol.Transport
}

// NewSink wraps an already-constructed transport. The transport's
// output buffer determines where encoded frames are written (USB CDC
// in production, a scratch buffer in tests).
func NewSink(transport *protocol.Transport) *Sink {
	return &Sink{transport: transport}
}

// SendProfileState reports the active profile for one player and
// whether a combo is currently armed.
func (s *Sink) SendProfileState(player uint8, profileIndex int, comboArmed bool) {
	s.transport.SendCommand(FrameProfileState, func(out protocol.OutputBuffer) {
		protocol.EncodeVLQUint(out, uint32(player))
		protocol.EncodeVLQInt(out, int32(profileIndex))
		protocol.EncodeVLQUint(out, boolToUint32(comboArmed))
	})
}

// SendModeStatus reports the active USB emulation mode and whether its
// device-mode task has finished enumerating.
func (s *Sink) SendModeStatus(modeID uint32, ready bool) {
	s.transport.SendCommand(FrameModeStatus, func(out protocol.OutputBuffer) {
		protocol.EncodeVLQUint(out, modeID)
		protocol.EncodeVLQUint(out, boolToUint32(ready))
	})
}

// SendComboEvent reports a combo rule firing (or releasing) for one
// player.
func (s *Sink) SendComboEvent(player uint8, ruleIndex int, fired bool) {
	s.transport.SendCommand(FrameComboEvent, func(out protocol.OutputBuffer) {
		protocol.EncodeVLQUint(out, uint32(player))
		protocol.EncodeVLQInt(out, int32(ruleIndex))
		protocol.EncodeVLQUint(out, boolToUint32(fired))
	})
}

func boolToUint32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// DecodeProfileState decodes a profile_state frame body, the host-side
// counterpart of SendProfileState.
func DecodeProfileState(data []byte) (player uint8, profileIndex int, comboArmed bool, err error) {
	p, err := protocol.DecodeVLQUint(&data)
	if err != nil {
		return 0, 0, false, err
	}
	idx, err := protocol.DecodeVLQInt(&data)
	if err != nil {
		return 0, 0, false, err
	}
	armed, err := protocol.DecodeVLQUint(&data)
	if err != nil {
		return 0, 0, false, err
	}
	return uint8(p), int(idx), armed != 0, nil
}

// DecodeModeStatus decodes a mode_status frame body.
func DecodeModeStatus(data []byte) (modeID uint32, ready bool, err error) {
	id, err := protocol.DecodeVLQUint(&data)
	if err != nil {
		return 0, false, err
	}
	r, err := protocol.DecodeVLQUint(&data)
	if err != nil {
		return 0, false, err
	}
	return id, r != 0, nil
}

// EncodeSetMode builds the argument writer for a set_mode command: the
// host requests the given USB emulation mode become active.
func EncodeSetMode(modeID uint32) func(out protocol.OutputBuffer) {
	return func(out protocol.OutputBuffer) {
		protocol.EncodeVLQUint(out, modeID)
	}
}

// DecodeSetMode decodes a set_mode command body.
func DecodeSetMode(data []byte) (modeID uint32, err error) {
	return protocol.DecodeVLQUint(&data)
}

// EncodeSetProfile builds the argument writer for a set_profile command:
// the host requests player's active profile become profileIndex.
func EncodeSetProfile(player uint8, profileIndex int) func(out protocol.OutputBuffer) {
	return func(out protocol.OutputBuffer) {
		protocol.EncodeVLQUint(out, uint32(player))
		protocol.EncodeVLQInt(out, int32(profileIndex))
	}
}

// DecodeSetProfile decodes a set_profile command body.
func DecodeSetProfile(data []byte) (player uint8, profileIndex int, err error) {
	p, err := protocol.DecodeVLQUint(&data)
	if err != nil {
		return 0, 0, err
	}
	idx, err := protocol.DecodeVLQInt(&data)
	if err != nil {
		return 0, 0, err
	}
	return uint8(p), int(idx), nil
}

// DecodeComboEvent decodes a combo_event frame body.
func DecodeComboEvent(data []byte) (player uint8, ruleIndex int, fired bool, err error) {
	p, err := protocol.DecodeVLQUint(&data)
	if err != nil {
		return 0, 0, false, err
	}
	idx, err := protocol.DecodeVLQInt(&data)
	if err != nil {
		return 0, 0, false, err
	}
	f, err := protocol.DecodeVLQUint(&data)
	if err != nil {
		return 0, 0, false, err
	}
	return uint8(p), int(idx), f != 0, nil
}
