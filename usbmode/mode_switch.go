package usbmode

import "padcore/ioiface"

// switchButtonBits is the abstract-button→wire-bit convention for the
// Switch Pro Controller HID report, following the standard Pro Controller
// layout (B1→B at bit 1, B2→A at bit 0, and so on).
var switchButtonBits = map[uint32]uint16{
	ioiface.BtnB1: 0x0002, // B
	ioiface.BtnB2: 0x0001, // A
	ioiface.BtnB3: 0x0008, // Y
	ioiface.BtnB4: 0x0004, // X
	ioiface.BtnL1: 0x0040,
	ioiface.BtnR1: 0x0080,
	ioiface.BtnL2: 0x0100,
	ioiface.BtnR2: 0x0200,
	ioiface.BtnS1: 0x0400, // -
	ioiface.BtnS2: 0x0800, // +
	ioiface.BtnL3: 0x1000,
	ioiface.BtnR3: 0x2000,
	ioiface.BtnA1: 0x4000, // home
	ioiface.BtnA2: 0x8000, // capture
}

// switchWireButtons converts the abstract button bitset into the Switch
// report's 16-bit wire button field.
func switchWireButtons(buttons uint32) uint16 {
	var wire uint16
	for abstract, bit := range switchButtonBits {
		if buttons&abstract != 0 {
			wire |= bit
		}
	}
	return wire
}

// SwitchIdentity resolves the VID/PID ambiguity across Switch-compatible
// pads: multiple divergent identities (Pokken, HORIPAD S, the real Pro
// Controller) exist in the wild, so this module exposes the choice instead
// of hard-coding one (see DESIGN.md).
type SwitchIdentity struct {
	Name string
	VID  uint16
	PID  uint16
}

var (
	SwitchIdentityProController = SwitchIdentity{Name: "Pro Controller", VID: 0x057E, PID: 0x2009}
	SwitchIdentityPokken        = SwitchIdentity{Name: "Pokken Tournament DX Pro Pad", VID: 0x0F0D, PID: 0x0092}
	SwitchIdentityHORIPADS      = SwitchIdentity{Name: "HORIPAD S", VID: 0x0F0D, PID: 0x00F6}
)

// NewSwitchMode builds the Switch Pro Controller mode. identity
// selects which of the divergent VID/PID pairs to report.
func NewSwitchMode(identity SwitchIdentity) *Mode {
	descriptor := buildSwitchDeviceDescriptor(identity)

	return &Mode{
		Name:       "Switch Pro Controller",
		ModeID:     ModeSwitchPro,
		ReportSize: 8,
		GetDeviceDescriptor: func() DeviceDescriptor {
			return descriptor
		},
		GetConfigDescriptor: func() ConfigDescriptor {
			return ConfigDescriptor{0x09, 0x02} // minimal placeholder config header
		},
		Init:    func() error { return nil },
		IsReady: func() bool { return true },
		SendReport: func(player uint8, event ioiface.InputEvent, out ioiface.ProfileOutput, buttons uint32) ([]byte, bool) {
			wire := switchWireButtons(buttons)
			hat := EncodeDPadHat(buttons)

			report := make([]byte, 8)
			report[0] = byte(wire)
			report[1] = byte(wire >> 8)
			report[2] = hat
			report[3] = out.Analog[ioiface.AxisLX]
			report[4] = out.Analog[ioiface.AxisLY]
			report[5] = out.Analog[ioiface.AxisRX]
			report[6] = out.Analog[ioiface.AxisRY]
			report[7] = 0x00 // vendor byte, unused by this mode
			return report, true
		},
	}
}

func buildSwitchDeviceDescriptor(identity SwitchIdentity) DeviceDescriptor {
	d := make(DeviceDescriptor, 18)
	d[0] = 18   // bLength
	d[1] = 0x01 // bDescriptorType = DEVICE
	d[8] = byte(identity.VID)
	d[9] = byte(identity.VID >> 8)
	d[10] = byte(identity.PID)
	d[11] = byte(identity.PID >> 8)
	return d
}
