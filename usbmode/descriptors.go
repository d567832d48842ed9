package usbmode

// StringDescriptor indices.
const (
	StringIndexLanguage = iota
	StringIndexManufacturer
	StringIndexProduct
	StringIndexSerial
	StringIndexCDCData
	StringIndexCDCDebug
)

// genericHIDReportDescriptor is the fallback used when a mode declares no
// GetReportDescriptor. Its exact byte contents are an external
// collaborator's concern (the HID class driver); this package only needs a
// non-nil placeholder to dispatch to.
var genericHIDReportDescriptor = ReportDescriptor{0x05, 0x01, 0x09, 0x05, 0xC0}

// Dispatcher forwards the USB-device stack's descriptor/control callbacks
// to the active mode, substituting documented defaults when a mode leaves
// a capability nil.
type Dispatcher struct {
	mgr        *Manager
	boardID12  string // 12-hex-char board-unique-id serial
	manufNames [modeCount]string
	prodNames  [modeCount]string
}

// NewDispatcher binds mgr (whose Current() mode is dispatched to) and the
// board's unique-id serial string.
func NewDispatcher(mgr *Manager, boardID12 string) *Dispatcher {
	return &Dispatcher{mgr: mgr, boardID12: boardID12}
}

// SetModeStrings registers the manufacturer/product strings for id, used
// to answer string descriptor indices 1/2.
func (d *Dispatcher) SetModeStrings(id ID, manufacturer, product string) {
	if int(id) >= len(d.manufNames) {
		return
	}
	d.manufNames[id] = manufacturer
	d.prodNames[id] = product
}

// DeviceDescriptorCB forwards to the current mode's GetDeviceDescriptor.
func (d *Dispatcher) DeviceDescriptorCB() DeviceDescriptor {
	m := d.mgr.Current()
	if m == nil || m.GetDeviceDescriptor == nil {
		return nil
	}
	return m.GetDeviceDescriptor()
}

// ConfigurationDescriptorCB forwards to the current mode's
// GetConfigDescriptor.
func (d *Dispatcher) ConfigurationDescriptorCB() ConfigDescriptor {
	m := d.mgr.Current()
	if m == nil || m.GetConfigDescriptor == nil {
		return nil
	}
	return m.GetConfigDescriptor()
}

// HIDReportDescriptorCB forwards to the current mode's
// GetReportDescriptor, or the generic HID report descriptor if the mode
// left it nil.
func (d *Dispatcher) HIDReportDescriptorCB() ReportDescriptor {
	m := d.mgr.Current()
	if m != nil && m.GetReportDescriptor != nil {
		return m.GetReportDescriptor()
	}
	return genericHIDReportDescriptor
}

// AppDriverGetCB forwards to the current mode's GetClassDriver, or nil for
// "use the built-in HID class".
func (d *Dispatcher) AppDriverGetCB() ClassDriver {
	m := d.mgr.Current()
	if m == nil || m.GetClassDriver == nil {
		return nil
	}
	return m.GetClassDriver()
}

// StringDescriptorCB encodes the requested string index as UTF-16LE with a
// length-prefixed HID descriptor header. index 0 returns the
// USB language id (US English, 0x0409) rather than a string.
func (d *Dispatcher) StringDescriptorCB(index uint8) []byte {
	if index == StringIndexLanguage {
		return encodeUTF16LEDescriptor(string([]rune{0x0409}))
	}

	m := d.mgr.Current()
	var s string
	switch index {
	case StringIndexManufacturer:
		if m != nil {
			s = d.manufNames[m.ModeID]
		}
	case StringIndexProduct:
		if m != nil {
			s = d.prodNames[m.ModeID]
		}
	case StringIndexSerial:
		s = d.boardID12
	case StringIndexCDCData:
		s = "CDC Data"
	case StringIndexCDCDebug:
		s = "CDC Debug"
	default:
		return nil
	}
	return encodeUTF16LEDescriptor(s)
}

// encodeUTF16LEDescriptor builds a HID-style string descriptor: a one-byte
// total length, a one-byte descriptor type (0x03), followed by UTF-16LE
// code units. Only handles the BMP (board id / vendor strings are ASCII),
// matching what every mode in this registry actually needs.
func encodeUTF16LEDescriptor(s string) []byte {
	runes := []rune(s)
	out := make([]byte, 2+2*len(runes))
	out[0] = byte(len(out))
	out[1] = 0x03
	for i, r := range runes {
		out[2+2*i] = byte(r)
		out[2+2*i+1] = byte(r >> 8)
	}
	return out
}

// GetReportCB forwards GET_REPORT requests (feature reports, used by
// PS3/PS4 auth handshakes) to the current mode, if it implements one.
func (d *Dispatcher) GetReportCB(id uint8, reportType uint8, reqLen int) ([]byte, bool) {
	m := d.mgr.Current()
	if m == nil || m.GetReport == nil {
		return nil, false
	}
	return m.GetReport(id, reportType, reqLen)
}

// SetReportCB forwards output reports (rumble/LED) to the current mode's
// HandleOutput, if present.
func (d *Dispatcher) SetReportCB(reportID uint8, buf []byte) error {
	m := d.mgr.Current()
	if m == nil || m.HandleOutput == nil {
		return nil
	}
	return m.HandleOutput(reportID, buf)
}
