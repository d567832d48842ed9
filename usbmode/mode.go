// Package usbmode implements the USB-device mode manager: a polymorphic
// dispatch layer that swaps the device's entire USB identity at boot based
// on a persisted mode selection. It generalizes this module's OID-indexed
// driver registry from "bus driver instances" to "USB identities", and its
// string-table assembly to USB string descriptors.
package usbmode

import "padcore/ioiface"

// ID identifies one registered mode.
type ID uint8

// The supported console/host USB identities. Values double as the
// persisted usb_output_mode byte in the flash record.
const (
	ModeHIDDInput ID = iota
	ModeXboxOriginal
	ModeXInput
	ModeDualShock3
	ModeDualShock4
	ModeSwitchPro
	ModePSClassic
	ModeXboxOneGIP
	ModeXAC
	ModeKeyboardMouse
	ModeGCAdapter

	modeCount // sentinel, not a real mode
)

// DeviceDescriptor and ConfigDescriptor are opaque wire-format blobs this
// package never interprets; modes own their byte layout.
type DeviceDescriptor []byte
type ConfigDescriptor []byte
type ReportDescriptor []byte

// SendReportFunc builds and (in a real build) transmits the wire report for
// one player. It returns the bytes actually sent and whether the mode was
// ready to send.
type SendReportFunc func(player uint8, event ioiface.InputEvent, out ioiface.ProfileOutput, buttons uint32) (report []byte, ok bool)

// ClassDriver is an opaque substitute for the built-in HID class driver,
// used by modes such as XInput, Xbox OG XID, Xbox One GIP, and the GC
// adapter's vendor class. Its shape is intentionally left to the USB stack
// binding; this package only tracks presence/absence.
type ClassDriver interface {
	Name() string
}

// Mode is the capability set a USB-device mode exposes.
// Every function field marked optional below may be nil; a nil optional
// capability means that feature is silently disabled for the mode — never a fatal error.
type Mode struct {
	Name   string
	ModeID ID

	// ReportSize is the mode's declared wire-report size in bytes. The
	// package tests compare it with SendReport's output; Manager and
	// Registry do not check it.
	ReportSize int

	GetDeviceDescriptor func() DeviceDescriptor
	GetConfigDescriptor func() ConfigDescriptor

	// GetReportDescriptor is optional; nil ⇒ use the generic HID report
	// descriptor.
	GetReportDescriptor func() ReportDescriptor

	// GetClassDriver is optional; nil ⇒ built-in HID class driver.
	GetClassDriver func() ClassDriver

	Init func() error

	// Task is optional; called once per manager tick if present.
	Task func()

	IsReady func() bool

	// SendReport is required: every registered mode must be able to
	// produce a wire report.
	SendReport SendReportFunc

	// HandleOutput is optional: feedback/output-report ingestion (rumble,
	// LED color) from the host.
	HandleOutput func(reportID uint8, buf []byte) error

	// GetReport is optional: HID GET_REPORT feature-report support (used
	// by PS3/PS4 auth handshakes).
	GetReport func(id uint8, reportType uint8, reqLen int) ([]byte, bool)

	// GetRumble is the scalar feedback fallback.
	GetRumble func() (uint8, bool)

	// GetFeedback is the richer feedback pull.
	GetFeedback func() (ioiface.OutputFeedback, bool)

	// ForceFullSpeed marks USB 1.1-only modes (Xbox Original XID) that
	// must force full-speed enumeration rather than auto-negotiating high
	// speed.
	ForceFullSpeed bool
}
