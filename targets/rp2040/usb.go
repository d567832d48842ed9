//go:build rp2040

package main

import (
	"machine"
)

// InitUSB initializes USB CDC communication used for the configuration
// console. TinyGo sets up USB CDC-ACM on RP2040 automatically; the HID
// gamepad-report path the active usbmode.Mode speaks is a separate USB
// function owned by the board's USB descriptor stack, out of scope here.
func InitUSB() {
	err := machine.Serial.Configure(machine.UARTConfig{})
	if err != nil {
		return
	}
}

// USBAvailable returns the number of bytes available to read from the CDC
// configuration console.
func USBAvailable() int {
	return machine.Serial.Buffered()
}

// USBRead reads a single byte from the CDC configuration console.
func USBRead() (byte, error) {
	return machine.Serial.ReadByte()
}

// USBWriteBytes writes multiple bytes to the CDC configuration console.
func USBWriteBytes(data []byte) (int, error) {
	return machine.Serial.Write(data)
}
