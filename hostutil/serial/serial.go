// Package serial is the host-side companion CLI's transport to the
// board's CDC configuration console. Reused from this firmware's serial
// transport almost verbatim; only the default baud rate's framing
// changed, since this console has no fixed protocol baud to match (USB
// CDC ignores it).
package serial

import "io"

// Port represents a serial port interface. This abstraction allows for
// different implementations:
//   - Native serial (using github.com/tarm/serial)
//   - WebSerial (for TinyGo WASM builds)
//   - Mock serial (for testing)
type Port interface {
	io.ReadWriteCloser

	// Flush flushes any buffered data.
	Flush() error
}

// Config holds serial port configuration.
type Config struct {
	// Device path (e.g., "/dev/ttyACM0", "COM3").
	Device string

	// Baud rate. USB CDC ignores this in practice; kept for ports that
	// do honor it.
	Baud int

	// Read timeout in milliseconds (0 = blocking).
	ReadTimeout int
}

// DefaultConfig returns a default configuration for device.
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        115200,
		ReadTimeout: 100,
	}
}
