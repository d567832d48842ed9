//go:build tinygo

package bitbangspi

import "machine"

// machinePin adapts machine.Pin to OutPin and InPin.
type machinePin struct{ pin machine.Pin }

func (p machinePin) Set(v bool) { p.pin.Set(v) }
func (p machinePin) Get() bool  { return p.pin.Get() }

// NewMachineBus configures sclk/mosi/miso as GPIO and returns a Bus
// driving them, the on-device counterpart to NewBus with fakes.
func NewMachineBus(sclk, mosi, miso machine.Pin, mode Mode, rate uint32) (*Bus, error) {
	sclk.Configure(machine.PinConfig{Mode: machine.PinOutput})
	mosi.Configure(machine.PinConfig{Mode: machine.PinOutput})
	miso.Configure(machine.PinConfig{Mode: machine.PinInput})

	return NewBus(machinePin{sclk}, machinePin{mosi}, machinePin{miso}, mode, rate)
}
