//go:build rp2040

package main

import (
	"machine"

	"padcore/ioiface"
)

// Stick/trigger ADC pins. RP2040 exposes four ADC-capable GPIOs
// (26-29); this board wires all four to the left/right stick axes and
// wires no trigger inputs (buttonPins carries no L2/R2 bit either).
const (
	pinStickLX = uint32(machine.ADC0)
	pinStickLY = uint32(machine.ADC1)
	pinStickRX = uint32(machine.ADC2)
	pinStickRY = uint32(machine.ADC3)
)

// I2C pins for the ADXL345 accelerometer.
const (
	pinI2CSDA = machine.GPIO4
	pinI2CSCL = machine.GPIO5
)

// WS2812 player-LED data pin.
const pinLEDData = machine.GPIO2

// Digital button pins, one GPIO per abstract button bit, pulled up and
// active-low.
var buttonPins = []struct {
	pin machine.Pin
	bit uint32
}{
	{machine.GPIO6, ioiface.BtnDPadUp},
	{machine.GPIO7, ioiface.BtnDPadDown},
	{machine.GPIO8, ioiface.BtnDPadLeft},
	{machine.GPIO9, ioiface.BtnDPadRight},
	{machine.GPIO10, ioiface.BtnB1},
	{machine.GPIO11, ioiface.BtnB2},
	{machine.GPIO12, ioiface.BtnB3},
	{machine.GPIO13, ioiface.BtnB4},
}

func configureButtonPins() {
	for _, b := range buttonPins {
		b.pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	}
}

// readButtons samples every configured button pin into the abstract
// button bitset. Active-low: a grounded pin sets its bit.
func readButtons() uint32 {
	var bits uint32
	for _, b := range buttonPins {
		if !b.pin.Get() {
			bits |= b.bit
		}
	}
	return bits
}
