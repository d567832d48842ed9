//go:build tinygo

package nativeanalog

import "machine"

// MachinePinSetup configures pin as an ADC input using TinyGo's machine
// package, suitable for SetPinSetup.
func MachinePinSetup(pin uint32) error {
	machine.InitADC()
	adc := machine.ADC{Pin: machine.Pin(pin)}
	return adc.Configure(machine.ADCConfig{})
}

// MachineSampler returns a Sampler reading pin through TinyGo's
// machine.ADC. TinyGo's ADC.Get() is a blocking single-shot read, so it
// is always ready.
func MachineSampler() Sampler {
	return func(pin uint32) (uint16, bool) {
		adc := machine.ADC{Pin: machine.Pin(pin)}
		return adc.Get(), true
	}
}
