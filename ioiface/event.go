// Package ioiface defines the contracts that input and output backends
// implement, and the normalized event/report types that flow between them.
package ioiface

// MaxPlayers bounds the player index space used across the pipeline.
const MaxPlayers = 4

// Abstract button ids. Active-high bits in InputEvent.Buttons.
const (
	BtnDPadUp uint32 = 1 << iota
	BtnDPadDown
	BtnDPadLeft
	BtnDPadRight
	BtnB1
	BtnB2
	BtnB3
	BtnB4
	BtnL1
	BtnR1
	BtnL2
	BtnR2
	BtnS1
	BtnS2
	BtnL3
	BtnR3
	BtnA1
	BtnA2
	BtnA3
	BtnA4
	BtnL4
	BtnR4
)

// Analog axis indices into InputEvent.Analog / ProfileOutput.Analog.
const (
	AxisLX = iota
	AxisLY
	AxisRX
	AxisRY
	AxisL2
	AxisR2
	AxisCount
)

// AnalogCenter is the rest value for stick axes; trigger axes rest at 0.
const AnalogCenter = 128

// InputEvent is the normalized, self-contained per-poll snapshot produced by
// one input backend for one player. No delta encoding: every event carries
// the full state.
type InputEvent struct {
	PlayerIndex uint8
	Buttons     uint32
	Analog      [AxisCount]uint8

	HasAccel bool
	Accel    [3]int16
	HasGyro  bool
	Gyro     [3]int16
	HasPress bool
	Pressure [12]uint8
}

// ProfileOutput is the post-remap result fed to a mode's report builder.
// Same shape as InputEvent; motion/pressure pass through unchanged.
type ProfileOutput struct {
	Buttons uint32
	Analog  [AxisCount]uint8

	HasAccel bool
	Accel    [3]int16
	HasGyro  bool
	Gyro     [3]int16
	HasPress bool
	Pressure [12]uint8
}

// OutputFeedback is the pull-model state read from the active output:
// rumble motor levels and the player LED color the host has requested.
type OutputFeedback struct {
	RumbleLeft  uint8
	RumbleRight uint8
	LEDPlayer   uint8
	LEDR        uint8
	LEDG        uint8
	LEDB        uint8
	Dirty       bool
}

// TargetID identifies an output destination.
type TargetID uint8
