//go:build tinygo

package piobitbang

import (
	"machine"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"

	"padcore/ioiface"
)

// buildShiftProgram assembles a PIO program that clocks out one data
// bit per pulled command word, shifted out MSB first: the high byte
// carries the clock hold time in cycles and the bit below it (bit 23)
// carries the bit value. Structured exactly
// like this firmware's step-pulse generator (pull, unpack fields,
// pulse a pin, loop on a delay counter), with the pulse re-purposed as
// a serial clock edge instead of a stepper step.
func buildShiftProgram() []uint16 {
	asm := rp2pio.AssemblerV0{SidesetBits: 0}
	return []uint16{
		// .wrap_target
		asm.Pull(false, true).Encode(),        // 0: pull block
		asm.Out(rp2pio.OutDestY, 8).Encode(),   // 1: out y, 8 (clock hold cycles)
		asm.Out(rp2pio.OutDestPins, 1).Encode(), // 2: out pins, 1 (data bit, held on the data pin)
		asm.Set(rp2pio.SetDestPins, 1).Delay(7).Encode(), // 3: set pins, 1 [7] (clock high)
		// hold_loop:
		asm.Jmp(4, rp2pio.JmpYNZeroDec).Encode(), // 4: jmp y--, 4 (hold the clock high)
		asm.Set(rp2pio.SetDestPins, 0).Encode(),  // 5: set pins, 0 (clock low)
		// .wrap
	}
}

const shiftPIOOrigin = 0

// pioWriter adapts an rp2-pio state machine's TX FIFO to the bit-level
// protocol buildShiftProgram expects, and implements FIFOWriter by
// fanning one 32-bit frame word out into thirty-two one-bit pushes.
type pioWriter struct {
	sm          rp2pio.StateMachine
	delayCycles uint8
}

func (w pioWriter) Full() bool { return w.sm.IsTxFIFOFull() }

func (w pioWriter) Put(word uint32) {
	for bit := 31; bit >= 0; bit-- {
		cmd := uint32(w.delayCycles) << 24
		if word&(1<<uint(bit)) != 0 {
			cmd |= 1 << 23
		}
		for w.sm.IsTxFIFOFull() {
		}
		w.sm.TxPut(cmd)
	}
}

// NewPIOOutput wires a piobitbang Output to a real PIO state machine:
// dataPin carries the bit value, clockPin pulses once per bit.
func NewPIOOutput(name string, target ioiface.TargetID, apply Applier, frame FrameFunc, pioNum, smNum uint8, dataPin, clockPin uint8) (*Output, error) {
	var pioHW *rp2pio.PIO
	if pioNum == 0 {
		pioHW = rp2pio.PIO0
	} else {
		pioHW = rp2pio.PIO1
	}
	sm := pioHW.StateMachine(smNum)
	sm.TryClaim()

	program := buildShiftProgram()
	offset, err := pioHW.AddProgram(program, shiftPIOOrigin)
	if err != nil {
		return nil, err
	}

	data := machine.Pin(dataPin)
	clock := machine.Pin(clockPin)
	data.Configure(machine.PinConfig{Mode: pioHW.PinMode()})
	clock.Configure(machine.PinConfig{Mode: pioHW.PinMode()})

	cfg := rp2pio.DefaultStateMachineConfig()
	cfg.SetOutPins(data, 1)
	cfg.SetSetPins(clock, 1)
	cfg.SetOutShift(false, false, 32)
	cfg.SetWrap(offset+uint8(len(program))-1, offset)
	cfg.SetClkDivIntFrac(1000, 0)

	sm.Init(offset, cfg)
	sm.SetPindirsConsecutive(data, 1, true)
	sm.SetPindirsConsecutive(clock, 1, true)
	sm.SetEnabled(true)

	out := New(name, target, apply, frame, pioWriter{sm: sm, delayCycles: 10})
	return out, nil
}
