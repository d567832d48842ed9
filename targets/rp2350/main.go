//go:build rp2350

package main

import (
	"machine"
	"time"

	"padcore/app"
	"padcore/consolesink"
	"padcore/core"
	"padcore/dualcore"
	"padcore/feedback"
	"padcore/flashstore"
	"padcore/input/motion"
	"padcore/input/nativeanalog"
	"padcore/ioiface"
	"padcore/output/bitbangspi"
	"padcore/output/piobitbang"
	"padcore/player"
	"padcore/profile"
	"padcore/protocol"
	"padcore/router"
	"padcore/usbmode"
)

// This board enumerates two native console outputs in addition to the
// USB-device mode, exercising both Core-0-inline and Core-1-owned output
// backends in the same build.
const (
	TargetPrimary ioiface.TargetID = 0
	TargetSPIPad  ioiface.TargetID = 1
	TargetPIOPad  ioiface.TargetID = 2
)

var (
	cdcOutput    *protocol.ScratchOutput
	cdcTransport *protocol.Transport
	cdcInput     = protocol.NewFifoBuffer(256)
	sink         *consolesink.Sink

	registry *usbmode.Registry
	manager  *usbmode.Manager
	store    *flashstore.Store

	persisted  flashstore.Record
	profileIdx int
	combos     [ioiface.MaxPlayers]profile.ComboTracker

	msgerrors uint32
)

func requestReset() {
	if err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 100}); err != nil {
		return
	}
	if err := machine.Watchdog.Start(); err != nil {
		return
	}
	for {
		time.Sleep(1 * time.Millisecond)
	}
}

func currentProfile() *profile.Profile {
	if profileIdx < 0 || profileIdx >= flashstore.MaxProfileSlots {
		return nil
	}
	slot := persisted.Slots[profileIdx]
	return &profile.Profile{Sensitivity: slot.Sensitivity, Flags: profile.Flags(slot.Flags)}
}

// applyProfile is shared by the mode manager and both native console
// outputs: every collaborator in this firmware that needs to turn a raw
// input_event into a profile_output uses the identical function value.
func applyProfile(player uint8, in ioiface.InputEvent) (ioiface.ProfileOutput, uint32) {
	prof := currentProfile()
	out := profile.Apply(nil, prof, in)

	if prof != nil && int(player) < len(combos) {
		if rule, fired := profile.DetectCombo(prof, &combos[player], out.Buttons, core.GetTime()); fired {
			if rule.Action.IsSwitch {
				profileIdx = rule.Action.SwitchToProfile
				persisted.ActiveProfileIndex = uint8(profileIdx)
			} else {
				out.Buttons |= rule.Action.SynthesizeButton
			}
			ruleIdx := -1
			for i := range prof.Combos {
				if prof.Combos[i] == rule {
					ruleIdx = i
					break
				}
			}
			if sink != nil {
				sink.SendComboEvent(player, ruleIdx, fired)
			}
		}
	}
	return out, out.Buttons
}

func handleConfigCommand(cmdID uint16, data *[]byte) error {
	switch cmdID {
	case consolesink.CommandSetMode:
		modeID, err := consolesink.DecodeSetMode(*data)
		if err != nil {
			return err
		}
		return usbmode.RequestModeChange(registry, store, persisted, usbmode.ID(modeID), requestReset)
	case consolesink.CommandSetProfile:
		_, idx, err := consolesink.DecodeSetProfile(*data)
		if err != nil {
			return err
		}
		if idx >= 0 && idx < flashstore.MaxProfileSlots {
			profileIdx = idx
			persisted.ActiveProfileIndex = uint8(idx)
		}
	}
	return nil
}

func flushCDC() {
	result := cdcOutput.Result()
	if len(result) == 0 {
		return
	}
	written := 0
	for written < len(result) {
		n, err := USBWriteBytes(result[written:])
		if err != nil || n == 0 {
			return
		}
		written += n
	}
	cdcOutput.Reset()
}

func pollCDC() {
	for USBAvailable() > 0 {
		b, err := USBRead()
		if err != nil {
			msgerrors++
			return
		}
		cdcInput.Write([]byte{b})
	}
	if cdcInput.Available() > 0 {
		cdcTransport.Receive(cdcInput)
	}
}

func main() {
	InitUSB()
	InitDebugUART()
	InitClock()
	core.TimerInit()
	configureButtonPins()
	DebugPrintln("padcore rp2350 boot")

	registry = usbmode.NewRegistry()
	switchMode := usbmode.NewSwitchMode(usbmode.SwitchIdentityProController)
	if err := registry.Register(switchMode); err != nil {
		return
	}
	registry.Freeze()

	store = flashstore.New(flashstore.NewMemSector(), nil)
	rec, ok := store.Load()
	if !ok {
		rec = flashstore.DefaultRecord()
	}
	persisted = rec
	profileIdx = int(rec.ActiveProfileIndex)

	manager = usbmode.NewManager(registry, func() {})
	manager.SetCurrent(registry.Resolve(usbmode.ID(rec.USBOutputMode)))

	dispatcher := usbmode.NewDispatcher(manager, boardUniqueID12())
	dispatcher.SetModeStrings(usbmode.ModeSwitchPro, "Nintendo Co., Ltd.", switchMode.Name)
	_ = dispatcher

	rt := router.New()
	if err := rt.SetTap(TargetPrimary, manager.Publish); err != nil {
		return
	}

	spiBus, err := bitbangspi.NewMachineBus(pinSPISCLK, pinSPIMOSI, pinSPIMISO, 0, 1_000_000)
	if err != nil {
		return
	}
	spiOutput := bitbangspi.New("spi-pad", TargetSPIPad, spiBus, applyProfile, nil)
	if err := rt.SetTap(TargetSPIPad, spiOutput.Publish); err != nil {
		return
	}

	pioOutput, err := piobitbang.NewPIOOutput("pio-pad", TargetPIOPad, applyProfile, nil, 0, 0, pinPIOData, pinPIOClock)
	if err != nil {
		return
	}
	if err := rt.SetTap(TargetPIOPad, pioOutput.Publish); err != nil {
		return
	}

	i2c := machine.I2C0
	if err := i2c.Configure(machine.I2CConfig{SDA: pinI2CSDA, SCL: pinI2CSCL}); err != nil {
		return
	}

	sticks := nativeanalog.New("sticks", 0, TargetPrimary, rt)
	sticks.SetPinSetup(nativeanalog.MachinePinSetup)
	sticks.SetButtons(readButtons)
	sampler := nativeanalog.MachineSampler()
	sticks.SetAxis(ioiface.AxisLX, pinStickLX, sampler, 0, 4095, false)
	sticks.SetAxis(ioiface.AxisLY, pinStickLY, sampler, 0, 4095, true)
	sticks.SetAxis(ioiface.AxisRX, pinStickRX, sampler, 0, 4095, false)
	sticks.SetAxis(ioiface.AxisRY, pinStickRY, sampler, 0, 4095, true)

	accel := motion.New("accel", 0, TargetPrimary, rt)
	accel.SetReader(motion.NewADXL345Reader(i2c))

	playerMgr := player.NewManager(player.NewWS2812Render(pinLEDData, ioiface.MaxPlayers))

	fb := feedback.New(
		func() (ioiface.OutputFeedback, bool) {
			if m := manager.Current(); m != nil && m.GetFeedback != nil {
				return m.GetFeedback()
			}
			return ioiface.OutputFeedback{}, false
		},
		func() (uint8, bool) {
			if m := manager.Current(); m != nil && m.GetRumble != nil {
				return m.GetRumble()
			}
			return 0, false
		},
		playerMgr.SetColor,
	)

	cdcOutput = protocol.NewScratchOutput()
	cdcTransport = protocol.NewTransport(cdcOutput, handleConfigCommand)
	cdcTransport.SetFlushCallback(flushCDC)
	sink = consolesink.NewSink(cdcTransport)

	outputs := []ioiface.Output{spiOutput, pioOutput}

	firmware := app.New(app.Hooks{
		Init: func() error {
			if err := sticks.Init(); err != nil {
				return err
			}
			return accel.Init()
		},
		Task: func() { manager.Task(applyProfile) },
		Inputs: func() []ioiface.Input {
			return []ioiface.Input{sticks, accel}
		},
		Outputs: func() []ioiface.Output { return outputs },
	}, playerMgr, fb, store)
	firmware.SetStorageFlush(func() {
		if got, ok := store.Load(); !ok || got != persisted {
			_ = store.SaveNow(persisted)
		}
	})

	if err := firmware.Init(); err != nil {
		DebugPrintln("app init failed")
		return
	}

	core1Task, err := dualcore.SelectTask(firmware.Outputs())
	if err != nil {
		DebugPrintln("dualcore: more than one output claimed Core 1; binding the first")
	}

	core1 := dualcore.New(dualcore.DefaultLauncher, dualcore.DefaultWaiter, dualcore.DefaultWaker, nil)
	core1.Launch()
	core1.AssignTask(core1Task)
	core1.Arm()

	for {
		UpdateSystemTime()
		pollCDC()
		firmware.Tick(core.GetTime())
	}
}
