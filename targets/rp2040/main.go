//go:build rp2040

package main

import (
	"machine"
	"time"

	"padcore/app"
	"padcore/consolesink"
	"padcore/core"
	"padcore/feedback"
	"padcore/flashstore"
	"padcore/input/motion"
	"padcore/input/nativeanalog"
	"padcore/ioiface"
	"padcore/player"
	"padcore/profile"
	"padcore/protocol"
	"padcore/router"
	"padcore/usbmode"
)

// TargetPrimary is the only output target this board enumerates: the
// standard USB-device mode the host enumerates over USB HID. Boards with
// a second, native-console output (see targets/rp2350) add more targets.
const TargetPrimary ioiface.TargetID = 0

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

// applyProfile is the usbmode.Applier this board's manager is driven
// with: it runs the profile engine, then checks for a combo firing on
// the remapped button state.
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

// handleConfigCommand dispatches commands arriving on the CDC
// configuration console: requests to switch USB mode or active profile.
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

// pollCDC drains whatever the host has sent on the configuration console
// into the transport, one byte at a time the way USBRead hands them back.
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
	InitClock()
	core.TimerInit()
	configureButtonPins()

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

	// The real USB-device enumeration/descriptor stack and its pump are
	// external collaborators this firmware core does not own; this
	// board's pump is a no-op, leaving Manager.Task to only run the
	// profile/combo applier against whatever arrived on the router.
	manager = usbmode.NewManager(registry, func() {})
	manager.SetCurrent(registry.Resolve(usbmode.ID(rec.USBOutputMode)))

	dispatcher := usbmode.NewDispatcher(manager, boardUniqueID12())
	dispatcher.SetModeStrings(usbmode.ModeSwitchPro, "Nintendo Co., Ltd.", switchMode.Name)
	_ = dispatcher // bound to the board's USB-stack descriptor callbacks, owned outside this package

	rt := router.New()
	if err := rt.SetTap(TargetPrimary, manager.Publish); err != nil {
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
		Outputs: func() []ioiface.Output { return nil },
	}, playerMgr, fb, store)
	firmware.SetStorageFlush(func() {
		if got, ok := store.Load(); !ok || got != persisted {
			_ = store.SaveNow(persisted)
		}
	})

	if err := firmware.Init(); err != nil {
		return
	}

	for {
		UpdateSystemTime()
		pollCDC()
		firmware.Tick(core.GetTime())
	}
}
