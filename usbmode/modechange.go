package usbmode

import (
	"errors"

	"padcore/flashstore"
)

// ErrUnsupportedMode is returned when the requested target id is not in
// the registry.
var ErrUnsupportedMode = errors.New("usbmode: target id is not registered")

// Watchdog is the board's arm-and-spin reset primitive. A host-side
// test or dry-run build supplies a no-op.
type Watchdog func()

// RequestModeChange runs the mode-change protocol: validate,
// persist, verify, then arm the watchdog and spin for reset. It never
// actually calls Watchdog until persistence is verified, so a flash write
// failure leaves the current mode running.
func RequestModeChange(registry *Registry, store *flashstore.Store, current flashstore.Record, target ID, wd Watchdog) error {
	if !registry.Has(target) {
		return ErrUnsupportedMode
	}

	next := current
	next.USBOutputMode = uint8(target)

	if err := store.SaveNow(next); err != nil {
		return err
	}

	// SaveNow already verifies by re-reading internally; re-check the
	// specific field here too since that's the externally observable
	// contract callers assert on.
	got, ok := store.Load()
	if !ok || got.USBOutputMode != uint8(target) {
		return errors.New("usbmode: persisted mode did not verify after save")
	}

	if wd != nil {
		wd()
	}
	return nil
}
