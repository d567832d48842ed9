// Package bitbangspi is an example output backend (C5) for a native
// console pad wired over a bit-banged SPI link instead of USB. Grounded
// on this firmware's GPIO software-SPI driver: clock and data lines
// toggled directly instead of a hardware SPI peripheral, with CPOL/CPHA
// derived from the SPI mode and a half-period delay computed from the
// requested clock rate.
package bitbangspi

import (
	"errors"
	"time"
)

var errInvalidMode = errors.New("bitbangspi: invalid SPI mode")
var errInvalidProfile = errors.New("bitbangspi: invalid profile index")

// OutPin is the minimal GPIO write capability this package needs,
// satisfied by machine.Pin on-device and a fake in host tests.
type OutPin interface {
	Set(bool)
}

// InPin is the minimal GPIO read capability this package needs.
type InPin interface {
	Get() bool
}

// Mode is an SPI clock polarity/phase mode, numbered the conventional
// way: 0 = idle low/sample first edge, 1 = idle low/sample second edge,
// 2 = idle high/sample first edge, 3 = idle high/sample second edge.
type Mode uint8

// Bus is one bit-banged SPI link.
type Bus struct {
	sclk OutPin
	mosi OutPin
	miso InPin

	cpol bool
	cpha bool

	halfPeriod time.Duration
	sleep      func(time.Duration)
}

// NewBus configures a Bus at rate Hz (0 defaults to 100kHz) in mode.
func NewBus(sclk, mosi OutPin, miso InPin, mode Mode, rate uint32) (*Bus, error) {
	b := &Bus{sclk: sclk, mosi: mosi, miso: miso, sleep: time.Sleep}

	switch mode {
	case 0:
		b.cpol, b.cpha = false, false
	case 1:
		b.cpol, b.cpha = false, true
	case 2:
		b.cpol, b.cpha = true, false
	case 3:
		b.cpol, b.cpha = true, true
	default:
		return nil, errInvalidMode
	}

	if rate > 0 {
		b.halfPeriod = time.Duration(500000000/rate) * time.Nanosecond
	} else {
		b.halfPeriod = 5 * time.Microsecond
	}

	b.sclk.Set(b.cpol)
	b.mosi.Set(false)
	return b, nil
}

// setSleep overrides the inter-edge delay hook; used by tests to run
// instantly instead of sleeping for real clock periods.
func (b *Bus) setSleep(fn func(time.Duration)) {
	b.sleep = fn
}

// Transfer clocks out tx and clocks in the same-length response.
func (b *Bus) Transfer(tx []byte) ([]byte, error) {
	rx := make([]byte, len(tx))
	for i, txByte := range tx {
		rx[i] = b.transferByte(txByte)
	}
	return rx, nil
}

func (b *Bus) transferByte(txByte byte) byte {
	var rxByte byte
	clock := b.cpol

	for bit := 7; bit >= 0; bit-- {
		b.mosi.Set(txByte&(1<<uint(bit)) != 0)

		if !b.cpha && b.miso != nil && b.miso.Get() {
			rxByte |= 1 << uint(bit)
		}

		clock = !clock
		b.sclk.Set(clock)
		b.sleep(b.halfPeriod)

		if b.cpha && b.miso != nil && b.miso.Get() {
			rxByte |= 1 << uint(bit)
		}

		clock = !clock
		b.sclk.Set(clock)
		b.sleep(b.halfPeriod)
	}

	return rxByte
}
