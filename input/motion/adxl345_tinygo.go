//go:build tinygo

package motion

import (
	"machine"

	"tinygo.org/x/drivers/adxl345"
)

// NewADXL345Reader configures an ADXL345 accelerometer on i2c and
// returns a Reader that pulls its raw acceleration on every call. The
// bus must already be at the frequency the sensor expects (400kHz).
func NewADXL345Reader(i2c *machine.I2C) Reader {
	sensor := adxl345.New(i2c)
	sensor.Configure()
	sensor.SetRate(adxl345.RATE_0_78HZ)
	sensor.SetRange(adxl345.RANGE_16G)

	return func() (int16, int16, int16, bool) {
		x, y, z := sensor.ReadRawAcceleration()
		return x, y, z, true
	}
}
