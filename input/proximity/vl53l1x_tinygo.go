//go:build tinygo

package proximity

import (
	"machine"

	"tinygo.org/x/drivers/vl53l1x"
)

// NewVL53L1XSensor wraps a TinyGo VL53L1X driver on i2c as a Sensor.
// use2v8Mode selects the sensor's 2.8V I/O mode, matching this
// firmware's other I2C backends leaving bus configuration to the
// caller.
func NewVL53L1XSensor(i2c *machine.I2C, use2v8Mode bool) Sensor {
	dev := vl53l1x.New(i2c)
	dev.Configure(use2v8Mode)
	dev.SetMeasurementTimingBudget(50000)
	return func() (uint16, bool) {
		distance := dev.Read(true)
		if distance >= 8190 {
			distance = 8190
		}
		return distance, true
	}
}
