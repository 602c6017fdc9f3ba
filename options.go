package hrs

import (
	"github.com/cgxeiji/hrs/hrs3300"
	"periph.io/x/periph/conn/physic"
)

// An Option configures a device.
type Option func(d *Device) Option

// OnBus can be used to specify I²C bus name
// ("/dev/i2c-2", "I2C2", "2"). By default, the bus name is "", which selects
// the first available bus.
func OnBus(name string) Option {
	return func(d *Device) Option {
		old := d.busName
		d.busName = name
		return OnBus(old)
	}
}

// OnAddr can be used to specify alternative I²C address.
// By default, the address is 0x44.
func OnAddr(addr uint16) Option {
	return func(d *Device) Option {
		old := d.addr
		d.addr = addr
		return OnAddr(old)
	}
}

// OnSpeed sets the bus speed. By default, the speed is 400kHz. A speed of 0
// keeps the speed of the bus.
func OnSpeed(f physic.Frequency) Option {
	return func(d *Device) Option {
		old := d.speed
		d.speed = f
		return OnSpeed(old)
	}
}

// WithResolution sets the ADC resolution of the sensor. By default, the
// resolution is 14 bits.
func WithResolution(r hrs3300.ADCResolution) Option {
	return func(d *Device) Option {
		old := d.res
		d.res = r
		return WithResolution(old)
	}
}
