package hrs3300

// An Option configures a device before Init. It returns an option that
// restores the previous value.
type Option func(d *Device) Option

// Address sets the I²C address. By default, the address is 0x44.
func Address(addr uint16) Option {
	return func(d *Device) Option {
		old := d.addr
		d.addr = addr
		return Address(old)
	}
}

// Resolution sets the ADC resolution applied by Init. By default, the
// resolution is 14 bits.
func Resolution(r ADCResolution) Option {
	return func(d *Device) Option {
		old := d.res
		d.res = r
		return Resolution(old)
	}
}

// Gain sets the HRS gain applied by Init. By default, the gain is 64x.
func Gain(g HGain) Option {
	return func(d *Device) Option {
		old := d.gain
		d.gain = g
		return Gain(old)
	}
}
