// Package hrs3300 drives the Tianyihexin HRS3300 optical heart rate and
// ambient light sensor over I²C.
//
// The driver only needs a bus that can run a write-then-read transaction, so
// both a periph.io i2c.Bus and a TinyGo drivers.I2C can be used as-is. It
// does no locking: a bus shared with other devices has to be serialized by
// the caller.
package hrs3300

import (
	"errors"
	"fmt"
)

var (
	// ErrDeviceID is returned by Init when the bus works but the device ID
	// register does not read 0x21 (wrong chip, or not powered).
	ErrDeviceID = errors.New("hrs3300: device ID does not match (0x21)")
	// ErrResolution is returned when an ADC resolution code is out of range.
	ErrResolution = errors.New("hrs3300: invalid ADC resolution")
)

// CommError is returned when the bus reports a failure. Err is the error of
// the bus, untouched.
type CommError struct {
	Op  string
	Reg Register
	Err error
}

func (e *CommError) Error() string {
	return fmt.Sprintf("hrs3300: could not %s register %#02x: %v", e.Op, byte(e.Reg), e.Err)
}

func (e *CommError) Unwrap() error {
	return e.Err
}

// Bus is the I²C transport used by the device. Tx writes w and then reads
// len(r) bytes in one transaction. r is nil for plain writes.
type Bus interface {
	Tx(addr uint16, w, r []byte) error
}

// Device defines a HRS3300 device.
type Device struct {
	bus  Bus
	addr uint16

	res  ADCResolution
	mask uint32
	gain HGain
}

// New returns a new HRS3300 device on bus. It does not talk to the device,
// call Init before reading samples.
//
// By default the device is at address 0x44, with a 14-bit ADC resolution and
// the recommended HRS gain.
func New(bus Bus, opts ...Option) (*Device, error) {
	d := &Device{
		bus:  bus,
		addr: Addr,
		res:  Res14Bits,
		gain: DefaultGain,
	}
	for _, opt := range opts {
		opt(d)
	}
	if !d.res.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrResolution, d.res)
	}
	d.mask = d.res.Mask()

	return d, nil
}

func (d *Device) String() string {
	return fmt.Sprintf("HRS3300{addr: %#x, resolution: %v}", d.addr, d.res)
}

// Addr returns the I²C address of the device.
func (d *Device) Addr() uint16 {
	return d.addr
}

// Resolution returns the configured ADC resolution.
func (d *Device) Resolution() ADCResolution {
	return d.res
}

// ResolutionMask returns the mask applied to decoded samples.
func (d *Device) ResolutionMask() uint32 {
	return d.mask
}

// DeviceID reads the device ID register.
func (d *Device) DeviceID() (byte, error) {
	return d.ReadRegister(RegID)
}

// Init checks the device ID and writes the recommended configuration. The
// HRS sensor is enabled last, so that sampling starts with the LED driver,
// resolution and gain already set.
//
// Init stops at the first failure and does not undo the registers already
// written.
func (d *Device) Init() error {
	id, err := d.DeviceID()
	if err != nil {
		return fmt.Errorf("hrs3300: could not get device ID: %w", err)
	}
	if id != DeviceID {
		return fmt.Errorf("%w: got %#02x", ErrDeviceID, id)
	}

	if err := d.WriteRegister(RegPDriver, PDrive0|PON|reservedPDriver); err != nil {
		return fmt.Errorf("hrs3300: could not configure LED driver: %w", err)
	}
	if err := d.SetADCResolution(d.res); err != nil {
		return err
	}
	if err := d.WriteRegister(RegHGain, d.gain.reg()); err != nil {
		return fmt.Errorf("hrs3300: could not configure gain: %w", err)
	}
	if err := d.WriteRegister(RegEnable, HEN|PDrive1|reservedEnable); err != nil {
		return fmt.Errorf("hrs3300: could not enable sensor: %w", err)
	}

	return nil
}

// SetADCResolution sets the resolution of the ADC. The mask used to decode
// samples is updated before the register is written.
func (d *Device) SetADCResolution(r ADCResolution) error {
	if !r.Valid() {
		return fmt.Errorf("%w: %v", ErrResolution, r)
	}
	d.res = r
	d.mask = r.Mask()

	if err := d.WriteRegister(RegRes, byte(r)|reservedRes); err != nil {
		return fmt.Errorf("hrs3300: could not configure resolution: %w", err)
	}
	return nil
}

// SetGain sets the HRS gain. The other bits of the gain register are kept.
func (d *Device) SetGain(g HGain) error {
	if _, err := d.config(RegHGain, HGainMask, g.reg()); err != nil {
		return fmt.Errorf("hrs3300: could not configure gain: %w", err)
	}
	d.gain = g
	return nil
}

// SetWaitTime sets the HRS wait time code (0 to 7). The other bits of the
// enable register are kept.
func (d *Device) SetWaitTime(w byte) error {
	if _, err := d.config(RegEnable, HWT, w<<4); err != nil {
		return fmt.Errorf("hrs3300: could not configure wait time: %w", err)
	}
	return nil
}

// SetEnabled turns the HRS sensor and the LED oscillator on or off. Both
// registers are read back from the device and only the HEN and PON bits
// change.
//
// If the enable register is written but the LED driver register fails, the
// error is returned and nothing is rolled back.
func (d *Device) SetEnabled(on bool) error {
	var hen, pon byte
	if on {
		hen, pon = HEN, PON
	}
	if _, err := d.config(RegEnable, HEN, hen); err != nil {
		return fmt.Errorf("hrs3300: could not set HRS enable: %w", err)
	}
	if _, err := d.config(RegPDriver, PON, pon); err != nil {
		return fmt.Errorf("hrs3300: could not set LED oscillator: %w", err)
	}
	return nil
}

// Halt disables the sensor.
func (d *Device) Halt() error {
	return d.SetEnabled(false)
}

// ReadRawSample reads one sample and returns the reflected light (HRS, C0)
// and ambient light (ALS, C1) values, masked to the ADC resolution.
func (d *Device) ReadRawSample() (hrs, als uint32, err error) {
	var b [SampleLen]byte
	if err := d.read(RegC1DataM, b[:]); err != nil {
		return 0, 0, fmt.Errorf("hrs3300: could not read sample: %w", err)
	}
	hrs, als = Decode(b, d.mask)
	return hrs, als, nil
}

// Decode unpacks a sample block read from C1DATAM (0x08):
//
//	0: C1DATAM 7:0 -> C1[10:3]
//	1: C0DATAM 7:0 -> C0[15:8]
//	2: C0DATAH 3:0 -> C0[7:4]
//	3: PDRIVER (ignored)
//	4: C1DATAH 6:0 -> C1[17:11]
//	5: C1DATAL 2:0 -> C1[2:0]
//	6: C0DATAL 5:4 -> C0[17:16], 3:0 -> C0[3:0]
func Decode(b [SampleLen]byte, mask uint32) (c0, c1 uint32) {
	c0 = uint32(b[1]) << 8
	c0 |= uint32(b[2]&0x0F) << 4
	c0 |= uint32(b[6]&0x30) << 12
	c0 |= uint32(b[6] & 0x0F)

	c1 = uint32(b[0]) << 3
	c1 |= uint32(b[4]&0x7F) << 11
	c1 |= uint32(b[5] & 0x07)

	return c0 & mask, c1 & mask
}

// ReadRegister reads a single byte from a register.
func (d *Device) ReadRegister(reg Register) (byte, error) {
	var b [1]byte
	if err := d.read(reg, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

// WriteRegister writes a byte to a register.
func (d *Device) WriteRegister(reg Register, v byte) error {
	return d.write(reg, v)
}

func (d *Device) write(reg Register, v byte) error {
	if err := d.bus.Tx(d.addr, []byte{byte(reg), v}, nil); err != nil {
		return &CommError{Op: "write", Reg: reg, Err: err}
	}
	return nil
}

// read fills buf starting at reg. The device auto-increments the address.
func (d *Device) read(reg Register, buf []byte) error {
	if err := d.bus.Tx(d.addr, []byte{byte(reg)}, buf); err != nil {
		return &CommError{Op: "read", Reg: reg, Err: err}
	}
	return nil
}

// config replaces the bits of reg set in mask with flag and writes the
// result back. It returns the bits that were replaced.
func (d *Device) config(reg Register, mask, flag byte) (byte, error) {
	cfg, err := d.ReadRegister(reg)
	if err != nil {
		return 0, err
	}
	old := cfg & mask
	cfg &^= mask
	cfg |= flag & mask
	if err := d.WriteRegister(reg, cfg); err != nil {
		return 0, err
	}

	return old, nil
}
