package hrs3300

import "fmt"

// Register is the address of a HRS3300 register.
type Register byte

// Register addresses
const (
	RegID      Register = 0x00 // device ID, reads 0x21
	RegEnable  Register = 0x01 // HRS enable, wait time, PDRIVE[1]
	RegC1DataM Register = 0x08 // CH1 data bits 10~3
	RegC0DataM Register = 0x09 // CH0 data bits 15~8
	RegC0DataH Register = 0x0A // CH0 data bits 7~4
	RegPDriver Register = 0x0C // LED driver, PON, PDRIVE[0]
	RegC1DataH Register = 0x0D // CH1 data bits 17~11
	RegC1DataL Register = 0x0E // CH1 data bits 2~0
	RegC0DataL Register = 0x0F // CH0 data bits 17~16 and 3~0
	RegRes     Register = 0x16 // ALS and HRS ADC resolution
	RegHGain   Register = 0x17 // HRS gain
)

// Enable register (0x01) fields
const (
	// HEN enables the HRS sensor.
	HEN byte = (1 << 7)
	// HWT is the HRS wait time between conversions.
	HWT byte = (0b111 << 4)
	// PDrive1 is the high bit of the LED drive current setting.
	PDrive1 byte = (1 << 3)
)

// LED driver register (0x0C) fields
const (
	// PDrive0 is the low bit of the LED drive current setting.
	PDrive0 byte = (1 << 6)
	// PON powers the LED oscillator.
	PON byte = (1 << 5)
)

// Resolution (0x16) and gain (0x17) register fields
const (
	ResMask   byte = 0b1111
	HGainMask byte = (0b111 << 2)
)

// Recommended values of the reserved bits.
const (
	reservedEnable  byte = 0x60
	reservedPDriver byte = 0x08
	reservedRes     byte = 0x60
)

// Device constants
const (
	Addr     = 0x44
	DeviceID = 0x21

	// SampleLen is the number of registers read for one sample, from
	// C1DATAM (0x08) to C0DATAL (0x0F).
	SampleLen = 7
)

// ADCResolution is the resolution code of the ALS and HRS ADC.
type ADCResolution byte

// ADC resolutions
const (
	Res8Bits ADCResolution = iota
	Res9Bits
	Res10Bits
	Res11Bits
	Res12Bits
	Res13Bits
	Res14Bits
	Res15Bits
	Res16Bits
	Res17Bits
	Res18Bits
)

// ResolutionBits returns the resolution code for n bits.
func ResolutionBits(n int) (ADCResolution, error) {
	r := ADCResolution(n - 8)
	if n < 8 || !r.Valid() {
		return 0, fmt.Errorf("%w: %d bits", ErrResolution, n)
	}
	return r, nil
}

// Valid reports whether r is a code the device understands.
func (r ADCResolution) Valid() bool {
	return r <= Res18Bits
}

// Bits returns the number of valid bits in a sample.
func (r ADCResolution) Bits() int {
	return 8 + int(r)
}

// Mask returns the mask of the valid bits in a sample.
func (r ADCResolution) Mask() uint32 {
	return (1 << (8 + uint32(r))) - 1
}

func (r ADCResolution) String() string {
	if !r.Valid() {
		return fmt.Sprintf("ADCResolution(%d)", byte(r))
	}
	return fmt.Sprintf("%d bits", r.Bits())
}

// HGain is the HRS gain code, stored in bits 4~2 of the gain register.
type HGain byte

// HRS gains
const (
	Gain1x HGain = iota
	Gain2x
	Gain4x
	Gain8x
	Gain64x
)

// DefaultGain is the recommended gain (HGAIN register = 0x10).
const DefaultGain = Gain64x

func (g HGain) reg() byte {
	return (byte(g) << 2) & HGainMask
}
