// Package hrs estimates the heart rate from a HRS3300 optical sensor.
//
// The register level driver lives in package hrs3300. This package owns the
// bus, runs the sensor and turns its raw reflected light samples into beats
// per minute.
package hrs

import (
	"errors"
	"fmt"
	"time"

	"github.com/cgxeiji/hrs/hrs3300"
	"periph.io/x/periph/conn/i2c"
	"periph.io/x/periph/conn/i2c/i2creg"
	"periph.io/x/periph/conn/physic"
	"periph.io/x/periph/host"
)

var (
	// ErrNotDetected is returned when nothing is detected on the sensor (e.g.
	// the sensor is not in contact with the skin).
	ErrNotDetected = errors.New("nothing detected on the sensor")
	// ErrNoBus is returned by Open when no bus is given.
	ErrNoBus = errors.New("hrs: no bus")
)

// threshold is the lowest normalized reflected light considered as contact.
const threshold = 0.02

// seriesLen is the number of samples kept to compute the perfusion index,
// about 2.5s at 25 samples/s.
const seriesLen = 64

// Device defines a heart rate sensor.
type Device struct {
	sensor *hrs3300.Device
	// bus is only set when the device opened it.
	bus i2c.BusCloser

	busName string
	addr    uint16
	speed   physic.Frequency
	res     hrs3300.ADCResolution

	hrs  *tSeries
	beat *beat
	hr   movingAverage
	last time.Time
	now  func() time.Time
}

func newDevice(opts []Option) *Device {
	d := &Device{
		addr:  hrs3300.Addr,
		speed: 400 * physic.KiloHertz,
		res:   hrs3300.Res14Bits,
		hrs:   newTSeries(seriesLen),
		beat:  newBeat(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// New opens the I²C bus of the host and returns a running heart rate sensor.
// By default, the first available bus is used at 400kHz.
func New(opts ...Option) (*Device, error) {
	d := newDevice(opts)

	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("hrs: could not initialize host: %w", err)
	}
	bus, err := i2creg.Open(d.busName)
	if err != nil {
		return nil, fmt.Errorf("hrs: could not open I2C bus: %w", err)
	}
	if d.speed != 0 {
		if err := bus.SetSpeed(d.speed); err != nil {
			bus.Close()
			return nil, fmt.Errorf("hrs: could not set bus speed to %s: %w", d.speed, err)
		}
	}
	if err := d.start(bus); err != nil {
		bus.Close()
		return nil, err
	}
	d.bus = bus

	return d, nil
}

// Open returns a running heart rate sensor on bus. The bus stays owned by the
// caller; OnBus and OnSpeed are ignored.
func Open(bus hrs3300.Bus, opts ...Option) (*Device, error) {
	if bus == nil {
		return nil, ErrNoBus
	}
	d := newDevice(opts)
	if err := d.start(bus); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Device) start(bus hrs3300.Bus) error {
	sensor, err := hrs3300.New(bus,
		hrs3300.Address(d.addr),
		hrs3300.Resolution(d.res),
	)
	if err != nil {
		return fmt.Errorf("hrs: %w", err)
	}
	if err := sensor.Init(); err != nil {
		return fmt.Errorf("hrs: could not initialize sensor: %w", err)
	}
	d.sensor = sensor
	return nil
}

// Close disables the sensor and closes the bus if the device opened it.
func (d *Device) Close() error {
	err := d.sensor.Halt()
	if d.bus != nil {
		if cerr := d.bus.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		return fmt.Errorf("hrs: could not close: %w", err)
	}
	return nil
}

// Sensor gives access to the register level driver. Check the package
// hrs3300 for detailed behavior.
func (d *Device) Sensor() *hrs3300.Device {
	return d.sensor
}

// Raw reads one sample and returns the reflected (HRS) and ambient (ALS)
// light values. Raw does not feed the heart rate estimation.
func (d *Device) Raw() (hrs, als uint32, err error) {
	return d.sensor.ReadRawSample()
}

// Perfusion returns the ratio between the pulsating and the static reflected
// light over the last samples read by SampleOne.
func (d *Device) Perfusion() float64 {
	return d.hrs.acdc()
}

// Shutdown turns the sensor off.
func (d *Device) Shutdown() error {
	return d.sensor.SetEnabled(false)
}

// Startup turns the sensor back on. The estimation starts over.
func (d *Device) Startup() error {
	d.reset()
	return d.sensor.SetEnabled(true)
}

func (d *Device) reset() {
	d.hrs.reset()
	d.beat.reset()
	d.hr.reset()
	d.last = time.Time{}
}
