package hrs

import (
	"fmt"
	"time"
)

// Beat intervals outside of 10 to 250 bpm are discarded.
const (
	minSpan = 238 * time.Millisecond
	maxSpan = 6 * time.Second
)

// SampleOne reads one sample, feeds it to the beat detector and returns the
// current heart rate estimate in beats per minute. ok is false until two
// valid beats have been seen. SampleOne is meant to be called at a steady
// rate, 25 samples/s works well.
//
// If nothing is detected on the sensor, the estimation starts over and
// SampleOne returns an ErrNotDetected error.
func (d *Device) SampleOne() (bpm float64, ok bool, err error) {
	hrs, _, err := d.sensor.ReadRawSample()
	if err != nil {
		return 0, false, fmt.Errorf("hrs: could not get sample: %w", err)
	}
	now := d.now()

	v := float64(hrs) / float64(d.sensor.ResolutionMask())
	if v < threshold {
		d.reset()
		return 0, false, fmt.Errorf("hrs: could not get heart rate: %w", ErrNotDetected)
	}
	d.hrs.add(v)

	if !d.beat.check(v) {
		return d.estimate(now)
	}

	last := d.last
	d.last = now
	if last.IsZero() {
		return d.estimate(now)
	}
	t := now.Sub(last)
	if t > maxSpan || t < minSpan {
		return d.estimate(now)
	}

	span := float64(t.Milliseconds())
	// if first measurement, pre-fill values.
	if d.hr.mean == 0 {
		d.hr.mean = span
	}
	d.hr.add(span)

	return d.estimate(now)
}

func (d *Device) estimate(now time.Time) (float64, bool, error) {
	// no beat for too long, the estimate is stale.
	if !d.last.IsZero() && now.Sub(d.last) > maxSpan {
		d.hr.reset()
	}
	if d.hr.mean == 0 {
		return 0, false, nil
	}
	return 60000 / d.hr.mean, true, nil
}
