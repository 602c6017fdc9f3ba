package hrs

// tSeries is a ring buffer that keeps track of its extremes.
type tSeries struct {
	buffer []float64
	idx    int
	n      int

	max float64
	min float64
}

func newTSeries(size int) *tSeries {
	return &tSeries{
		buffer: make([]float64, size),
	}
}

func (t *tSeries) add(entries ...float64) {
	for _, e := range entries {
		t.idx++
		t.idx %= len(t.buffer)

		old := t.buffer[t.idx]
		t.buffer[t.idx] = e

		full := t.n == len(t.buffer)
		if !full {
			t.n++
		}

		switch {
		case t.n == 1:
			t.max = e
			t.min = e
		case full && (old == t.max || old == t.min):
			t.max = e
			t.min = e
			for _, b := range t.buffer {
				t.minmax(b)
			}
		default:
			t.minmax(e)
		}
	}
}

func (t *tSeries) minmax(v float64) {
	if v > t.max {
		t.max = v
	}
	if v < t.min {
		t.min = v
	}
}

func (t *tSeries) acdc() float64 {
	if t.min == 0 {
		return 0
	}

	return (t.max - t.min) / t.min
}

func (t *tSeries) reset() {
	for i := range t.buffer {
		t.buffer[i] = 0
	}
	t.idx = 0
	t.n = 0
	t.max = 0
	t.min = 0
}
