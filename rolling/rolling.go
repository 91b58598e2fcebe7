package rolling

import (
	"errors"
	"math"
)

// DegenerateStdDevFloor is the threshold under which a window's standard
// deviation is treated as zero variance. The z-score then takes the
// sentinel value 0, forcing flat signals, rather than raising an error.
// Zero variance is a legitimate degenerate market state
const DegenerateStdDevFloor = 1e-10

// ErrWindowTooSmall is returned when a rolling window cannot produce a
// sample standard deviation
var ErrWindowTooSmall = errors.New("rolling window must be at least 2")

// Stat is the rolling mean and sample standard deviation of the trailing
// window along with the z-score of the window's latest value
type Stat struct {
	Mean       float64
	StdDev     float64
	ZScore     float64
	Degenerate bool
}

// Window is a fixed-size fold accumulator over an ordered sequence. It
// carries the running sum, running sum of squares and the buffered trailing
// values, no global state
type Window struct {
	size  int
	buf   []float64
	head  int
	count int
	sum   float64
	sumSq float64
}

// NewWindow returns an empty accumulator of the given size
func NewWindow(size int) (*Window, error) {
	if size < 2 {
		return nil, ErrWindowTooSmall
	}
	return &Window{size: size, buf: make([]float64, size)}, nil
}

// Add folds the next value into the window, evicting the oldest value once
// the window is full
func (w *Window) Add(v float64) {
	if w.count == w.size {
		old := w.buf[w.head]
		w.sum -= old
		w.sumSq -= old * old
	} else {
		w.count++
	}
	w.buf[w.head] = v
	w.head = (w.head + 1) % w.size
	w.sum += v
	w.sumSq += v * v
}

// Full reports whether the trailing window holds size values
func (w *Window) Full() bool {
	return w.count == w.size
}

// Count returns the number of values currently held
func (w *Window) Count() int {
	return w.count
}

// Mean returns the arithmetic mean of the held values
func (w *Window) Mean() float64 {
	if w.count == 0 {
		return 0
	}
	return w.sum / float64(w.count)
}

// StdDev returns the sample (N-1) standard deviation of the held values.
// The running-sums form suffers catastrophic cancellation when the variance
// is tiny relative to the values, which would leak noise past the
// degenerate floor, so near zero it recomputes directly from the buffer
func (w *Window) StdDev() float64 {
	if w.count <= 1 {
		return 0
	}
	n := float64(w.count)
	variance := (w.sumSq - w.sum*w.sum/n) / (n - 1)
	if variance < 1e-12*(w.sumSq/n) {
		mean := w.sum / n
		var acc float64
		for i := 0; i < w.count; i++ {
			d := w.buf[i] - mean
			acc += d * d
		}
		variance = acc / (n - 1)
	}
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance)
}

// Reset empties the window
func (w *Window) Reset() {
	w.head = 0
	w.count = 0
	w.sum = 0
	w.sumSq = 0
}

// ZScore measures value against the window statistics in standard deviation
// units. A standard deviation under DegenerateStdDevFloor reports the
// sentinel 0 with the degenerate flag set
func ZScore(value, mean, stdDev float64) (float64, bool) {
	if stdDev < DegenerateStdDevFloor {
		return 0, true
	}
	return (value - mean) / stdDev, false
}

// Stats folds values through a window accumulator and returns one entry per
// position with a full trailing window, exactly len(values) - window + 1
// entries for sufficient input
func Stats(values []float64, window int) ([]Stat, error) {
	w, err := NewWindow(window)
	if err != nil {
		return nil, err
	}
	var out []Stat
	for _, v := range values {
		w.Add(v)
		if !w.Full() {
			continue
		}
		mean := w.Mean()
		stdDev := w.StdDev()
		z, degenerate := ZScore(v, mean, stdDev)
		out = append(out, Stat{Mean: mean, StdDev: stdDev, ZScore: z, Degenerate: degenerate})
	}
	return out, nil
}
