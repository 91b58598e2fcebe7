package series

import (
	"errors"
	"time"
)

// AlignMethod dictates how timestamps missing from one instrument are treated
// when building a frame
type AlignMethod string

const (
	// AlignDrop keeps only timestamps present in every series
	AlignDrop AlignMethod = "drop"
	// AlignForwardFill carries each series' last observed price forward onto
	// timestamps it is missing, once that series has started
	AlignForwardFill AlignMethod = "ffill"
)

var (
	errNotEnoughSeries    = errors.New("alignment requires at least two price series")
	errNilSeries          = errors.New("nil price series received")
	errNoObservations     = errors.New("price series has no observations")
	errUnsortedTimestamps = errors.New("timestamps must be strictly increasing")
	errNonFinitePrice     = errors.New("non-finite price")
	errNoOverlap          = errors.New("aligned series share no timestamps")
	errBelowMinimumRows   = errors.New("aligned series below minimum length")
	errUnknownAlignMethod = errors.New("unknown align method")
)

// Observation is a single price at a point in time
type Observation struct {
	Time  time.Time
	Price float64
}

// PriceSeries holds the ordered observations of one instrument. It is
// read-only to every consumer in this repository
type PriceSeries struct {
	Instrument   string
	Observations []Observation
}

// Frame holds rows of aligned prices, one column per instrument. Every row
// carries a price for every instrument
type Frame struct {
	Instruments []string
	Times       []time.Time
	Prices      [][]float64
}

// Rows returns the number of aligned rows
func (f *Frame) Rows() int {
	return len(f.Times)
}

// Column returns a copy of one instrument's aligned prices
func (f *Frame) Column(i int) []float64 {
	col := make([]float64, len(f.Prices))
	for x := range f.Prices {
		col[x] = f.Prices[x][i]
	}
	return col
}
