package spread

import (
	"errors"
	"time"
)

// Mode dictates how the hedge ratio between basket instruments is estimated
type Mode string

const (
	// ModeFixed applies the configured weight vector as given
	ModeFixed Mode = "fixed"
	// ModeOLS regresses the base instrument on the others over the full
	// sample. The fit is in-sample, look-ahead is accepted for research use
	ModeOLS Mode = "ols"
	// ModeRollingOLS re-fits the regression from trailing rows only so no
	// future observation leaks into the weights
	ModeRollingOLS Mode = "rolling_ols"
)

var (
	errNilFrame            = errors.New("nil aligned frame received")
	errUnknownMode         = errors.New("unknown hedge mode")
	errRatioLength         = errors.New("fixed ratio length must match instrument count")
	errLookbackTooSmall    = errors.New("regression lookback cannot resolve the hedge legs")
	errLookbackExceedsRows = errors.New("regression lookback exceeds aligned rows")
	errRefitInterval       = errors.New("refit interval must be positive")
	errNonFiniteSpread     = errors.New("spread value is not finite")
)

// Spread is the weighted combination of basket prices, one value per aligned
// timestamp, along with the weight vector effective at each row
type Spread struct {
	Instruments []string
	Times       []time.Time
	Values      []float64
	Ratios      [][]float64
}

// Len returns the number of defined spread rows
func (s *Spread) Len() int {
	return len(s.Values)
}

// Ratio returns the weight vector effective at row i
func (s *Spread) Ratio(i int) []float64 {
	return s.Ratios[i]
}
