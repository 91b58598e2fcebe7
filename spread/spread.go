package spread

import (
	"fmt"
	"math"

	"github.com/spread-lab/prefspread/common"
	"github.com/spread-lab/prefspread/log"
	"github.com/spread-lab/prefspread/series"
)

// ParseMode converts a config string into a hedge Mode
func ParseMode(mode string) (Mode, error) {
	switch Mode(mode) {
	case ModeFixed:
		return ModeFixed, nil
	case ModeOLS:
		return ModeOLS, nil
	case ModeRollingOLS:
		return ModeRollingOLS, nil
	default:
		return "", fmt.Errorf("%w: %q", errUnknownMode, mode)
	}
}

// Build derives the spread series from an aligned frame. The weight vector
// applies as value = sum(weight_i * price_i). Regression modes normalize the
// base instrument's weight to 1 so the spread reads as
// price_base - sum(beta_i * price_other_i). ModeRollingOLS drops the rows
// before the first complete lookback, so the returned series can be shorter
// than the frame
func Build(f *series.Frame, mode Mode, fixedRatios []float64, lookback, refitEvery int) (*Spread, error) {
	if f == nil || f.Rows() == 0 {
		return nil, errNilFrame
	}

	switch mode {
	case ModeFixed:
		if len(fixedRatios) != len(f.Instruments) {
			return nil, common.NewConfigError("fixed-ratios",
				fmt.Errorf("%w: %v weights for %v instruments", errRatioLength, len(fixedRatios), len(f.Instruments)))
		}
		return buildConstant(f, fixedRatios, string(ModeFixed))
	case ModeOLS:
		weights, err := estimateWeights(f, 0, f.Rows())
		if err != nil {
			return nil, common.NewNumericalError(string(ModeOLS), err)
		}
		log.Debugf(log.Spread, "ols weights estimated over full sample: %v", weights)
		return buildConstant(f, weights, string(ModeOLS))
	case ModeRollingOLS:
		return buildRolling(f, lookback, refitEvery)
	default:
		return nil, common.NewConfigError("hedge-mode",
			fmt.Errorf("%w: %q", errUnknownMode, mode))
	}
}

func buildConstant(f *series.Frame, weights []float64, stage string) (*Spread, error) {
	s := &Spread{
		Instruments: f.Instruments,
		Times:       f.Times,
		Values:      make([]float64, f.Rows()),
		Ratios:      make([][]float64, f.Rows()),
	}
	for i := range f.Prices {
		v := weightedValue(weights, f.Prices[i])
		if !finite(v) {
			return nil, common.NewNumericalError(stage,
				fmt.Errorf("%w at %v", errNonFiniteSpread, f.Times[i]))
		}
		s.Values[i] = v
		s.Ratios[i] = weights
	}
	return s, nil
}

func buildRolling(f *series.Frame, lookback, refitEvery int) (*Spread, error) {
	legs := len(f.Instruments) - 1
	if lookback < legs+1 {
		return nil, common.NewConfigError("regression-lookback",
			fmt.Errorf("%w: %v rows for %v legs", errLookbackTooSmall, lookback, legs))
	}
	if lookback > f.Rows() {
		return nil, common.NewConfigError("regression-lookback",
			fmt.Errorf("%w: %v > %v", errLookbackExceedsRows, lookback, f.Rows()))
	}
	if refitEvery < 1 {
		return nil, common.NewConfigError("refit-every", errRefitInterval)
	}

	s := &Spread{Instruments: f.Instruments}
	var weights []float64
	for row := lookback - 1; row < f.Rows(); row++ {
		if (row-(lookback-1))%refitEvery == 0 {
			var err error
			weights, err = estimateWeights(f, row-lookback+1, row+1)
			if err != nil {
				return nil, common.NewNumericalError(string(ModeRollingOLS),
					fmt.Errorf("refit at %v: %w", f.Times[row], err))
			}
		}
		v := weightedValue(weights, f.Prices[row])
		if !finite(v) {
			return nil, common.NewNumericalError(string(ModeRollingOLS),
				fmt.Errorf("%w at %v", errNonFiniteSpread, f.Times[row]))
		}
		s.Times = append(s.Times, f.Times[row])
		s.Values = append(s.Values, v)
		s.Ratios = append(s.Ratios, weights)
	}
	log.Debugf(log.Spread, "rolling ols spread defined over %v of %v rows", s.Len(), f.Rows())
	return s, nil
}

// estimateWeights fits the base column on the remaining columns over frame
// rows [from, to)
func estimateWeights(f *series.Frame, from, to int) ([]float64, error) {
	y := make([]float64, 0, to-from)
	x := make([][]float64, 0, to-from)
	for row := from; row < to; row++ {
		y = append(y, f.Prices[row][0])
		x = append(x, f.Prices[row][1:])
	}
	return olsWeights(y, x)
}

func weightedValue(weights, prices []float64) float64 {
	var v float64
	for i := range weights {
		v += weights[i] * prices[i]
	}
	return v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
