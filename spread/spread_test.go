package spread

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spread-lab/prefspread/common"
	"github.com/spread-lab/prefspread/series"
)

var anchor = time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)

func frameFromColumns(instruments []string, columns ...[]float64) *series.Frame {
	f := &series.Frame{Instruments: instruments}
	for row := range columns[0] {
		prices := make([]float64, len(columns))
		for col := range columns {
			prices[col] = columns[col][row]
		}
		f.Times = append(f.Times, anchor.AddDate(0, 0, row))
		f.Prices = append(f.Prices, prices)
	}
	return f
}

func TestParseMode(t *testing.T) {
	for _, want := range []Mode{ModeFixed, ModeOLS, ModeRollingOLS} {
		got, err := ParseMode(string(want))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseMode("kalman")
	assert.ErrorIs(t, err, errUnknownMode)
}

func TestBuildNilFrame(t *testing.T) {
	_, err := Build(nil, ModeFixed, []float64{1, -1}, 0, 0)
	assert.ErrorIs(t, err, errNilFrame)
}

func TestBuildFixedPerfectHedge(t *testing.T) {
	a := []float64{100, 101, 99, 95, 105}
	b := []float64{50, 50.5, 49.5, 47.5, 52.5}
	f := frameFromColumns([]string{"PFF", "PGX"}, a, b)

	s, err := Build(f, ModeFixed, []float64{1, -2}, 0, 0)
	require.NoError(t, err)
	require.Equal(t, 5, s.Len())
	for i := range s.Values {
		assert.InDelta(t, 0.0, s.Values[i], 1e-12)
		assert.Equal(t, []float64{1, -2}, s.Ratio(i))
	}
}

func TestBuildFixedRatioLengthMismatch(t *testing.T) {
	f := frameFromColumns([]string{"PFF", "PGX"},
		[]float64{100, 101}, []float64{50, 50.5})

	_, err := Build(f, ModeFixed, []float64{1, -1, 0.5}, 0, 0)
	assert.ErrorIs(t, err, errRatioLength)
	var cErr *common.ConfigError
	require.True(t, errors.As(err, &cErr))
	assert.Equal(t, "fixed-ratios", cErr.Field)
}

func TestBuildOLSRecoversExactRelationship(t *testing.T) {
	a := []float64{100, 101, 99, 95, 105}
	b := []float64{50, 50.5, 49.5, 47.5, 52.5}
	f := frameFromColumns([]string{"PFF", "PGX"}, a, b)

	s, err := Build(f, ModeOLS, nil, 0, 0)
	require.NoError(t, err)
	require.Equal(t, 5, s.Len())
	assert.InDelta(t, 1.0, s.Ratio(0)[0], 1e-12)
	assert.InDelta(t, -2.0, s.Ratio(0)[1], 1e-12)
	for i := range s.Values {
		assert.InDelta(t, 0.0, s.Values[i], 1e-9)
	}
}

func TestBuildOLSResidualOrthogonality(t *testing.T) {
	// y tracks 1.5x plus a deterministic wobble, the normal equations
	// guarantee the residuals are orthogonal to the regressor
	x := []float64{20, 21, 19, 22, 23, 18, 20.5, 21.5}
	wobble := []float64{0.3, -0.2, 0.4, -0.5, 0.1, 0.2, -0.3, -0.1}
	y := make([]float64, len(x))
	for i := range x {
		y[i] = 1.5*x[i] + wobble[i]
	}
	f := frameFromColumns([]string{"PFF", "PGX"}, y, x)

	s, err := Build(f, ModeOLS, nil, 0, 0)
	require.NoError(t, err)

	// residual here is the spread itself: y - beta*x
	var dot float64
	for i := range s.Values {
		dot += s.Values[i] * x[i]
	}
	assert.InDelta(t, 0.0, dot, 1e-6)
}

func TestBuildOLSMultiLeg(t *testing.T) {
	x1 := []float64{10, 11, 9, 12, 10.5, 11.5}
	x2 := []float64{5, 4.5, 5.5, 4, 5.2, 4.8}
	y := make([]float64, len(x1))
	for i := range x1 {
		y[i] = 2*x1[i] + 3*x2[i]
	}
	f := frameFromColumns([]string{"PFF", "PGX", "PSK"}, y, x1, x2)

	s, err := Build(f, ModeOLS, nil, 0, 0)
	require.NoError(t, err)
	require.Len(t, s.Ratio(0), 3)
	assert.InDelta(t, -2.0, s.Ratio(0)[1], 1e-9)
	assert.InDelta(t, -3.0, s.Ratio(0)[2], 1e-9)
	for i := range s.Values {
		assert.InDelta(t, 0.0, s.Values[i], 1e-8)
	}
}

func TestBuildOLSIllConditioned(t *testing.T) {
	x := []float64{10, 11, 9, 12}
	y := []float64{20, 22, 18, 24}
	// duplicated hedge column makes the design matrix singular
	f := frameFromColumns([]string{"PFF", "PGX", "PGX2"}, y, x, x)

	_, err := Build(f, ModeOLS, nil, 0, 0)
	assert.ErrorIs(t, err, errIllConditioned)
	var nErr *common.NumericalError
	require.True(t, errors.As(err, &nErr))
	assert.Equal(t, "ols", nErr.Stage)
}

func TestBuildRollingOLS(t *testing.T) {
	// the relationship doubles partway through, trailing refits track it
	x := []float64{10, 11, 9, 12, 10, 11, 9, 12, 10, 11}
	y := make([]float64, len(x))
	for i := range x {
		if i < 5 {
			y[i] = 2 * x[i]
		} else {
			y[i] = 4 * x[i]
		}
	}
	f := frameFromColumns([]string{"PFF", "PGX"}, y, x)

	s, err := Build(f, ModeRollingOLS, nil, 3, 1)
	require.NoError(t, err)
	assert.Equal(t, len(x)-3+1, s.Len())

	// windows entirely inside one regime recover it exactly
	assert.InDelta(t, -2.0, s.Ratio(0)[1], 1e-9)
	assert.InDelta(t, 0.0, s.Values[0], 1e-9)
	lastIdx := s.Len() - 1
	assert.InDelta(t, -4.0, s.Ratio(lastIdx)[1], 1e-9)
	assert.InDelta(t, 0.0, s.Values[lastIdx], 1e-9)

	// times drop the warmup rows
	assert.Equal(t, f.Times[2], s.Times[0])
}

func TestBuildRollingOLSRefitEvery(t *testing.T) {
	x := []float64{10, 11, 9, 12, 10, 11, 9, 12, 10, 11}
	y := make([]float64, len(x))
	for i := range x {
		if i < 5 {
			y[i] = 2 * x[i]
		} else {
			y[i] = 4 * x[i]
		}
	}
	f := frameFromColumns([]string{"PFF", "PGX"}, y, x)

	s, err := Build(f, ModeRollingOLS, nil, 4, 3)
	require.NoError(t, err)
	require.Equal(t, 7, s.Len())

	// refits land on frame rows 3, 6 and 9, rows in between reuse the
	// last weights even after the relationship doubles at row 5
	assert.Equal(t, []float64{1, -2}, s.Ratio(0))
	assert.Equal(t, s.Ratio(0), s.Ratio(1))
	assert.Equal(t, s.Ratio(0), s.Ratio(2))
	assert.InDelta(t, 4*11-2*11, s.Values[2], 1e-9)
	assert.NotEqual(t, s.Ratio(2), s.Ratio(3))
	assert.InDelta(t, -4.0, s.Ratio(6)[1], 1e-9)
	assert.InDelta(t, 0.0, s.Values[6], 1e-9)
}

func TestBuildRollingOLSConfigErrors(t *testing.T) {
	f := frameFromColumns([]string{"PFF", "PGX"},
		[]float64{100, 101, 99}, []float64{50, 50.5, 49.5})

	_, err := Build(f, ModeRollingOLS, nil, 1, 1)
	assert.ErrorIs(t, err, errLookbackTooSmall)

	_, err = Build(f, ModeRollingOLS, nil, 5, 1)
	assert.ErrorIs(t, err, errLookbackExceedsRows)

	_, err = Build(f, ModeRollingOLS, nil, 2, 0)
	assert.ErrorIs(t, err, errRefitInterval)
}

func TestBuildUnknownMode(t *testing.T) {
	f := frameFromColumns([]string{"PFF", "PGX"},
		[]float64{100, 101}, []float64{50, 50.5})

	_, err := Build(f, Mode("kalman"), nil, 0, 0)
	assert.ErrorIs(t, err, errUnknownMode)
}
