package bollinger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thrasher-corp/gct-ta/indicators"

	"github.com/spread-lab/prefspread/common"
	"github.com/spread-lab/prefspread/data/frame"
	"github.com/spread-lab/prefspread/direction"
	"github.com/spread-lab/prefspread/eventhandlers/strategies/base"
	"github.com/spread-lab/prefspread/series"
	"github.com/spread-lab/prefspread/spread"
)

func TestName(t *testing.T) {
	t.Parallel()
	s := Strategy{}
	if n := s.Name(); n != Name {
		t.Errorf("expected %v", Name)
	}
	if s.Description() == "" {
		t.Error("expected a description")
	}
}

func TestSetCustomSettings(t *testing.T) {
	t.Parallel()
	s := Strategy{}
	assert.NoError(t, s.SetCustomSettings(nil))

	settings := make(map[string]interface{})
	settings[lookbackKey] = float64(10)
	settings[bandWidthKey] = 1.5
	settings[maTypeKey] = "ema"
	require.NoError(t, s.SetCustomSettings(settings))
	assert.Equal(t, 10, s.lookback)
	assert.Equal(t, 1.5, s.bandWidth)
	assert.Equal(t, indicators.Ema, s.maType)

	settings[maTypeKey] = "wma"
	assert.ErrorIs(t, s.SetCustomSettings(settings), base.ErrInvalidCustomSettings)

	settings[maTypeKey] = 3.0
	assert.ErrorIs(t, s.SetCustomSettings(settings), base.ErrInvalidCustomSettings)

	settings[maTypeKey] = "sma"
	settings[bandWidthKey] = -1.0
	assert.ErrorIs(t, s.SetCustomSettings(settings), base.ErrInvalidCustomSettings)

	settings[bandWidthKey] = 1.5
	settings[lookbackKey] = float64(1)
	assert.ErrorIs(t, s.SetCustomSettings(settings), base.ErrInvalidCustomSettings)

	settings[lookbackKey] = float64(10)
	settings["lol"] = "nope"
	assert.ErrorIs(t, s.SetCustomSettings(settings), base.ErrInvalidCustomSettings)
}

func TestSetDefaults(t *testing.T) {
	t.Parallel()
	s := Strategy{state: direction.LongSpread}
	s.SetDefaults()
	assert.Equal(t, 20, s.lookback)
	assert.Equal(t, 2.0, s.bandWidth)
	assert.Equal(t, indicators.Sma, s.maType)
	assert.Equal(t, direction.Flat, s.state)
}

func day(n int) time.Time {
	return time.Date(2023, 1, n, 0, 0, 0, 0, time.UTC)
}

func signalDriver(t *testing.T, spreadValues []float64) *frame.DataFromFrame {
	t.Helper()
	f := &series.Frame{Instruments: []string{"PFD-A", "PFD-B"}}
	for i := range spreadValues {
		f.Times = append(f.Times, day(i+1))
		f.Prices = append(f.Prices, []float64{spreadValues[i], 5})
	}
	sp, err := spread.Build(f, spread.ModeFixed, []float64{1, 0}, 0, 0)
	require.NoError(t, err)
	d := &frame.DataFromFrame{Frame: f, Spread: sp}
	require.NoError(t, d.Load())
	return d
}

func TestOnSignal(t *testing.T) {
	t.Parallel()
	s := Strategy{}
	_, err := s.OnSignal(nil)
	assert.ErrorIs(t, err, common.ErrNilEvent)

	s.SetDefaults()
	require.NoError(t, s.SetCustomSettings(map[string]interface{}{
		lookbackKey:  float64(3),
		bandWidthKey: 1.0,
	}))

	d := signalDriver(t, []float64{10, 10, 10, 10, 30, 10})
	var dirs []direction.Direction
	for {
		if _, ok := d.Next(); !ok {
			break
		}
		es, errSig := s.OnSignal(d)
		require.NoError(t, errSig)
		dirs = append(dirs, es.GetDirection())
	}
	// the jump to 30 breaks the upper band, the fall back to 10 crosses
	// the middle band and unwinds
	assert.Equal(t, []direction.Direction{
		direction.Flat,
		direction.Flat,
		direction.Flat,
		direction.Flat,
		direction.ShortSpread,
		direction.Flat,
	}, dirs)
}
