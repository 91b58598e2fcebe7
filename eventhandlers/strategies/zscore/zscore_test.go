package zscore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

func TestNextStateSequence(t *testing.T) {
	t.Parallel()
	zs := []float64{0, 1.0, 2.1, 1.0, 0.4, -2.2, 0.3}
	exp := []direction.Direction{
		direction.Flat,
		direction.Flat,
		direction.ShortSpread,
		direction.ShortSpread,
		direction.Flat,
		direction.LongSpread,
		direction.Flat,
	}
	state := direction.Flat
	for i := range zs {
		state = NextState(state, zs[i], 2.0, 0.5)
		assert.Equalf(t, exp[i], state, "state mismatch at index %v", i)
	}
}

func TestNextStateHysteresis(t *testing.T) {
	t.Parallel()
	// pseudo random walk, the machine may never jump between long and
	// short without an intervening flat
	z, seed := 0.0, uint64(42)
	state := direction.Flat
	for i := 0; i < 10000; i++ {
		seed = seed*6364136223846793005 + 1442695040888963407
		z += float64(int64(seed>>33)%1000)/250.0 - 1.998
		next := NextState(state, z, 2.0, 0.5)
		if state.IsOpen() && next.IsOpen() && state != next {
			t.Fatalf("jumped straight from %v to %v at step %v", state, next, i)
		}
		state = next
	}
}

func TestNextStateNeverReentersSameBar(t *testing.T) {
	t.Parallel()
	// an exit decision holds for the rest of the bar even when the z-score
	// sits beyond the opposite entry threshold
	state := NextState(direction.ShortSpread, -2.5, 2.0, 0.5)
	assert.Equal(t, direction.Flat, state)
	state = NextState(direction.LongSpread, 2.5, 2.0, 0.5)
	assert.Equal(t, direction.Flat, state)
}

func TestSetCustomSettings(t *testing.T) {
	t.Parallel()
	s := Strategy{}
	err := s.SetCustomSettings(nil)
	assert.NoError(t, err)

	settings := make(map[string]interface{})
	settings[entryZKey] = 2.5
	settings[exitZKey] = 0.75
	settings[lookbackKey] = float64(30)
	err = s.SetCustomSettings(settings)
	assert.NoError(t, err)
	assert.Equal(t, 2.5, s.entryZ)
	assert.Equal(t, 0.75, s.exitZ)
	assert.Equal(t, 30, s.lookback)

	settings[entryZKey] = "2.5"
	err = s.SetCustomSettings(settings)
	assert.ErrorIs(t, err, base.ErrInvalidCustomSettings)

	settings[entryZKey] = 2.5
	settings[exitZKey] = -0.1
	err = s.SetCustomSettings(settings)
	assert.ErrorIs(t, err, base.ErrInvalidCustomSettings)

	settings[exitZKey] = 3.0
	err = s.SetCustomSettings(settings)
	assert.ErrorIs(t, err, base.ErrInvalidCustomSettings)

	settings[exitZKey] = 0.75
	settings[lookbackKey] = 1.5
	err = s.SetCustomSettings(settings)
	assert.ErrorIs(t, err, base.ErrInvalidCustomSettings)

	settings[lookbackKey] = float64(30)
	settings["lol"] = float64(30)
	err = s.SetCustomSettings(settings)
	assert.ErrorIs(t, err, base.ErrInvalidCustomSettings)
}

func TestSetDefaults(t *testing.T) {
	t.Parallel()
	s := Strategy{state: direction.ShortSpread}
	s.SetDefaults()
	assert.Equal(t, 2.0, s.entryZ)
	assert.Equal(t, 0.5, s.exitZ)
	assert.Equal(t, 20, s.lookback)
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
		entryZKey:   1.0,
		exitZKey:    0.2,
		lookbackKey: float64(3),
	}))

	d := signalDriver(t, []float64{10, 10, 10, 10, 30})
	var dirs []direction.Direction
	for {
		if _, ok := d.Next(); !ok {
			break
		}
		es, errSig := s.OnSignal(d)
		require.NoError(t, errSig)
		dirs = append(dirs, es.GetDirection())
	}
	// two warmup bars, two flat full windows, then the jump trips the
	// short entry
	assert.Equal(t, []direction.Direction{
		direction.Flat,
		direction.Flat,
		direction.Flat,
		direction.Flat,
		direction.ShortSpread,
	}, dirs)
}

func TestOnSignalDegenerate(t *testing.T) {
	t.Parallel()
	s := Strategy{}
	s.SetDefaults()
	require.NoError(t, s.SetCustomSettings(map[string]interface{}{lookbackKey: float64(3)}))

	d := signalDriver(t, []float64{10, 10, 10, 10})
	for i := 0; i < 3; i++ {
		_, ok := d.Next()
		require.True(t, ok)
	}
	es, err := s.OnSignal(d)
	require.NoError(t, err)
	assert.Equal(t, direction.Flat, es.GetDirection())
	assert.True(t, es.IsDegenerate())
	assert.Zero(t, es.GetZScore())

	_, ok := d.Next()
	require.True(t, ok)
	es, err = s.OnSignal(d)
	require.NoError(t, err)
	assert.True(t, es.IsDegenerate())
	assert.Equal(t, direction.Flat, es.GetDirection())
}

func TestOnSignalWarmupStaysFlat(t *testing.T) {
	t.Parallel()
	s := Strategy{}
	s.SetDefaults()

	d := signalDriver(t, []float64{10, 20, 30})
	_, ok := d.Next()
	require.True(t, ok)
	es, err := s.OnSignal(d)
	require.NoError(t, err)
	assert.Equal(t, direction.Flat, es.GetDirection())
	assert.Contains(t, es.GetReason(), "Not enough data")
}
