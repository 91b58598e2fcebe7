package portfolio

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spread-lab/prefspread/common"
	"github.com/spread-lab/prefspread/data"
	"github.com/spread-lab/prefspread/direction"
	"github.com/spread-lab/prefspread/eventtypes/bar"
	"github.com/spread-lab/prefspread/eventtypes/event"
	"github.com/spread-lab/prefspread/eventtypes/fill"
	"github.com/spread-lab/prefspread/eventtypes/signal"
)

type testHandler struct {
	data.Base
}

func (h *testHandler) Load() error { return nil }

func (h *testHandler) StreamSpread() []float64 { return nil }

func barAt(offset int64, tt time.Time, prices, weights []float64) *bar.Bar {
	return &bar.Bar{
		Event: event.Event{
			Offset: offset,
			Time:   tt,
			Basket: []string{"PFD-A", "PFD-B"},
		},
		LegPrices: prices,
		Weights:   weights,
	}
}

func signalAt(offset int64, tt time.Time, dir direction.Direction) *signal.Signal {
	return &signal.Signal{
		Event: event.Event{
			Offset: offset,
			Time:   tt,
			Basket: []string{"PFD-A", "PFD-B"},
		},
		Direction: dir,
	}
}

func TestSetup(t *testing.T) {
	t.Parallel()
	_, err := Setup(0)
	assert.ErrorIs(t, err, errNotionalInvalid)

	_, err = Setup(-100)
	assert.ErrorIs(t, err, errNotionalInvalid)

	p, err := Setup(1000)
	require.NoError(t, err)
	assert.True(t, p.notional.Equal(decimal.NewFromInt(1000)))
}

func TestUpdate(t *testing.T) {
	t.Parallel()
	p, err := Setup(1000)
	require.NoError(t, err)

	err = p.Update(nil)
	assert.ErrorIs(t, err, common.ErrNilEvent)

	tt := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, p.Update(barAt(0, tt, []float64{25, 12}, []float64{1, -2})))
	assert.Len(t, p.HoldingsSnapshots(), 1)
	assert.True(t, p.GetLatestHoldings().Equity.Equal(decimal.NewFromInt(1000)))

	require.NoError(t, p.Update(barAt(1, tt.AddDate(0, 0, 1), []float64{26, 11}, []float64{1, -2})))
	assert.Len(t, p.HoldingsSnapshots(), 2)
	assert.True(t, p.GetLatestHoldings().PeriodPNL.IsZero())
}

func TestOnSignal(t *testing.T) {
	t.Parallel()
	p, err := Setup(1000)
	require.NoError(t, err)

	_, err = p.OnSignal(nil, nil)
	assert.ErrorIs(t, err, common.ErrNilArguments)

	tt := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	d := &testHandler{}
	d.SetStream([]common.DataEventHandler{barAt(0, tt, []float64{25, 12}, []float64{1, -2})})
	d.Next()

	_, err = p.OnSignal(signalAt(0, tt, direction.LongSpread), d)
	assert.ErrorIs(t, err, errNoHoldings)

	require.NoError(t, p.Update(barAt(0, tt, []float64{25, 12}, []float64{1, -2})))

	_, err = p.OnSignal(&signal.Signal{Direction: direction.Direction("SIDEWAYS")}, d)
	assert.ErrorIs(t, err, errInvalidDirection)

	o, err := p.OnSignal(signalAt(0, tt, direction.Flat), d)
	require.NoError(t, err)
	assert.Nil(t, o, "flat signal while flat should not raise an order")

	o, err = p.OnSignal(signalAt(0, tt, direction.LongSpread), d)
	require.NoError(t, err)
	require.NotNil(t, o)
	assert.Equal(t, direction.LongSpread, o.GetDirection())
	require.Len(t, o.Deltas, 2)
	assert.True(t, o.Deltas[0].Equal(decimal.NewFromInt(1000)))
	assert.True(t, o.Deltas[1].Equal(decimal.NewFromInt(-2000)))
}

func TestOnFill(t *testing.T) {
	t.Parallel()
	p, err := Setup(1000)
	require.NoError(t, err)

	_, err = p.OnFill(nil)
	assert.ErrorIs(t, err, common.ErrNilEvent)

	tt := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	f := &fill.Fill{
		Event:       event.Event{Offset: 0, Time: tt, Basket: []string{"PFD-A", "PFD-B"}},
		Direction:   direction.LongSpread,
		Deltas:      []decimal.Decimal{decimal.NewFromInt(1000), decimal.NewFromInt(-2000)},
		Prices:      []decimal.Decimal{decimal.NewFromInt(25), decimal.NewFromInt(12)},
		TradedValue: decimal.NewFromInt(49000),
		Cost:        decimal.NewFromFloat(24.5),
	}
	_, err = p.OnFill(f)
	assert.ErrorIs(t, err, errNoHoldings)

	require.NoError(t, p.Update(barAt(0, tt, []float64{25, 12}, []float64{1, -2})))
	fe, err := p.OnFill(f)
	require.NoError(t, err)
	require.NotNil(t, fe)

	h := p.GetLatestHoldings()
	assert.True(t, h.Units[0].Equal(decimal.NewFromInt(1000)))
	assert.True(t, h.Units[1].Equal(decimal.NewFromInt(-2000)))
	assert.True(t, h.TotalFees.Equal(decimal.NewFromFloat(24.5)))
	assert.Len(t, p.HoldingsSnapshots(), 1, "fill at the same offset replaces the snapshot")

	// same spread target so no further order should be raised
	d := &testHandler{}
	d.SetStream([]common.DataEventHandler{barAt(0, tt, []float64{25, 12}, []float64{1, -2})})
	d.Next()
	o, err := p.OnSignal(signalAt(0, tt, direction.LongSpread), d)
	require.NoError(t, err)
	assert.Nil(t, o)
}

func TestCloseAllPositions(t *testing.T) {
	t.Parallel()
	p, err := Setup(1000)
	require.NoError(t, err)

	_, err = p.CloseAllPositions(nil)
	assert.ErrorIs(t, err, common.ErrNilEvent)

	tt := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	b := barAt(0, tt, []float64{25, 12}, []float64{1, -2})
	_, err = p.CloseAllPositions(b)
	assert.ErrorIs(t, err, errNoHoldings)

	require.NoError(t, p.Update(b))
	o, err := p.CloseAllPositions(b)
	require.NoError(t, err)
	assert.Nil(t, o, "nothing to close when flat")

	f := &fill.Fill{
		Event:       event.Event{Offset: 0, Time: tt, Basket: []string{"PFD-A", "PFD-B"}},
		Direction:   direction.LongSpread,
		Deltas:      []decimal.Decimal{decimal.NewFromInt(1000), decimal.NewFromInt(-2000)},
		Prices:      []decimal.Decimal{decimal.NewFromInt(25), decimal.NewFromInt(12)},
		TradedValue: decimal.NewFromInt(49000),
	}
	_, err = p.OnFill(f)
	require.NoError(t, err)

	o, err = p.CloseAllPositions(b)
	require.NoError(t, err)
	require.NotNil(t, o)
	assert.Equal(t, direction.Flat, o.GetDirection())
	assert.True(t, o.Deltas[0].Equal(decimal.NewFromInt(-1000)))
	assert.True(t, o.Deltas[1].Equal(decimal.NewFromInt(2000)))
}

func TestViewHoldingAtTimePeriod(t *testing.T) {
	t.Parallel()
	p, err := Setup(1000)
	require.NoError(t, err)

	tt := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, p.Update(barAt(0, tt, []float64{25, 12}, []float64{1, -2})))
	require.NoError(t, p.Update(barAt(1, tt.AddDate(0, 0, 1), []float64{26, 11}, []float64{1, -2})))

	h, err := p.ViewHoldingAtTimePeriod(tt)
	require.NoError(t, err)
	assert.Equal(t, int64(0), h.Offset)

	_, err = p.ViewHoldingAtTimePeriod(tt.AddDate(0, 0, 7))
	assert.ErrorIs(t, err, errNoHoldings)
}

func TestReset(t *testing.T) {
	t.Parallel()
	p, err := Setup(1000)
	require.NoError(t, err)
	tt := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, p.Update(barAt(0, tt, []float64{25, 12}, []float64{1, -2})))
	p.Reset()
	assert.Empty(t, p.HoldingsSnapshots())
	assert.True(t, p.notional.Equal(decimal.NewFromInt(1000)), "sizing survives a reset")
}
