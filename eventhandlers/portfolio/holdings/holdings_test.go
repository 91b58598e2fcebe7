package holdings

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spread-lab/prefspread/common"
	"github.com/spread-lab/prefspread/direction"
	"github.com/spread-lab/prefspread/eventtypes/bar"
	"github.com/spread-lab/prefspread/eventtypes/event"
	"github.com/spread-lab/prefspread/eventtypes/fill"
)

func barAt(offset int64, tt time.Time, prices []float64) *bar.Bar {
	return &bar.Bar{
		Event: event.Event{
			Offset: offset,
			Time:   tt,
			Basket: []string{"PFD-A", "PFD-B"},
		},
		LegPrices: prices,
		Weights:   []float64{1, -1},
	}
}

func TestCreate(t *testing.T) {
	t.Parallel()
	_, err := Create(nil, decimal.NewFromInt(1000))
	assert.ErrorIs(t, err, common.ErrNilEvent)

	tt := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	_, err = Create(barAt(0, tt, []float64{25, 50}), decimal.Zero)
	assert.ErrorIs(t, err, ErrNotionalInvalid)

	h, err := Create(barAt(0, tt, []float64{25, 50}), decimal.NewFromInt(1000))
	require.NoError(t, err)
	assert.Equal(t, int64(0), h.Offset)
	assert.Len(t, h.Units, 2)
	assert.True(t, h.Units[0].IsZero())
	assert.True(t, h.Prices[0].Equal(decimal.NewFromInt(25)))
	assert.True(t, h.Equity.Equal(decimal.NewFromInt(1000)))
	assert.False(t, h.IsInvested())
}

func TestUpdateValueWhileFlat(t *testing.T) {
	t.Parallel()
	tt := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	h, err := Create(barAt(0, tt, []float64{25, 50}), decimal.NewFromInt(1000))
	require.NoError(t, err)

	h.UpdateValue(barAt(1, tt.AddDate(0, 0, 1), []float64{26, 49}))
	assert.True(t, h.PeriodPNL.IsZero())
	assert.True(t, h.Equity.Equal(decimal.NewFromInt(1000)))
	assert.True(t, h.Prices[0].Equal(decimal.NewFromInt(26)))
}

func TestUpdateAppliesFill(t *testing.T) {
	t.Parallel()
	tt := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	h, err := Create(barAt(0, tt, []float64{25, 50}), decimal.NewFromInt(1000))
	require.NoError(t, err)

	f := &fill.Fill{
		Event: event.Event{
			Offset: 0,
			Time:   tt,
			Basket: []string{"PFD-A", "PFD-B"},
		},
		Direction:   direction.LongSpread,
		Deltas:      []decimal.Decimal{decimal.NewFromInt(10), decimal.NewFromInt(-5)},
		Prices:      []decimal.Decimal{decimal.NewFromInt(25), decimal.NewFromInt(50)},
		TradedValue: decimal.NewFromInt(500),
		Cost:        decimal.NewFromFloat(0.25),
	}
	h.Update(f)
	assert.True(t, h.IsInvested())
	assert.True(t, h.Units[0].Equal(decimal.NewFromInt(10)))
	assert.True(t, h.Units[1].Equal(decimal.NewFromInt(-5)))
	assert.True(t, h.GrossExposure.Equal(decimal.NewFromInt(500)))
	assert.True(t, h.TotalFees.Equal(decimal.NewFromFloat(0.25)))
	assert.True(t, h.TotalPNL.Equal(decimal.NewFromFloat(-0.25)))
	assert.True(t, h.Equity.Equal(decimal.NewFromFloat(999.75)))
	assert.Equal(t, int64(1), h.Transactions)

	// both legs move in the spread's favour by one unit of price
	h.UpdateValue(barAt(1, tt.AddDate(0, 0, 1), []float64{26, 49}))
	assert.True(t, h.PeriodPNL.Equal(decimal.NewFromInt(15)), "PeriodPNL was %v", h.PeriodPNL)
	assert.True(t, h.TotalPNL.Equal(decimal.NewFromFloat(14.75)))
	assert.True(t, h.Equity.Equal(decimal.NewFromFloat(1014.75)))
}

func TestSnapshotIsolation(t *testing.T) {
	t.Parallel()
	tt := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	h, err := Create(barAt(0, tt, []float64{25, 50}), decimal.NewFromInt(1000))
	require.NoError(t, err)
	snapshot := h

	f := &fill.Fill{
		Event:       event.Event{Offset: 0, Time: tt, Basket: []string{"PFD-A", "PFD-B"}},
		Direction:   direction.LongSpread,
		Deltas:      []decimal.Decimal{decimal.NewFromInt(10), decimal.NewFromInt(-5)},
		Prices:      []decimal.Decimal{decimal.NewFromInt(25), decimal.NewFromInt(50)},
		TradedValue: decimal.NewFromInt(500),
	}
	h.Update(f)
	assert.True(t, snapshot.Units[0].IsZero())
	assert.True(t, h.Units[0].Equal(decimal.NewFromInt(10)))
}
