package holdings

import (
	"github.com/shopspring/decimal"

	"github.com/spread-lab/prefspread/common"
	"github.com/spread-lab/prefspread/eventtypes/fill"
)

// Create takes the first data event and opens a flat holding snapshot
// against the configured notional
func Create(d common.DataEventHandler, notional decimal.Decimal) (Holding, error) {
	if d == nil {
		return Holding{}, common.ErrNilEvent
	}
	if notional.LessThanOrEqual(decimal.Zero) {
		return Holding{}, ErrNotionalInvalid
	}
	prices := d.Prices()
	h := Holding{
		Offset:    d.GetOffset(),
		Timestamp: d.GetTime(),
		Basket:    d.Instruments(),
		Units:     make([]decimal.Decimal, len(prices)),
		Prices:    make([]decimal.Decimal, len(prices)),
		Notional:  notional,
		Equity:    notional,
	}
	for i := range prices {
		h.Prices[i] = decimal.NewFromFloat(prices[i])
	}
	return h, nil
}

// UpdateValue marks the held units to the data event's prices and accrues
// the period's P&L from the price change on each leg
func (h *Holding) UpdateValue(d common.DataEventHandler) {
	h.Timestamp = d.GetTime()
	h.Offset = d.GetOffset()
	latest := d.Prices()
	// fresh backing arrays so earlier snapshots keep their own values
	prices := make([]decimal.Decimal, len(h.Prices))
	copy(prices, h.Prices)
	period := decimal.Zero
	for i := range h.Units {
		if i >= len(latest) {
			break
		}
		prices[i] = decimal.NewFromFloat(latest[i])
		period = period.Add(h.Units[i].Mul(prices[i].Sub(h.Prices[i])))
	}
	h.Prices = prices
	h.PeriodPNL = period
	h.TotalPNL = h.TotalPNL.Add(period)
	h.updateValue()
}

// Update applies a fill's unit deltas, traded value and cost to the ledger
func (h *Holding) Update(f fill.Event) {
	h.Timestamp = f.GetTime()
	h.Offset = f.GetOffset()
	deltas := f.GetDeltas()
	fillPrices := f.GetPrices()
	units := make([]decimal.Decimal, len(h.Units))
	copy(units, h.Units)
	prices := make([]decimal.Decimal, len(h.Prices))
	copy(prices, h.Prices)
	for i := range deltas {
		if i >= len(units) {
			break
		}
		units[i] = units[i].Add(deltas[i])
		if i < len(fillPrices) {
			prices[i] = fillPrices[i]
		}
	}
	h.Units = units
	h.Prices = prices
	h.TradedValue = h.TradedValue.Add(f.GetTradedValue())
	h.TotalFees = h.TotalFees.Add(f.GetCost())
	h.TotalPNL = h.TotalPNL.Sub(f.GetCost())
	h.PeriodPNL = h.PeriodPNL.Sub(f.GetCost())
	h.Transactions++
	h.updateValue()
}

// IsInvested returns whether any leg holds a position
func (h *Holding) IsInvested() bool {
	for i := range h.Units {
		if !h.Units[i].IsZero() {
			return true
		}
	}
	return false
}

func (h *Holding) updateValue() {
	gross := decimal.Zero
	for i := range h.Units {
		gross = gross.Add(h.Units[i].Abs().Mul(h.Prices[i]))
	}
	h.GrossExposure = gross
	h.Equity = h.Notional.Add(h.TotalPNL)
}
