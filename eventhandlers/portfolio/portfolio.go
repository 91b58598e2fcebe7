package portfolio

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spread-lab/prefspread/common"
	"github.com/spread-lab/prefspread/data"
	"github.com/spread-lab/prefspread/direction"
	"github.com/spread-lab/prefspread/eventhandlers/portfolio/holdings"
	"github.com/spread-lab/prefspread/eventtypes/event"
	"github.com/spread-lab/prefspread/eventtypes/fill"
	"github.com/spread-lab/prefspread/eventtypes/order"
	"github.com/spread-lab/prefspread/eventtypes/signal"
)

// Setup creates a portfolio manager instance sized against the notional
func Setup(notional float64) (*Portfolio, error) {
	if notional <= 0 {
		return nil, errNotionalInvalid
	}
	p := &Portfolio{}
	p.notional = decimal.NewFromFloat(notional)
	return p, nil
}

// Reset returns the portfolio manager to its default state, keeping sizing
func (p *Portfolio) Reset() {
	p.latest = holdings.Holding{}
	p.snapshots = nil
}

// Update marks any held position to the data event's prices and records the
// holdings snapshot for the offset
func (p *Portfolio) Update(d common.DataEventHandler) error {
	if d == nil {
		return common.ErrNilEvent
	}
	if p.latest.Timestamp.IsZero() {
		h, err := holdings.Create(d, p.notional)
		if err != nil {
			return err
		}
		p.latest = h
	} else {
		p.latest.UpdateValue(d)
	}
	p.snapshots = append(p.snapshots, p.latest)
	return nil
}

// OnSignal translates the strategy's desired spread direction into target
// units per leg and raises an order for the difference against current
// holdings. A nil order means holdings already match the target
func (p *Portfolio) OnSignal(ev signal.Event, d data.Handler) (*order.Order, error) {
	if ev == nil || d == nil {
		return nil, common.ErrNilArguments
	}
	if !ev.GetDirection().IsValid() {
		return nil, errInvalidDirection
	}
	if p.latest.Timestamp.IsZero() {
		return nil, errNoHoldings
	}
	latest := d.Latest()
	if latest == nil {
		return nil, common.ErrNilEvent
	}

	var sign decimal.Decimal
	switch ev.GetDirection() {
	case direction.LongSpread:
		sign = decimal.NewFromInt(1)
	case direction.ShortSpread:
		sign = decimal.NewFromInt(-1)
	}

	weights := latest.HedgeRatio()
	deltas := make([]decimal.Decimal, len(weights))
	var trade bool
	for i := range weights {
		target := sign.Mul(p.notional).Mul(decimal.NewFromFloat(weights[i]))
		deltas[i] = target.Sub(p.latest.Units[i])
		if !deltas[i].IsZero() {
			trade = true
		}
	}
	if !trade {
		return nil, nil
	}

	o := &order.Order{
		Event: event.Event{
			Offset: ev.GetOffset(),
			Time:   ev.GetTime(),
			Basket: ev.Instruments(),
			Reason: ev.GetReason(),
		},
		Direction: ev.GetDirection(),
		Deltas:    deltas,
	}
	return o, nil
}

// OnFill applies the filled unit deltas and cost to the holdings ledger.
// The snapshot for the fill's offset is replaced so it reflects end of
// period state
func (p *Portfolio) OnFill(ev fill.Event) (*fill.Fill, error) {
	if ev == nil {
		return nil, common.ErrNilEvent
	}
	if p.latest.Timestamp.IsZero() {
		return nil, errNoHoldings
	}
	p.latest.Update(ev)
	if n := len(p.snapshots); n > 0 && p.snapshots[n-1].Offset == ev.GetOffset() {
		p.snapshots[n-1] = p.latest
	} else {
		p.snapshots = append(p.snapshots, p.latest)
	}
	fe, ok := ev.(*fill.Fill)
	if !ok {
		return nil, fmt.Errorf("%w expected fill event", common.ErrInvalidDataType)
	}
	return fe, nil
}

// CloseAllPositions raises an order flattening every held leg at the final
// data event. A nil order means the portfolio finished flat
func (p *Portfolio) CloseAllPositions(d common.DataEventHandler) (*order.Order, error) {
	if d == nil {
		return nil, common.ErrNilEvent
	}
	if p.latest.Timestamp.IsZero() {
		return nil, errNoHoldings
	}
	deltas := make([]decimal.Decimal, len(p.latest.Units))
	var open bool
	for i := range p.latest.Units {
		deltas[i] = p.latest.Units[i].Neg()
		if !deltas[i].IsZero() {
			open = true
		}
	}
	if !open {
		return nil, nil
	}
	o := &order.Order{
		Event: event.Event{
			Offset: d.GetOffset(),
			Time:   d.GetTime(),
			Basket: d.Instruments(),
			Reason: "Closing remaining position at end of run",
		},
		Direction: direction.Flat,
		Deltas:    deltas,
	}
	return o, nil
}

// GetLatestHoldings returns the most recent holdings snapshot
func (p *Portfolio) GetLatestHoldings() holdings.Holding {
	return p.latest
}

// HoldingsSnapshots returns one holdings snapshot per processed offset
func (p *Portfolio) HoldingsSnapshots() []holdings.Holding {
	return p.snapshots
}

// ViewHoldingAtTimePeriod retrieves the snapshot of holdings at a specific time
func (p *Portfolio) ViewHoldingAtTimePeriod(t time.Time) (holdings.Holding, error) {
	for i := len(p.snapshots) - 1; i >= 0; i-- {
		if p.snapshots[i].Timestamp.Equal(t) {
			return p.snapshots[i], nil
		}
	}
	return holdings.Holding{}, fmt.Errorf("%w at %v", errNoHoldings, t)
}
