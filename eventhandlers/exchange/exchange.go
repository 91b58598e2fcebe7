package exchange

import (
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"

	"github.com/spread-lab/prefspread/common"
	"github.com/spread-lab/prefspread/data"
	"github.com/spread-lab/prefspread/eventtypes/event"
	"github.com/spread-lab/prefspread/eventtypes/fill"
	"github.com/spread-lab/prefspread/eventtypes/order"
)

// Setup creates an execution handler charging costBps on traded value
func Setup(costBps float64) (*Exchange, error) {
	if costBps < 0 {
		return nil, errCostInvalid
	}
	e := &Exchange{}
	e.costBps = decimal.NewFromFloat(costBps)
	return e, nil
}

// Reset returns the exchange to initial settings, keeping the cost rate
func (e *Exchange) Reset() {
	*e = Exchange{costBps: e.costBps}
}

// ExecuteOrder fills the order's unit deltas at the latest leg prices and
// raises a fill event holding the traded value and its cost
func (e *Exchange) ExecuteOrder(o order.Event, d data.Handler) (*fill.Fill, error) {
	if o == nil || d == nil {
		return nil, common.ErrNilArguments
	}
	latest := d.Latest()
	if latest == nil {
		return nil, common.ErrNilEvent
	}
	deltas := o.GetDeltas()
	legPrices := latest.Prices()
	if len(deltas) != len(legPrices) {
		return nil, fmt.Errorf("%w: %v deltas against %v prices",
			errDeltaPriceMismatch, len(deltas), len(legPrices))
	}

	u, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	o.SetID(u.String())

	f := &fill.Fill{
		Event: event.Event{
			Offset: o.GetOffset(),
			Time:   o.GetTime(),
			Basket: o.Instruments(),
			Reason: o.GetReason(),
		},
		Direction: o.GetDirection(),
		OrderID:   u.String(),
		Deltas:    make([]decimal.Decimal, len(deltas)),
		Prices:    make([]decimal.Decimal, len(deltas)),
	}
	copy(f.Deltas, deltas)
	traded := decimal.Zero
	for i := range deltas {
		f.Prices[i] = decimal.NewFromFloat(legPrices[i])
		traded = traded.Add(deltas[i].Abs().Mul(f.Prices[i]))
	}
	f.TradedValue = traded
	f.Cost = traded.Mul(e.costBps).Div(decimal.NewFromInt(10000))

	return f, nil
}
