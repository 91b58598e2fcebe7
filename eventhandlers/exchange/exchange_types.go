package exchange

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/spread-lab/prefspread/data"
	"github.com/spread-lab/prefspread/eventtypes/fill"
	"github.com/spread-lab/prefspread/eventtypes/order"
)

var (
	errCostInvalid        = errors.New("transaction cost bps cannot be negative")
	errDeltaPriceMismatch = errors.New("order deltas do not match the basket price count")
)

// Exchange fills orders at the latest observed prices, charging a flat
// basis point cost on traded value
type Exchange struct {
	costBps decimal.Decimal
}

// ExecutionHandler executes orders raised by the portfolio manager
type ExecutionHandler interface {
	ExecuteOrder(order.Event, data.Handler) (*fill.Fill, error)
	Reset()
}
