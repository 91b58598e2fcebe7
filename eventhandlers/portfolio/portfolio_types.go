package portfolio

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spread-lab/prefspread/common"
	"github.com/spread-lab/prefspread/data"
	"github.com/spread-lab/prefspread/eventhandlers/portfolio/holdings"
	"github.com/spread-lab/prefspread/eventtypes/fill"
	"github.com/spread-lab/prefspread/eventtypes/order"
	"github.com/spread-lab/prefspread/eventtypes/signal"
)

var (
	errNotionalInvalid  = errors.New("notional must be greater than zero")
	errInvalidDirection = errors.New("invalid direction raised in signal")
	errNoHoldings       = errors.New("no holdings exist")
)

// Portfolio sizes target spread positions from signals and keeps the
// holdings ledger up to date as fills arrive
type Portfolio struct {
	notional  decimal.Decimal
	latest    holdings.Holding
	snapshots []holdings.Holding
}

// Handler contains all functionality expected of a portfolio manager
type Handler interface {
	OnSignal(signal.Event, data.Handler) (*order.Order, error)
	OnFill(fill.Event) (*fill.Fill, error)
	Update(common.DataEventHandler) error
	CloseAllPositions(common.DataEventHandler) (*order.Order, error)
	GetLatestHoldings() holdings.Holding
	HoldingsSnapshots() []holdings.Holding
	ViewHoldingAtTimePeriod(time.Time) (holdings.Holding, error)
	Reset()
}
