package holdings

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNotionalInvalid is returned when creating holdings without a positive
// notional to accrue P&L against
var ErrNotionalInvalid = errors.New("notional must be positive to create holdings")

// Holding is a snapshot of the portfolio after an event has been processed.
// Units and Prices are index matched to the basket instruments
type Holding struct {
	Offset        int64             `json:"offset"`
	Timestamp     time.Time         `json:"timestamp"`
	Basket        []string          `json:"basket"`
	Units         []decimal.Decimal `json:"units"`
	Prices        []decimal.Decimal `json:"prices"`
	Notional      decimal.Decimal   `json:"notional"`
	GrossExposure decimal.Decimal   `json:"gross-exposure"`
	PeriodPNL     decimal.Decimal   `json:"period-pnl"`
	TotalPNL      decimal.Decimal   `json:"total-pnl"`
	TotalFees     decimal.Decimal   `json:"total-fees"`
	TradedValue   decimal.Decimal   `json:"traded-value"`
	Transactions  int64             `json:"transactions"`
	Equity        decimal.Decimal   `json:"equity"`
}
