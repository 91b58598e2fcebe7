package fill

import (
	"github.com/shopspring/decimal"

	"github.com/spread-lab/prefspread/common"
	"github.com/spread-lab/prefspread/direction"
	"github.com/spread-lab/prefspread/eventtypes/event"
)

// Fill is an event that details the result of executing an order against
// the bar's prices
type Fill struct {
	event.Event
	Direction   direction.Direction `json:"direction"`
	OrderID     string              `json:"order-id"`
	Deltas      []decimal.Decimal   `json:"deltas"`
	Prices      []decimal.Decimal   `json:"prices"`
	TradedValue decimal.Decimal     `json:"traded-value"`
	Cost        decimal.Decimal     `json:"cost"`
}

// Event holds all functions required to handle a fill event
type Event interface {
	common.EventHandler
	direction.Directioner
	GetDeltas() []decimal.Decimal
	GetPrices() []decimal.Decimal
	GetTradedValue() decimal.Decimal
	GetCost() decimal.Decimal
	SetCost(decimal.Decimal)
	IsFill() bool
}
