package order

import (
	"github.com/shopspring/decimal"

	"github.com/spread-lab/prefspread/common"
	"github.com/spread-lab/prefspread/direction"
	"github.com/spread-lab/prefspread/eventtypes/event"
)

// Order contains the position changes the portfolio wants executed across
// the basket. Deltas holds the unit change per leg, index matched to the
// basket instruments
type Order struct {
	event.Event
	ID        string
	Direction direction.Direction
	Deltas    []decimal.Decimal
}

// Event inherits common event interfaces along with extra functions related to handling orders
type Event interface {
	common.EventHandler
	direction.Directioner
	GetDeltas() []decimal.Decimal
	SetID(string)
	GetID() string
	IsOrder() bool
}
