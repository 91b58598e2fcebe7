package order

import (
	"github.com/shopspring/decimal"

	"github.com/spread-lab/prefspread/direction"
)

// IsOrder returns whether the event is an order event
func (o *Order) IsOrder() bool {
	return true
}

// SetDirection sets the direction
func (o *Order) SetDirection(d direction.Direction) {
	o.Direction = d
}

// GetDirection returns the direction
func (o *Order) GetDirection() direction.Direction {
	return o.Direction
}

// SetID sets the order id
func (o *Order) SetID(id string) {
	o.ID = id
}

// GetID returns the order id
func (o *Order) GetID() string {
	return o.ID
}

// GetDeltas returns the requested unit change per basket leg
func (o *Order) GetDeltas() []decimal.Decimal {
	return o.Deltas
}
