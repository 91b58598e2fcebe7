package fill

import (
	"github.com/shopspring/decimal"

	"github.com/spread-lab/prefspread/direction"
)

// IsFill returns whether the event is a fill event
func (f *Fill) IsFill() bool {
	return true
}

// SetDirection sets the direction
func (f *Fill) SetDirection(d direction.Direction) {
	f.Direction = d
}

// GetDirection returns the direction
func (f *Fill) GetDirection() direction.Direction {
	return f.Direction
}

// GetDeltas returns the executed unit change per basket leg
func (f *Fill) GetDeltas() []decimal.Decimal {
	return f.Deltas
}

// GetPrices returns the execution price per basket leg
func (f *Fill) GetPrices() []decimal.Decimal {
	return f.Prices
}

// GetTradedValue returns the gross value traded across all legs
func (f *Fill) GetTradedValue() decimal.Decimal {
	return f.TradedValue
}

// GetCost returns the transaction cost charged on the fill
func (f *Fill) GetCost() decimal.Decimal {
	return f.Cost
}

// SetCost sets the transaction cost charged on the fill
func (f *Fill) SetCost(c decimal.Decimal) {
	f.Cost = c
}
