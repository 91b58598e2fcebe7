package bar

import (
	"github.com/spread-lab/prefspread/eventtypes/event"
)

// Bar is the data event for a single aligned timestamp. It carries the price
// of every basket leg along with the spread value and the hedge weights in
// effect at that time
type Bar struct {
	event.Event
	LegPrices []float64
	Spread    float64
	Weights   []float64
}
