package signal

import (
	"github.com/spread-lab/prefspread/common"
	"github.com/spread-lab/prefspread/direction"
	"github.com/spread-lab/prefspread/eventtypes/event"
)

// Event handler is used for getting trade signal details,
// such as the desired spread direction and the z-score behind it
type Event interface {
	common.EventHandler
	direction.Directioner
	GetZScore() float64
	SetZScore(float64)
	IsDegenerate() bool
	SetDegenerate(bool)
	IsSignal() bool
}

// Signal contains the strategy's desired spread state at a single timestamp
// along with the z-score that produced it
type Signal struct {
	event.Event
	Direction  direction.Direction
	ZScore     float64
	Degenerate bool
}
