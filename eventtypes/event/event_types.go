package event

import (
	"time"
)

// Event contains the fields shared by every event that passes through the
// backtest queue. It is embedded by data, signal, order and fill events
type Event struct {
	Offset int64
	Time   time.Time
	Basket []string
	Reason string
}
