package strategies

import (
	"github.com/spread-lab/prefspread/data"
	"github.com/spread-lab/prefspread/eventtypes/signal"
)

// Handler defines all functions required to run strategies against data events
type Handler interface {
	Name() string
	Description() string
	OnSignal(data.Handler) (signal.Event, error)
	SetCustomSettings(map[string]interface{}) error
	SetDefaults()
}
