package base

import (
	"github.com/spread-lab/prefspread/common"
	"github.com/spread-lab/prefspread/data"
	"github.com/spread-lab/prefspread/eventtypes/event"
	"github.com/spread-lab/prefspread/eventtypes/signal"
)

// GetBaseData bootstraps a signal event from the latest data event so that
// strategies only have to fill in direction and z-score
func (s *Strategy) GetBaseData(d data.Handler) (signal.Signal, error) {
	if d == nil {
		return signal.Signal{}, common.ErrNilArguments
	}
	latest := d.Latest()
	if latest == nil {
		return signal.Signal{}, common.ErrNilEvent
	}
	return signal.Signal{
		Event: event.Event{
			Offset: latest.GetOffset(),
			Time:   latest.GetTime(),
			Basket: latest.Instruments(),
		},
	}, nil
}
