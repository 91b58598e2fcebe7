// Package frame turns an aligned price frame and its derived spread series
// into the bar event stream consumed by the backtest loop
package frame

import (
	"errors"

	"github.com/spread-lab/prefspread/common"
	"github.com/spread-lab/prefspread/data"
	"github.com/spread-lab/prefspread/eventtypes/bar"
	"github.com/spread-lab/prefspread/eventtypes/event"
	"github.com/spread-lab/prefspread/series"
	"github.com/spread-lab/prefspread/spread"
)

var (
	errNilFrame           = errors.New("nil aligned frame received")
	errNilSpread          = errors.New("nil spread received")
	errSpreadExceedsFrame = errors.New("spread is longer than the aligned frame")
)

// DataFromFrame implements the data.Handler interface by pairing an aligned
// price frame with the spread series derived from it. In rolling regression
// mode the spread starts part way into the frame, so the stream begins at
// the first row the spread is defined for
type DataFromFrame struct {
	data.Base
	Frame  *series.Frame
	Spread *spread.Spread
}

// Load converts frame rows into bar events and fills the stream with them
func (d *DataFromFrame) Load() error {
	if d.Frame == nil {
		return errNilFrame
	}
	if d.Spread == nil {
		return errNilSpread
	}
	if d.Spread.Len() == 0 {
		return data.ErrNoData
	}
	start := d.Frame.Rows() - d.Spread.Len()
	if start < 0 {
		return errSpreadExceedsFrame
	}

	stream := make([]common.DataEventHandler, d.Spread.Len())
	for i := range d.Spread.Values {
		row := start + i
		stream[i] = &bar.Bar{
			Event: event.Event{
				Offset: int64(i),
				Time:   d.Frame.Times[row],
				Basket: d.Frame.Instruments,
			},
			LegPrices: d.Frame.Prices[row],
			Spread:    d.Spread.Values[i],
			Weights:   d.Spread.Ratio(i),
		}
	}
	d.SetStream(stream)
	d.SortStream()
	return nil
}

// StreamSpread returns the spread value of every bar streamed so far.
// Only history is returned, the stream beyond the current offset stays
// unseen by strategies
func (d *DataFromFrame) StreamSpread() []float64 {
	s := d.GetStream()
	o := d.Offset()

	ret := make([]float64, o)
	for x := range s[:o] {
		ret[x] = s[x].SpreadValue()
	}
	return ret
}
