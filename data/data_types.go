package data

import (
	"errors"

	"github.com/spread-lab/prefspread/common"
)

// ErrNoData is returned when a loader produced an empty stream
var ErrNoData = errors.New("no data loaded")

// Base is the base implementation of the Streamer interface functions,
// loader specific functions are implemented per data source
type Base struct {
	latest common.DataEventHandler
	stream []common.DataEventHandler
	offset int64
}

// Handler interface for Loading and Streaming data
type Handler interface {
	Loader
	Streamer
	Reset()
}

// Loader interface for Loading data into backtest supported format
type Loader interface {
	Load() error
}

// Streamer interface handles loading, parsing, distributing the backtest data
type Streamer interface {
	Next() (common.DataEventHandler, bool)
	GetStream() []common.DataEventHandler
	History() []common.DataEventHandler
	Latest() common.DataEventHandler
	List() []common.DataEventHandler
	Offset() int64

	StreamSpread() []float64
}
