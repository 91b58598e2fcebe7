package common

import (
	"errors"
	"time"
)

const (
	// CSVStr is a config readable data source to load prices from csv files
	CSVStr = "csv"
	// DatabaseStr is a config readable data source to load prices from a database
	DatabaseStr = "database"
)

var (
	// ErrNilArguments is a common error response to highlight that nils were passed in
	// when they should not have been
	ErrNilArguments = errors.New("received nil argument(s)")
	// ErrNilEvent is a common error for whenever a nil event occurs when it shouldn't have
	ErrNilEvent = errors.New("nil event received")
	// ErrInvalidDataSource occurs when an invalid data source is defined in the config
	ErrInvalidDataSource = errors.New("invalid data source received")
	// ErrInvalidDataType occurs when an event is of an unexpected concrete type
	ErrInvalidDataType = errors.New("invalid data type received")
)

// EventHandler interface implements required GetTime() & Instruments() returns
type EventHandler interface {
	GetOffset() int64
	SetOffset(int64)
	IsEvent() bool
	GetTime() time.Time
	Instruments() []string
	GetReason() string
	AppendReason(string)
}

// DataEventHandler interface used for loading and interacting with data
type DataEventHandler interface {
	EventHandler
	Price(i int) float64
	Prices() []float64
	SpreadValue() float64
	HedgeRatio() []float64
}

// Banner is optionally printed to the command line window on startup
const Banner = `
                    ____                           __
   ____  ________  / __/________  ________  ____ _/ /
  / __ \/ ___/ _ \/ /_/ ___/ __ \/ ___/ _ \/ __  / /
 / /_/ / /  /  __/ __(__  ) /_/ / /  /  __/ /_/ / /_/
/ .___/_/   \___/_/ /____/ .___/_/   \___/\__,_/\__,_/
/_/                     /_/
`
