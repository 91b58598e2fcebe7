package price

import (
	"errors"
	"time"
)

var (
	// ErrNoPriceDataFound returned when no rows match the requested range
	ErrNoPriceDataFound = errors.New("no price data found")

	errInvalidInput = errors.New("invalid price query received")
	errNoPriceData  = errors.New("no price data to insert")
)

// Price is a single stored observation for an instrument
type Price struct {
	Instrument string
	Timestamp  time.Time
	Price      float64
}
