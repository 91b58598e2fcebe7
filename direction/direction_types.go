package direction

// Direction is the spread exposure a signal calls for
type Direction string

const (
	// Flat indicates no exposure to the spread
	Flat Direction = "FLAT"
	// LongSpread buys the base instrument and sells the hedge legs
	LongSpread Direction = "LONG_SPREAD"
	// ShortSpread sells the base instrument and buys the hedge legs
	ShortSpread Direction = "SHORT_SPREAD"
)

// Directioner dictates the spread exposure of an event
type Directioner interface {
	SetDirection(Direction)
	GetDirection() Direction
}

// IsOpen returns whether the direction holds spread exposure
func (d Direction) IsOpen() bool {
	return d == LongSpread || d == ShortSpread
}

// IsValid checks the direction is a known state
func (d Direction) IsValid() bool {
	return d == Flat || d == LongSpread || d == ShortSpread
}
