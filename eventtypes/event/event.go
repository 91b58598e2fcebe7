package event

import (
	"time"
)

// GetOffset returns the offset of the event within the aligned frame
func (e *Event) GetOffset() int64 {
	return e.Offset
}

// SetOffset sets the offset
func (e *Event) SetOffset(o int64) {
	e.Offset = o
}

// IsEvent returns whether the event is an event
func (e *Event) IsEvent() bool {
	return true
}

// GetTime returns the timestamp of the event
func (e *Event) GetTime() time.Time {
	return e.Time
}

// Instruments returns the instruments making up the basket
func (e *Event) Instruments() []string {
	return e.Basket
}

// GetReason returns any reasons that have been attached to the event
func (e *Event) GetReason() string {
	return e.Reason
}

// AppendReason adds a reason to the event to help explain
// why a decision was made
func (e *Event) AppendReason(y string) {
	if e.Reason == "" {
		e.Reason = y
	} else {
		e.Reason += ". " + y
	}
}
