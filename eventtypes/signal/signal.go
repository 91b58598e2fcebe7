package signal

import (
	"github.com/spread-lab/prefspread/direction"
)

// IsSignal returns whether the event is a signal type
func (s *Signal) IsSignal() bool {
	return true
}

// SetDirection sets the direction
func (s *Signal) SetDirection(d direction.Direction) {
	s.Direction = d
}

// GetDirection returns the direction
func (s *Signal) GetDirection() direction.Direction {
	return s.Direction
}

// GetZScore returns the z-score that the signal was generated from
func (s *Signal) GetZScore() float64 {
	return s.ZScore
}

// SetZScore sets the z-score
func (s *Signal) SetZScore(z float64) {
	s.ZScore = z
}

// IsDegenerate returns whether the rolling window behind the signal had
// zero variance
func (s *Signal) IsDegenerate() bool {
	return s.Degenerate
}

// SetDegenerate flags the signal as coming from a zero variance window
func (s *Signal) SetDegenerate(d bool) {
	s.Degenerate = d
}
