package zscore

import (
	"fmt"
	"math"

	"github.com/spread-lab/prefspread/common"
	"github.com/spread-lab/prefspread/data"
	"github.com/spread-lab/prefspread/direction"
	"github.com/spread-lab/prefspread/eventhandlers/strategies/base"
	"github.com/spread-lab/prefspread/eventtypes/signal"
	"github.com/spread-lab/prefspread/rolling"
)

const (
	// Name is the strategy name
	Name        = "zscore"
	entryZKey   = "entry-z"
	exitZKey    = "exit-z"
	lookbackKey = "lookback-window"
	description = `The zscore strategy measures how far the basket spread has wandered from its rolling mean in standard deviation units. It sells the spread when the z-score breaches the entry threshold from above, buys it when breached from below, and holds until the z-score decays back inside the narrower exit band`
)

// Strategy is an implementation of the Handler interface
type Strategy struct {
	base.Strategy
	entryZ   float64
	exitZ    float64
	lookback int
	state    direction.Direction
}

// Name returns the name of the strategy
func (s *Strategy) Name() string {
	return Name
}

// Description provides a nice overview of the strategy
// be it definition of terms or to highlight its purpose
func (s *Strategy) Description() string {
	return description
}

// NextState applies the hysteresis transition rules to the current spread
// state. Entries happen only from flat, exits only back to flat, so the
// spread can never jump between long and short without passing through flat
func NextState(current direction.Direction, z, entryZ, exitZ float64) direction.Direction {
	switch current {
	case direction.LongSpread:
		if z >= -exitZ {
			return direction.Flat
		}
	case direction.ShortSpread:
		if z <= exitZ {
			return direction.Flat
		}
	default:
		if z <= -entryZ {
			return direction.LongSpread
		}
		if z >= entryZ {
			return direction.ShortSpread
		}
		return direction.Flat
	}
	return current
}

// OnSignal handles a data event and returns what action the strategy believes should occur
// For zscore, the trailing spread values are folded through a rolling window and the
// resulting z-score is fed to the hysteresis state machine
func (s *Strategy) OnSignal(d data.Handler) (signal.Event, error) {
	if d == nil {
		return nil, common.ErrNilEvent
	}
	es, err := s.GetBaseData(d)
	if err != nil {
		return nil, err
	}

	history := d.StreamSpread()
	if len(history) < s.lookback {
		es.SetDirection(direction.Flat)
		es.AppendReason("Not enough data for signal generation")
		s.state = es.GetDirection()
		return &es, nil
	}

	w, err := rolling.NewWindow(s.lookback)
	if err != nil {
		return nil, err
	}
	for _, v := range history[len(history)-s.lookback:] {
		w.Add(v)
	}

	latest := history[len(history)-1]
	z, ok := rolling.ZScore(latest, w.Mean(), w.StdDev())
	es.SetZScore(z)
	if !ok {
		es.SetDegenerate(true)
		es.AppendReason("Zero variance window, holding the sentinel z-score 0")
	}

	next := NextState(s.state, z, s.entryZ, s.exitZ)
	if next != s.state {
		es.AppendReason(fmt.Sprintf("z-score %.4f moved the spread from %v to %v", z, s.state, next))
	}
	s.state = next
	es.SetDirection(next)
	return &es, nil
}

// SetCustomSettings allows a user to modify the z-score thresholds and the
// rolling lookback in their config
func (s *Strategy) SetCustomSettings(customSettings map[string]interface{}) error {
	for k, v := range customSettings {
		switch k {
		case entryZKey:
			entryZ, ok := v.(float64)
			if !ok || entryZ <= 0 {
				return fmt.Errorf("%w provided entry-z value could not be parsed: %v", base.ErrInvalidCustomSettings, v)
			}
			s.entryZ = entryZ
		case exitZKey:
			exitZ, ok := v.(float64)
			if !ok || exitZ < 0 {
				return fmt.Errorf("%w provided exit-z value could not be parsed: %v", base.ErrInvalidCustomSettings, v)
			}
			s.exitZ = exitZ
		case lookbackKey:
			lookback, ok := v.(float64)
			if !ok || lookback != math.Trunc(lookback) || lookback < 2 {
				return fmt.Errorf("%w provided lookback-window value could not be parsed: %v", base.ErrInvalidCustomSettings, v)
			}
			s.lookback = int(lookback)
		default:
			return fmt.Errorf("%w unrecognised custom setting key %v with value %v. Cannot apply", base.ErrInvalidCustomSettings, k, v)
		}
	}

	if s.entryZ > 0 && s.exitZ >= s.entryZ {
		return fmt.Errorf("%w exit-z %v must sit below entry-z %v to form a hysteresis band",
			base.ErrInvalidCustomSettings, s.exitZ, s.entryZ)
	}
	return nil
}

// SetDefaults sets the custom settings to their default values and returns
// the state machine to flat
func (s *Strategy) SetDefaults() {
	s.entryZ = 2.0
	s.exitZ = 0.5
	s.lookback = 20
	s.state = direction.Flat
}
