package bollinger

import (
	"fmt"
	"math"
	"strings"

	"github.com/thrasher-corp/gct-ta/indicators"

	"github.com/spread-lab/prefspread/common"
	"github.com/spread-lab/prefspread/data"
	"github.com/spread-lab/prefspread/direction"
	"github.com/spread-lab/prefspread/eventhandlers/strategies/base"
	"github.com/spread-lab/prefspread/eventtypes/signal"
)

const (
	// Name is the strategy name
	Name         = "bollinger"
	lookbackKey  = "lookback-window"
	bandWidthKey = "band-width"
	maTypeKey    = "ma-type"
	description  = `The bollinger strategy wraps the basket spread in moving average bands. A close above the upper band sells the spread, a close below the lower band buys it, and positions unwind once the spread crosses back over the middle band`
)

// Strategy is an implementation of the Handler interface
type Strategy struct {
	base.Strategy
	lookback  int
	bandWidth float64
	maType    indicators.MaType
	state     direction.Direction
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

// OnSignal handles a data event and returns what action the strategy believes should occur
// For bollinger, this means selling the spread above the upper band, buying it below the
// lower band and closing once the middle band is crossed
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

	upper, middle, lower := indicators.BBANDS(history, s.lookback, s.bandWidth, s.bandWidth, s.maType)
	latest := history[len(history)-1]
	up := upper[len(upper)-1]
	mid := middle[len(middle)-1]
	low := lower[len(lower)-1]

	next := s.state
	switch {
	case s.state == direction.LongSpread:
		if latest >= mid {
			next = direction.Flat
		}
	case s.state == direction.ShortSpread:
		if latest <= mid {
			next = direction.Flat
		}
	case latest > up:
		next = direction.ShortSpread
	case latest < low:
		next = direction.LongSpread
	default:
		next = direction.Flat
	}

	if next != s.state {
		es.AppendReason(fmt.Sprintf("spread %.4f against bands [%.4f, %.4f, %.4f] moved the spread from %v to %v",
			latest, low, mid, up, s.state, next))
	}
	s.state = next
	es.SetDirection(next)
	return &es, nil
}

// SetCustomSettings allows a user to modify the band width, lookback and
// moving average type in their config
func (s *Strategy) SetCustomSettings(customSettings map[string]interface{}) error {
	for k, v := range customSettings {
		switch k {
		case lookbackKey:
			lookback, ok := v.(float64)
			if !ok || lookback != math.Trunc(lookback) || lookback < 2 {
				return fmt.Errorf("%w provided lookback-window value could not be parsed: %v", base.ErrInvalidCustomSettings, v)
			}
			s.lookback = int(lookback)
		case bandWidthKey:
			bandWidth, ok := v.(float64)
			if !ok || bandWidth <= 0 {
				return fmt.Errorf("%w provided band-width value could not be parsed: %v", base.ErrInvalidCustomSettings, v)
			}
			s.bandWidth = bandWidth
		case maTypeKey:
			maType, ok := v.(string)
			if !ok {
				return fmt.Errorf("%w provided ma-type value could not be parsed: %v", base.ErrInvalidCustomSettings, v)
			}
			parsed, err := parseMAType(maType)
			if err != nil {
				return err
			}
			s.maType = parsed
		default:
			return fmt.Errorf("%w unrecognised custom setting key %v with value %v. Cannot apply", base.ErrInvalidCustomSettings, k, v)
		}
	}
	return nil
}

// SetDefaults sets the custom settings to their default values and returns
// the band machine to flat
func (s *Strategy) SetDefaults() {
	s.lookback = 20
	s.bandWidth = 2.0
	s.maType = indicators.Sma
	s.state = direction.Flat
}

func parseMAType(s string) (indicators.MaType, error) {
	switch strings.ToLower(s) {
	case "sma":
		return indicators.Sma, nil
	case "ema":
		return indicators.Ema, nil
	}
	return indicators.Sma, fmt.Errorf("%w unrecognised moving average type %v", base.ErrInvalidCustomSettings, s)
}
