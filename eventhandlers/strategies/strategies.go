package strategies

import (
	"fmt"
	"strings"

	"github.com/spread-lab/prefspread/eventhandlers/strategies/base"
	"github.com/spread-lab/prefspread/eventhandlers/strategies/bollinger"
	"github.com/spread-lab/prefspread/eventhandlers/strategies/zscore"
)

// LoadStrategyByName returns the strategy by its name
func LoadStrategyByName(name string) (Handler, error) {
	strats := GetStrategies()
	for i := range strats {
		if !strings.EqualFold(name, strats[i].Name()) {
			continue
		}
		return strats[i], nil
	}
	return nil, fmt.Errorf("strategy '%v' %w", name, base.ErrStrategyNotFound)
}

// GetStrategies returns a static list of set strategies
// they must be set in here for the backtester to recognise them
func GetStrategies() []Handler {
	return []Handler{
		new(zscore.Strategy),
		new(bollinger.Strategy),
	}
}
