package backtest

import (
	"errors"

	"github.com/spread-lab/prefspread/common"
	"github.com/spread-lab/prefspread/data"
	"github.com/spread-lab/prefspread/eventhandlers/exchange"
	"github.com/spread-lab/prefspread/eventhandlers/portfolio"
	"github.com/spread-lab/prefspread/eventhandlers/statistics"
	"github.com/spread-lab/prefspread/eventhandlers/strategies"
)

var (
	errNilConfig = errors.New("unable to set up backtester with nil config")
	errNilData   = errors.New("no data handler set")
)

// BackTest is the main holder of all backtesting functionality
type BackTest struct {
	eventQueue []common.EventHandler
	data       data.Handler
	strategy   strategies.Handler
	portfolio  portfolio.Handler
	exchange   exchange.ExecutionHandler
	statistic  statistics.Handler
}
