package statistics

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spread-lab/prefspread/common"
	"github.com/spread-lab/prefspread/direction"
	"github.com/spread-lab/prefspread/eventhandlers/portfolio/holdings"
	"github.com/spread-lab/prefspread/eventtypes/fill"
	"github.com/spread-lab/prefspread/eventtypes/order"
	"github.com/spread-lab/prefspread/eventtypes/signal"
)

var (
	// ErrAlreadyProcessed occurs when an event has already been processed
	ErrAlreadyProcessed = errors.New("this event has been processed already")
	errNoDataAtOffset   = errors.New("no data found at offset")
	errReceivedNoData   = errors.New("received no data")
)

// Statistic collects every event raised during a run and reduces them to
// the performance summary
type Statistic struct {
	StrategyName        string          `json:"strategy-name"`
	StrategyDescription string          `json:"strategy-description"`
	StrategyNickname    string          `json:"strategy-nickname"`
	StartDate           time.Time       `json:"start-date"`
	EndDate             time.Time       `json:"end-date"`
	Notional            decimal.Decimal `json:"notional"`
	RiskFreeRate        float64         `json:"risk-free-rate"`
	PeriodsPerYear      float64         `json:"periods-per-year"`
	Events              []DataAtOffset  `json:"-"`
	Results             Results         `json:"results"`
}

// DataAtOffset groups every event and the end of period holdings state at
// a single time interval
type DataAtOffset struct {
	Offset      int64
	Time        time.Time
	Holdings    holdings.Holding
	DataEvent   common.DataEventHandler
	SignalEvent signal.Event
	OrderEvent  order.Event
	FillEvent   fill.Event
}

// Handler interface details what a statistic is expected to do
type Handler interface {
	SetStrategyName(string)
	SetupEventForTime(common.DataEventHandler) error
	SetEventForOffset(common.EventHandler) error
	AddHoldingsForTime(*holdings.Holding) error
	CalculateAllResults() error
	Reset()
	Serialise() (string, error)
}

// EquityPoint is one step of the cumulative equity curve
type EquityPoint struct {
	Offset    int64           `json:"offset"`
	Timestamp time.Time       `json:"timestamp"`
	Equity    decimal.Decimal `json:"equity"`
	PeriodPNL decimal.Decimal `json:"period-pnl"`
}

// SignalPoint records the strategy's chosen state for one timestamp
type SignalPoint struct {
	Timestamp  time.Time           `json:"timestamp"`
	Direction  direction.Direction `json:"direction"`
	ZScore     float64             `json:"z-score"`
	Degenerate bool                `json:"degenerate,omitempty"`
}

// ValueAtTime couples an equity value with when it occurred
type ValueAtTime struct {
	Time  time.Time       `json:"time"`
	Value decimal.Decimal `json:"value"`
	Set   bool            `json:"-"`
}

// Swing holds a drawdown from an equity peak to its trough
type Swing struct {
	Highest         ValueAtTime     `json:"highest"`
	Lowest          ValueAtTime     `json:"lowest"`
	DrawdownPercent decimal.Decimal `json:"drawdown"`
}

// Results is the final performance summary of a backtest run
type Results struct {
	TotalPNL                 decimal.Decimal `json:"total-pnl"`
	TotalReturnPercent       float64         `json:"total-return-percent"`
	SharpeRatio              float64         `json:"sharpe-ratio"`
	SortinoRatio             float64         `json:"sortino-ratio"`
	CalmarRatio              float64         `json:"calmar-ratio"`
	CompoundAnnualGrowthRate float64         `json:"compound-annual-growth-rate"`
	MaxDrawdown              Swing           `json:"max-drawdown"`
	PeriodWinRate            float64         `json:"period-win-rate"`
	TradeWinRate             float64         `json:"trade-win-rate"`
	Turnover                 float64         `json:"turnover"`
	TotalEvents              int64           `json:"total-events"`
	TotalTransactions        int64           `json:"total-transactions"`
	RoundTrips               int64           `json:"round-trips"`
	DegenerateWindows        int64           `json:"degenerate-windows"`
	TotalFees                decimal.Decimal `json:"total-fees"`
	TotalTradedValue         decimal.Decimal `json:"total-traded-value"`
	EquityCurve              []EquityPoint   `json:"equity-curve"`
	Signals                  []SignalPoint   `json:"signals"`
}
