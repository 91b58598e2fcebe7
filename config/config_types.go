package config

import (
	"errors"
	"time"

	"github.com/spread-lab/prefspread/database"
)

var (
	errNoStrategyName      = errors.New("strategy name unset")
	errTooFewInstruments   = errors.New("at least two instruments are required to form a spread")
	errUnsetInstrument     = errors.New("instrument name cannot be empty")
	errDuplicateInstrument = errors.New("instrument listed more than once")
	errUnknownDataSource   = errors.New("unknown data source")
	errNoCSVSettings       = errors.New("csv source requires csv-data settings")
	errMissingCSVFile      = errors.New("no csv file configured for instrument")
	errNoDatabaseSettings  = errors.New("database source requires database-data settings")
	errStartEndUnset       = errors.New("start and end dates must be set")
	errBadDate             = errors.New("start date must be before the end date")
	errBadNotional         = errors.New("notional must be positive")
	errNegativeCost        = errors.New("transaction cost cannot be negative")
	errBadPeriodsPerYear   = errors.New("periods per year must be positive")
	errNegativeRiskFree    = errors.New("risk free rate cannot be negative")
	errFixedRatiosRequired = errors.New("fixed hedge mode requires one ratio per instrument")
	errBadLookback         = errors.New("regression lookback must be at least 2")
	errBadRefitInterval    = errors.New("refit interval cannot be negative")
	errNegativeMinimumRows = errors.New("minimum rows cannot be negative")
)

// Config defines a single backtest run
type Config struct {
	Nickname          string            `json:"nickname,omitempty"`
	StrategySettings  StrategySettings  `json:"strategy-settings"`
	SpreadSettings    SpreadSettings    `json:"spread-settings"`
	PortfolioSettings PortfolioSettings `json:"portfolio-settings"`
	StatisticSettings StatisticSettings `json:"statistic-settings"`
	DataSettings      DataSettings      `json:"data-settings"`
	Output            string            `json:"output,omitempty"`
}

// StrategySettings contains what strategy to load along with its custom settings
type StrategySettings struct {
	Name           string                 `json:"name"`
	CustomSettings map[string]interface{} `json:"custom-settings,omitempty"`
}

// SpreadSettings dictates how the hedge ratio and spread are formed
type SpreadSettings struct {
	HedgeMode          string    `json:"hedge-mode"`
	FixedRatios        []float64 `json:"fixed-ratios,omitempty"`
	RegressionLookback int       `json:"regression-lookback,omitempty"`
	RefitEvery         int       `json:"refit-every,omitempty"`
}

// PortfolioSettings holds sizing and cost variables
type PortfolioSettings struct {
	Notional           float64 `json:"notional"`
	TransactionCostBps float64 `json:"transaction-cost-bps"`
}

// StatisticSettings adjusts the performance reductions
type StatisticSettings struct {
	PeriodsPerYear float64 `json:"periods-per-year"`
	RiskFreeRate   float64 `json:"risk-free-rate"`
}

// DataSettings determines where prices come from and how series are aligned
type DataSettings struct {
	Source       string        `json:"source"`
	Instruments  []string      `json:"instruments"`
	AlignMethod  string        `json:"align-method"`
	MinimumRows  int           `json:"minimum-rows,omitempty"`
	CSVData      *CSVData      `json:"csv-data,omitempty"`
	DatabaseData *DatabaseData `json:"database-data,omitempty"`
}

// CSVData maps each instrument to the file holding its observations
type CSVData struct {
	Files map[string]string `json:"files"`
}

// DatabaseData defines the price store connection and query range
type DatabaseData struct {
	StartDate time.Time        `json:"start-date"`
	EndDate   time.Time        `json:"end-date"`
	Config    *database.Config `json:"config"`
}
