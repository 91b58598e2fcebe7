package backtest

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/spread-lab/prefspread/common"
	"github.com/spread-lab/prefspread/config"
	csvdata "github.com/spread-lab/prefspread/data/csv"
	dbdata "github.com/spread-lab/prefspread/data/database"
	"github.com/spread-lab/prefspread/data/frame"
	"github.com/spread-lab/prefspread/database"
	"github.com/spread-lab/prefspread/database/drivers/postgres"
	"github.com/spread-lab/prefspread/database/drivers/sqlite3"
	"github.com/spread-lab/prefspread/eventhandlers/exchange"
	"github.com/spread-lab/prefspread/eventhandlers/portfolio"
	"github.com/spread-lab/prefspread/eventhandlers/statistics"
	"github.com/spread-lab/prefspread/eventhandlers/strategies"
	"github.com/spread-lab/prefspread/log"
	"github.com/spread-lab/prefspread/series"
	"github.com/spread-lab/prefspread/spread"
)

// NewFromConfig takes a validated config and wires up every handler the
// backtest needs to run
func NewFromConfig(cfg *config.Config) (*BackTest, error) {
	if cfg == nil {
		return nil, errNilConfig
	}
	log.Infoln(log.BackTester, "loading backtest components...")
	bt := New()

	basket, err := loadBasket(cfg)
	if err != nil {
		return nil, err
	}

	method, err := series.ParseAlignMethod(cfg.DataSettings.AlignMethod)
	if err != nil {
		return nil, err
	}
	f, err := series.Align(basket, method, cfg.DataSettings.MinimumRows)
	if err != nil {
		return nil, err
	}
	log.Infof(log.BackTester, "aligned %v rows for %v",
		f.Rows(), strings.Join(cfg.DataSettings.Instruments, ", "))

	mode, err := spread.ParseMode(cfg.SpreadSettings.HedgeMode)
	if err != nil {
		return nil, err
	}
	sp, err := spread.Build(f,
		mode,
		cfg.SpreadSettings.FixedRatios,
		cfg.SpreadSettings.RegressionLookback,
		cfg.SpreadSettings.RefitEvery)
	if err != nil {
		return nil, err
	}

	d := &frame.DataFromFrame{Frame: f, Spread: sp}
	err = d.Load()
	if err != nil {
		return nil, err
	}
	bt.data = d

	strat, err := strategies.LoadStrategyByName(cfg.StrategySettings.Name)
	if err != nil {
		return nil, err
	}
	strat.SetDefaults()
	if len(cfg.StrategySettings.CustomSettings) > 0 {
		err = strat.SetCustomSettings(cfg.StrategySettings.CustomSettings)
		if err != nil {
			return nil, err
		}
	}
	bt.strategy = strat

	bt.portfolio, err = portfolio.Setup(cfg.PortfolioSettings.Notional)
	if err != nil {
		return nil, err
	}
	bt.exchange, err = exchange.Setup(cfg.PortfolioSettings.TransactionCostBps)
	if err != nil {
		return nil, err
	}

	bt.statistic = &statistics.Statistic{
		StrategyName:        strat.Name(),
		StrategyDescription: strat.Description(),
		StrategyNickname:    cfg.Nickname,
		Notional:            decimal.NewFromFloat(cfg.PortfolioSettings.Notional),
		RiskFreeRate:        cfg.StatisticSettings.RiskFreeRate,
		PeriodsPerYear:      cfg.StatisticSettings.PeriodsPerYear,
	}

	return bt, nil
}

// loadBasket reads each instrument's price series from the configured
// source
func loadBasket(cfg *config.Config) ([]*series.PriceSeries, error) {
	switch cfg.DataSettings.Source {
	case common.CSVStr:
		if cfg.DataSettings.CSVData == nil {
			return nil, fmt.Errorf("%w: missing csv settings", common.ErrInvalidDataSource)
		}
		return csvdata.LoadBasket(cfg.DataSettings.Instruments, cfg.DataSettings.CSVData.Files)
	case common.DatabaseStr:
		dd := cfg.DataSettings.DatabaseData
		if dd == nil {
			return nil, fmt.Errorf("%w: missing database settings", common.ErrInvalidDataSource)
		}
		err := connectToDatabase(dd.Config)
		if err != nil {
			return nil, err
		}
		defer func() {
			closeErr := database.DB.CloseConnection()
			if closeErr != nil {
				log.Errorf(log.BackTester, "could not close database connection: %v", closeErr)
			}
		}()
		return dbdata.LoadBasket(cfg.DataSettings.Instruments, dd.StartDate, dd.EndDate)
	default:
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidDataSource, cfg.DataSettings.Source)
	}
}

func connectToDatabase(cfg *database.Config) error {
	if cfg == nil {
		return database.ErrNoDatabaseProvided
	}
	err := database.DB.SetConfig(cfg)
	if err != nil {
		return err
	}
	switch cfg.Driver {
	case database.DBPostgreSQL:
		_, err = postgres.Connect(cfg)
	case database.DBSQLite, database.DBSQLite3:
		_, err = sqlite3.Connect(cfg.Database)
	default:
		err = fmt.Errorf("%w: %v", database.ErrUnsupportedDriver, cfg.Driver)
	}
	if err != nil {
		return fmt.Errorf("unable to connect to database: %w", err)
	}
	return database.DB.Ping()
}
