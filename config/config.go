package config

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/spread-lab/prefspread/common"
	"github.com/spread-lab/prefspread/database"
	"github.com/spread-lab/prefspread/eventhandlers/strategies"
	"github.com/spread-lab/prefspread/eventhandlers/strategies/base"
	"github.com/spread-lab/prefspread/log"
	"github.com/spread-lab/prefspread/series"
	"github.com/spread-lab/prefspread/spread"
)

// DefaultOutputDirectory is where report artifacts land when the config
// does not name a directory
const DefaultOutputDirectory = "results"

// ReadConfigFromFile will take a config from a path
func ReadConfigFromFile(path string) (*Config, error) {
	fileData, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return LoadConfig(fileData)
}

// LoadConfig unmarshalls byte data into a config struct
func LoadConfig(data []byte) (resp *Config, err error) {
	err = json.Unmarshal(data, &resp)
	return resp, err
}

// Validate checks all config settings and fills the defaulted fields
func (c *Config) Validate() error {
	err := c.validateStrategySettings()
	if err != nil {
		return err
	}
	err = c.validateDataSettings()
	if err != nil {
		return err
	}
	err = c.validateSpreadSettings()
	if err != nil {
		return err
	}
	err = c.validatePortfolioSettings()
	if err != nil {
		return err
	}
	err = c.validateStatisticSettings()
	if err != nil {
		return err
	}
	if c.Output == "" {
		c.Output = DefaultOutputDirectory
	}
	return nil
}

func (c *Config) validateStrategySettings() error {
	if c.StrategySettings.Name == "" {
		return common.NewConfigError("strategy-settings.name", errNoStrategyName)
	}
	strats := strategies.GetStrategies()
	for i := range strats {
		if strings.EqualFold(strats[i].Name(), c.StrategySettings.Name) {
			return nil
		}
	}
	return common.NewConfigError("strategy-settings.name", base.ErrStrategyNotFound)
}

// validateDataSettings checks whether someone has set invalid source data
// in their config and defaults the align method when unset
func (c *Config) validateDataSettings() error {
	if len(c.DataSettings.Instruments) < 2 {
		return common.NewConfigError("data-settings.instruments", errTooFewInstruments)
	}
	seen := make(map[string]struct{}, len(c.DataSettings.Instruments))
	for i := range c.DataSettings.Instruments {
		name := c.DataSettings.Instruments[i]
		if name == "" {
			return common.NewConfigError("data-settings.instruments", errUnsetInstrument)
		}
		if _, ok := seen[name]; ok {
			return common.NewConfigError("data-settings.instruments", errDuplicateInstrument)
		}
		seen[name] = struct{}{}
	}

	if c.DataSettings.AlignMethod == "" {
		c.DataSettings.AlignMethod = string(series.AlignDrop)
	}
	if _, err := series.ParseAlignMethod(c.DataSettings.AlignMethod); err != nil {
		return common.NewConfigError("data-settings.align-method", err)
	}
	if c.DataSettings.MinimumRows < 0 {
		return common.NewConfigError("data-settings.minimum-rows", errNegativeMinimumRows)
	}

	switch c.DataSettings.Source {
	case common.CSVStr:
		if c.DataSettings.CSVData == nil || len(c.DataSettings.CSVData.Files) == 0 {
			return common.NewConfigError("data-settings.csv-data", errNoCSVSettings)
		}
		for i := range c.DataSettings.Instruments {
			if _, ok := c.DataSettings.CSVData.Files[c.DataSettings.Instruments[i]]; !ok {
				return common.NewConfigError("data-settings.csv-data.files", errMissingCSVFile)
			}
		}
	case common.DatabaseStr:
		if c.DataSettings.DatabaseData == nil {
			return common.NewConfigError("data-settings.database-data", errNoDatabaseSettings)
		}
		if c.DataSettings.DatabaseData.StartDate.IsZero() ||
			c.DataSettings.DatabaseData.EndDate.IsZero() {
			return common.NewConfigError("data-settings.database-data", errStartEndUnset)
		}
		if !c.DataSettings.DatabaseData.StartDate.Before(c.DataSettings.DatabaseData.EndDate) {
			return common.NewConfigError("data-settings.database-data", errBadDate)
		}
		if c.DataSettings.DatabaseData.Config == nil {
			return common.NewConfigError("data-settings.database-data.config", errNoDatabaseSettings)
		}
		if !database.IsSupportedDriver(c.DataSettings.DatabaseData.Config.Driver) {
			return common.NewConfigError("data-settings.database-data.config.driver", database.ErrUnsupportedDriver)
		}
	default:
		return common.NewConfigError("data-settings.source", errUnknownDataSource)
	}
	return nil
}

func (c *Config) validateSpreadSettings() error {
	mode, err := spread.ParseMode(c.SpreadSettings.HedgeMode)
	if err != nil {
		return common.NewConfigError("spread-settings.hedge-mode", err)
	}
	switch mode {
	case spread.ModeFixed:
		if len(c.SpreadSettings.FixedRatios) != len(c.DataSettings.Instruments) {
			return common.NewConfigError("spread-settings.fixed-ratios", errFixedRatiosRequired)
		}
	case spread.ModeRollingOLS:
		if c.SpreadSettings.RegressionLookback < 2 {
			return common.NewConfigError("spread-settings.regression-lookback", errBadLookback)
		}
		if c.SpreadSettings.RefitEvery < 0 {
			return common.NewConfigError("spread-settings.refit-every", errBadRefitInterval)
		}
		if c.SpreadSettings.RefitEvery == 0 {
			c.SpreadSettings.RefitEvery = 1
		}
	}
	return nil
}

func (c *Config) validatePortfolioSettings() error {
	if c.PortfolioSettings.Notional <= 0 {
		return common.NewConfigError("portfolio-settings.notional", errBadNotional)
	}
	if c.PortfolioSettings.TransactionCostBps < 0 {
		return common.NewConfigError("portfolio-settings.transaction-cost-bps", errNegativeCost)
	}
	return nil
}

func (c *Config) validateStatisticSettings() error {
	if c.StatisticSettings.PeriodsPerYear <= 0 {
		return common.NewConfigError("statistic-settings.periods-per-year", errBadPeriodsPerYear)
	}
	if c.StatisticSettings.RiskFreeRate < 0 {
		return common.NewConfigError("statistic-settings.risk-free-rate", errNegativeRiskFree)
	}
	return nil
}

// PrintSetting prints relevant settings to the console for easy reading
func (c *Config) PrintSetting() {
	log.Info(log.ConfigMgr, "------------------Backtester Settings------------------------")
	log.Info(log.ConfigMgr, "------------------Strategy Settings--------------------------")
	log.Infof(log.ConfigMgr, "Strategy: %s", c.StrategySettings.Name)
	if len(c.StrategySettings.CustomSettings) > 0 {
		log.Info(log.ConfigMgr, "Custom strategy variables:")
		for k, v := range c.StrategySettings.CustomSettings {
			log.Infof(log.ConfigMgr, "%s: %v", k, v)
		}
	} else {
		log.Info(log.ConfigMgr, "Custom strategy variables: unset")
	}
	log.Info(log.ConfigMgr, "------------------Spread Settings----------------------------")
	log.Infof(log.ConfigMgr, "Hedge mode: %v", c.SpreadSettings.HedgeMode)
	if len(c.SpreadSettings.FixedRatios) > 0 {
		log.Infof(log.ConfigMgr, "Fixed ratios: %v", c.SpreadSettings.FixedRatios)
	}
	if c.SpreadSettings.HedgeMode == string(spread.ModeRollingOLS) {
		log.Infof(log.ConfigMgr, "Regression lookback: %v", c.SpreadSettings.RegressionLookback)
		log.Infof(log.ConfigMgr, "Refit every: %v", c.SpreadSettings.RefitEvery)
	}
	log.Info(log.ConfigMgr, "------------------Portfolio Settings-------------------------")
	log.Infof(log.ConfigMgr, "Notional: %v", c.PortfolioSettings.Notional)
	log.Infof(log.ConfigMgr, "Transaction cost bps: %v", c.PortfolioSettings.TransactionCostBps)
	log.Info(log.ConfigMgr, "------------------Statistic Settings-------------------------")
	log.Infof(log.ConfigMgr, "Periods per year: %v", c.StatisticSettings.PeriodsPerYear)
	log.Infof(log.ConfigMgr, "Risk free rate: %v", c.StatisticSettings.RiskFreeRate)
	log.Info(log.ConfigMgr, "------------------Data Settings------------------------------")
	log.Infof(log.ConfigMgr, "Source: %v", c.DataSettings.Source)
	log.Infof(log.ConfigMgr, "Instruments: %v", strings.Join(c.DataSettings.Instruments, ", "))
	log.Infof(log.ConfigMgr, "Align method: %v", c.DataSettings.AlignMethod)
	if c.DataSettings.DatabaseData != nil {
		log.Infof(log.ConfigMgr, "Start date: %v", c.DataSettings.DatabaseData.StartDate.Format("2006-01-02"))
		log.Infof(log.ConfigMgr, "End date: %v", c.DataSettings.DatabaseData.EndDate.Format("2006-01-02"))
	}
	log.Infof(log.ConfigMgr, "Output directory: %v", c.Output)
}
