package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/thrasher-corp/goose"
	"github.com/urfave/cli/v2"

	"github.com/spread-lab/prefspread/backtest"
	"github.com/spread-lab/prefspread/common"
	"github.com/spread-lab/prefspread/config"
	csvdata "github.com/spread-lab/prefspread/data/csv"
	"github.com/spread-lab/prefspread/database"
	"github.com/spread-lab/prefspread/database/drivers/postgres"
	"github.com/spread-lab/prefspread/database/drivers/sqlite3"
	"github.com/spread-lab/prefspread/database/repository"
	"github.com/spread-lab/prefspread/database/repository/price"
	"github.com/spread-lab/prefspread/eventhandlers/statistics"
	"github.com/spread-lab/prefspread/log"
	"github.com/spread-lab/prefspread/report"
	"github.com/spread-lab/prefspread/scanner"
)

const version = "1.0.0"

var errNoDatabaseSettings = errors.New("config carries no database settings")

var runCommand = &cli.Command{
	Name:  "run",
	Usage: "execute a backtest described by a config file",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:      "config",
			Aliases:   []string{"c"},
			Usage:     "path to the run config",
			Required:  true,
			TakesFile: true,
		},
		&cli.StringFlag{
			Name:  "strategy",
			Usage: "override the configured strategy name",
		},
		&cli.Float64Flag{
			Name:  "notional",
			Usage: "override the configured notional",
		},
		&cli.Float64Flag{
			Name:  "transaction-cost-bps",
			Usage: "override the configured transaction cost",
		},
		&cli.StringFlag{
			Name:  "output",
			Usage: "override the report output directory",
		},
	},
	Action: executeRun,
}

var scanCommand = &cli.Command{
	Name:  "scan",
	Usage: "rank every instrument pair in a universe file",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:      "universe",
			Aliases:   []string{"u"},
			Usage:     "path to the universe file",
			Required:  true,
			TakesFile: true,
		},
		&cli.StringFlag{
			Name:  "output",
			Usage: "override the report output directory",
		},
	},
	Action: executeScan,
}

var databaseCommand = &cli.Command{
	Name:  "database",
	Usage: "manage the price store",
	Subcommands: []*cli.Command{
		{
			Name:  "migrate",
			Usage: "run schema migrations against the price store",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:      "config",
					Aliases:   []string{"c"},
					Usage:     "path to a run config holding database settings",
					Required:  true,
					TakesFile: true,
				},
				&cli.StringFlag{
					Name:  "command",
					Value: "status",
					Usage: "goose command to run status|up|up-by-one|up-to|down|down-to",
				},
				&cli.StringFlag{
					Name:  "migration-dir",
					Value: database.MigrationDir,
					Usage: "override the migration folder",
				},
				&cli.StringFlag{
					Name:  "args",
					Usage: "arguments to pass to goose",
				},
			},
			Action: executeMigration,
		},
		{
			Name:  "import",
			Usage: "load csv observations into the price store",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:      "config",
					Aliases:   []string{"c"},
					Usage:     "path to a run config holding database settings",
					Required:  true,
					TakesFile: true,
				},
				&cli.StringFlag{
					Name:     "instrument",
					Usage:    "instrument name for the supplied observations",
					Required: true,
				},
				&cli.StringFlag{
					Name:      "file",
					Usage:     "csv file to load observations from",
					Required:  true,
					TakesFile: true,
				},
			},
			Action: executeImport,
		},
	},
}

func main() {
	app := cli.NewApp()
	app.Name = "prefspread"
	app.Version = version
	app.Usage = "mean reversion spread backtesting for preferred stock baskets"
	app.EnableBashCompletion = true
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "loglevel",
			Value: "INFO|WARN|ERROR",
			Usage: "pipe delimited log levels, eg DEBUG|INFO|WARN|ERROR",
		},
	}
	app.Before = func(c *cli.Context) error {
		fmt.Print(common.Banner)
		fmt.Println("v" + version)
		log.SetGlobalLogLevel(c.String("loglevel"))
		return nil
	}
	app.Commands = []*cli.Command{
		runCommand,
		scanCommand,
		databaseCommand,
	}

	err := app.Run(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func executeRun(c *cli.Context) error {
	cfg, err := config.ReadConfigFromFile(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("strategy") {
		cfg.StrategySettings.Name = c.String("strategy")
	}
	if c.IsSet("notional") {
		cfg.PortfolioSettings.Notional = c.Float64("notional")
	}
	if c.IsSet("transaction-cost-bps") {
		cfg.PortfolioSettings.TransactionCostBps = c.Float64("transaction-cost-bps")
	}
	if c.IsSet("output") {
		cfg.Output = c.String("output")
	}
	err = cfg.Validate()
	if err != nil {
		return err
	}
	cfg.PrintSetting()

	bt, err := backtest.NewFromConfig(cfg)
	if err != nil {
		return err
	}
	err = bt.Run()
	if err != nil {
		return err
	}
	err = bt.Stats().CalculateAllResults()
	if err != nil {
		return err
	}
	stats, ok := bt.Stats().(*statistics.Statistic)
	if !ok {
		return fmt.Errorf("%w: %T", common.ErrInvalidDataType, bt.Stats())
	}

	rep, err := report.New(cfg, stats, cfg.Output)
	if err != nil {
		return err
	}
	target, err := rep.GenerateReport()
	if err != nil {
		return err
	}
	log.Infof(log.Report, "run report written to %v", target)
	return rep.WriteSummary(os.Stdout)
}

func executeScan(c *cli.Context) error {
	u, err := scanner.LoadUniverse(c.String("universe"))
	if err != nil {
		return err
	}
	s, err := scanner.Setup(u)
	if err != nil {
		return err
	}
	res, err := s.Scan()
	if err != nil {
		return err
	}
	res.PrintResults()

	rep, err := report.NewScan(res, c.String("output"))
	if err != nil {
		return err
	}
	target, err := rep.GenerateReport()
	if err != nil {
		return err
	}
	log.Infof(log.Report, "scan report written to %v", target)
	return rep.WriteSummary(os.Stdout)
}

func databaseConfigFromFile(path string) (*database.Config, error) {
	cfg, err := config.ReadConfigFromFile(path)
	if err != nil {
		return nil, err
	}
	dd := cfg.DataSettings.DatabaseData
	if dd == nil || dd.Config == nil {
		return nil, errNoDatabaseSettings
	}
	return dd.Config, nil
}

func openDBConnection(cfg *database.Config) error {
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

func closeDBConnection() {
	err := database.DB.CloseConnection()
	if err != nil {
		log.Errorf(log.DatabaseMgr, "unable to close database: %v", err)
	}
}

func executeMigration(c *cli.Context) error {
	dbcfg, err := databaseConfigFromFile(c.String("config"))
	if err != nil {
		return err
	}
	err = openDBConnection(dbcfg)
	if err != nil {
		return err
	}
	defer closeDBConnection()

	drv := repository.GetSQLDialect()
	if drv == database.DBSQLite3 {
		log.Infof(log.DatabaseMgr, "database file: %v", dbcfg.Database)
	} else {
		log.Infof(log.DatabaseMgr, "connected to: %v", dbcfg.Host)
	}
	return goose.Run(c.String("command"), database.DB.SQL, drv, c.String("migration-dir"), c.String("args"))
}

func executeImport(c *cli.Context) error {
	dbcfg, err := databaseConfigFromFile(c.String("config"))
	if err != nil {
		return err
	}
	err = openDBConnection(dbcfg)
	if err != nil {
		return err
	}
	defer closeDBConnection()

	ps, err := csvdata.LoadPriceSeries(c.String("instrument"), c.String("file"))
	if err != nil {
		return err
	}
	rows := make([]price.Price, len(ps.Observations))
	for i := range ps.Observations {
		rows[i] = price.Price{
			Instrument: ps.Instrument,
			Timestamp:  ps.Observations[i].Time,
			Price:      ps.Observations[i].Price,
		}
	}
	err = price.Insert(rows...)
	if err != nil {
		return err
	}
	log.Infof(log.DatabaseMgr, "imported %v observations for %v", len(rows), ps.Instrument)
	return nil
}
