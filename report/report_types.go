package report

import (
	"errors"
	"time"

	"github.com/gofrs/uuid"

	"github.com/spread-lab/prefspread/config"
	"github.com/spread-lab/prefspread/eventhandlers/statistics"
	"github.com/spread-lab/prefspread/scanner"
)

var (
	errNothingToReport = errors.New("no results to report")
	errNilWriter       = errors.New("nil writer received")
)

// Data holds the full artefact written for one run, either a backtest
// or a universe scan
type Data struct {
	RunID      uuid.UUID             `json:"run-id"`
	Generated  time.Time             `json:"generated"`
	Config     *config.Config        `json:"config,omitempty"`
	Statistics *statistics.Statistic `json:"statistics,omitempty"`
	Scan       *scanner.Results      `json:"scan,omitempty"`
	OutputPath string                `json:"-"`
}
