package scanner

import (
	"errors"
	"time"

	"github.com/spread-lab/prefspread/database"
	"github.com/spread-lab/prefspread/direction"
	"github.com/spread-lab/prefspread/series"
)

var (
	errNilUniverse         = errors.New("nil universe received")
	errTooFewInstruments   = errors.New("a scan requires at least two instruments")
	errUnsetInstrument     = errors.New("universe contains an empty instrument")
	errDuplicateInstrument = errors.New("universe contains a duplicate instrument")
	errUnknownSource       = errors.New("unknown universe data source")
	errMissingFile         = errors.New("no csv file configured for instrument")
	errNoDatabaseSettings  = errors.New("universe missing database connection details")
	errStartEndUnset       = errors.New("database universe requires start and end dates")
	errNegativeMinimumRows = errors.New("minimum rows cannot be negative")
)

// Universe describes the instrument set a scan sweeps and where its
// prices come from
type Universe struct {
	Nickname    string            `yaml:"nickname" json:"nickname,omitempty"`
	Instruments []string          `yaml:"instruments" json:"instruments"`
	Source      string            `yaml:"source" json:"source"`
	AlignMethod string            `yaml:"align-method" json:"align-method"`
	MinimumRows int               `yaml:"minimum-rows" json:"minimum-rows"`
	CSVFiles    map[string]string `yaml:"csv-files" json:"csv-files,omitempty"`
	StartDate   time.Time         `yaml:"start-date" json:"start-date"`
	EndDate     time.Time         `yaml:"end-date" json:"end-date"`
	Database    *database.Config  `yaml:"database" json:"database,omitempty"`
}

// PairResult is the scored outcome of one pair combination
type PairResult struct {
	Leg1              string              `json:"leg1"`
	Leg2              string              `json:"leg2"`
	Rows              int                 `json:"rows"`
	Correlation       float64             `json:"correlation"`
	SpreadCurrent     float64             `json:"spread-current"`
	SpreadMean        float64             `json:"spread-mean"`
	SpreadStd         float64             `json:"spread-std"`
	SpreadHigh        float64             `json:"spread-high"`
	SpreadLow         float64             `json:"spread-low"`
	ZScore            float64             `json:"z-score"`
	MeanReversionProb float64             `json:"mean-reversion-prob"`
	Score             float64             `json:"score"`
	AtMax             bool                `json:"at-max"`
	AtMin             bool                `json:"at-min"`
	Risk              float64             `json:"risk"`
	Reward            float64             `json:"reward"`
	Suggested         direction.Direction `json:"suggested"`
}

// PositionCount tallies how many suggested pair trades want an instrument
// on one side
type PositionCount struct {
	Instrument string `json:"instrument"`
	Count      int    `json:"count"`
}

// Results holds every scored pair ranked by composite score along with
// the aggregated position suggestions
type Results struct {
	Nickname string          `json:"nickname,omitempty"`
	Pairs    []PairResult    `json:"pairs"`
	Longs    []PositionCount `json:"longs,omitempty"`
	Shorts   []PositionCount `json:"shorts,omitempty"`
	Skipped  int             `json:"skipped"`
}

// Scanner pairs a universe with its loaded price series
type Scanner struct {
	universe *Universe
	method   series.AlignMethod
	series   map[string]*series.PriceSeries
}
