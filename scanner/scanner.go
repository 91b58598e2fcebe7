// Package scanner sweeps every pair combination of an instrument universe
// and ranks how attractive each price spread currently looks for mean
// reversion. Pairs close to a historical extreme carry a suggested
// direction and the per instrument suggestions are tallied into long and
// short lists
package scanner

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/thrasher-corp/gct-ta/indicators"
	"gopkg.in/yaml.v3"

	"github.com/spread-lab/prefspread/common"
	commonmath "github.com/spread-lab/prefspread/common/math"
	csvdata "github.com/spread-lab/prefspread/data/csv"
	dbdata "github.com/spread-lab/prefspread/data/database"
	"github.com/spread-lab/prefspread/database"
	"github.com/spread-lab/prefspread/database/drivers/postgres"
	"github.com/spread-lab/prefspread/database/drivers/sqlite3"
	"github.com/spread-lab/prefspread/direction"
	"github.com/spread-lab/prefspread/log"
	"github.com/spread-lab/prefspread/series"
	"github.com/spread-lab/prefspread/spread"
)

// extremeProximity flags a spread sitting within this share of its
// historical extreme
const extremeProximity = 0.05

// LoadUniverse reads and validates a universe definition from a yaml file
func LoadUniverse(path string) (*Universe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	u := &Universe{}
	err = yaml.Unmarshal(data, u)
	if err != nil {
		return nil, err
	}
	return u, u.Validate()
}

// Validate checks the universe is complete enough to scan, applying the
// csv source and drop alignment defaults
func (u *Universe) Validate() error {
	if u == nil {
		return errNilUniverse
	}
	if len(u.Instruments) < 2 {
		return errTooFewInstruments
	}
	seen := make(map[string]bool, len(u.Instruments))
	for i := range u.Instruments {
		if u.Instruments[i] == "" {
			return errUnsetInstrument
		}
		if seen[u.Instruments[i]] {
			return fmt.Errorf("%w: %v", errDuplicateInstrument, u.Instruments[i])
		}
		seen[u.Instruments[i]] = true
	}
	if u.AlignMethod == "" {
		u.AlignMethod = string(series.AlignDrop)
	}
	if _, err := series.ParseAlignMethod(u.AlignMethod); err != nil {
		return err
	}
	if u.MinimumRows < 0 {
		return errNegativeMinimumRows
	}

	switch u.Source {
	case "":
		u.Source = common.CSVStr
		fallthrough
	case common.CSVStr:
		for i := range u.Instruments {
			if _, ok := u.CSVFiles[u.Instruments[i]]; !ok {
				return fmt.Errorf("%w: %v", errMissingFile, u.Instruments[i])
			}
		}
	case common.DatabaseStr:
		if u.StartDate.IsZero() || u.EndDate.IsZero() {
			return errStartEndUnset
		}
		if u.Database == nil {
			return errNoDatabaseSettings
		}
		if !database.IsSupportedDriver(u.Database.Driver) {
			return fmt.Errorf("%w: %v", database.ErrUnsupportedDriver, u.Database.Driver)
		}
	default:
		return fmt.Errorf("%w: %v", errUnknownSource, u.Source)
	}
	return nil
}

// Setup validates the universe and loads every instrument's price series
// ready to scan
func Setup(u *Universe) (*Scanner, error) {
	if u == nil {
		return nil, errNilUniverse
	}
	err := u.Validate()
	if err != nil {
		return nil, err
	}
	method, err := series.ParseAlignMethod(u.AlignMethod)
	if err != nil {
		return nil, err
	}

	list, err := loadSeries(u)
	if err != nil {
		return nil, err
	}
	s := &Scanner{
		universe: u,
		method:   method,
		series:   make(map[string]*series.PriceSeries, len(list)),
	}
	for i := range list {
		s.series[list[i].Instrument] = list[i]
	}
	return s, nil
}

func loadSeries(u *Universe) ([]*series.PriceSeries, error) {
	switch u.Source {
	case common.CSVStr:
		return csvdata.LoadBasket(u.Instruments, u.CSVFiles)
	case common.DatabaseStr:
		err := connectToDatabase(u.Database)
		if err != nil {
			return nil, err
		}
		defer func() {
			closeErr := database.DB.CloseConnection()
			if closeErr != nil {
				log.Errorf(log.Scanner, "could not close database connection: %v", closeErr)
			}
		}()
		return dbdata.LoadBasket(u.Instruments, u.StartDate, u.EndDate)
	default:
		return nil, fmt.Errorf("%w: %v", errUnknownSource, u.Source)
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

// Scan scores every pair combination of the universe. Pairs whose aligned
// history falls short are skipped with a warning rather than failing the
// sweep
func (s *Scanner) Scan() (*Results, error) {
	res := &Results{Nickname: s.universe.Nickname}
	longs := make(map[string]int)
	shorts := make(map[string]int)

	ins := s.universe.Instruments
	for i := 0; i < len(ins); i++ {
		for j := i + 1; j < len(ins); j++ {
			pair, err := s.analyzePair(ins[i], ins[j])
			if err != nil {
				log.Warnf(log.Scanner, "skipping %v and %v: %v", ins[i], ins[j], err)
				res.Skipped++
				continue
			}
			switch pair.Suggested {
			case direction.ShortSpread:
				shorts[pair.Leg1]++
				longs[pair.Leg2]++
			case direction.LongSpread:
				longs[pair.Leg1]++
				shorts[pair.Leg2]++
			}
			res.Pairs = append(res.Pairs, *pair)
		}
	}

	sort.SliceStable(res.Pairs, func(x, y int) bool {
		if res.Pairs[x].Score != res.Pairs[y].Score {
			return res.Pairs[x].Score > res.Pairs[y].Score
		}
		if res.Pairs[x].Leg1 != res.Pairs[y].Leg1 {
			return res.Pairs[x].Leg1 < res.Pairs[y].Leg1
		}
		return res.Pairs[x].Leg2 < res.Pairs[y].Leg2
	})
	res.Longs = rankPositions(longs)
	res.Shorts = rankPositions(shorts)
	return res, nil
}

// analyzePair aligns two instruments, builds their one to minus one price
// spread and scores how ripe it looks for mean reversion
func (s *Scanner) analyzePair(leg1, leg2 string) (*PairResult, error) {
	f, err := series.Align(
		[]*series.PriceSeries{s.series[leg1], s.series[leg2]},
		s.method,
		s.universe.MinimumRows)
	if err != nil {
		return nil, err
	}
	sp, err := spread.Build(f, spread.ModeFixed, []float64{1, -1}, 0, 0)
	if err != nil {
		return nil, err
	}

	current := sp.Values[len(sp.Values)-1]
	high, low := sp.Values[0], sp.Values[0]
	for _, v := range sp.Values {
		if v > high {
			high = v
		}
		if v < low {
			low = v
		}
	}

	mean := commonmath.ArithmeticAverage(sp.Values)
	std := commonmath.SampleStandardDeviation(sp.Values)
	var z float64
	if std != 0 {
		z = (current - mean) / std
	}

	var corr float64
	if c := indicators.CorrelationCoefficient(f.Column(0), f.Column(1), f.Rows()); len(c) > 0 {
		corr = c[len(c)-1]
	}

	mrProb := commonmath.Clamp(1-math.Abs(z)/3, 0, 1)
	pair := &PairResult{
		Leg1:              leg1,
		Leg2:              leg2,
		Rows:              f.Rows(),
		Correlation:       corr,
		SpreadCurrent:     current,
		SpreadMean:        mean,
		SpreadStd:         std,
		SpreadHigh:        high,
		SpreadLow:         low,
		ZScore:            z,
		MeanReversionProb: mrProb,
		Score:             2*math.Abs(corr) + 3*mrProb + math.Abs(z),
		Suggested:         direction.Flat,
	}

	switch {
	case high-current <= extremeProximity*math.Abs(high):
		// the spread sits at its historical rich end, sell it
		pair.AtMax = true
		pair.Risk = high - current
		pair.Reward = current - low
		pair.Suggested = direction.ShortSpread
	case current-low <= extremeProximity*math.Abs(low):
		pair.AtMin = true
		pair.Risk = current - low
		pair.Reward = high - current
		pair.Suggested = direction.LongSpread
	}
	return pair, nil
}

func rankPositions(counts map[string]int) []PositionCount {
	out := make([]PositionCount, 0, len(counts))
	for k, v := range counts {
		out = append(out, PositionCount{Instrument: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Instrument < out[j].Instrument
	})
	return out
}

// PrintResults logs the ranked pairs and the aggregated position
// suggestions
func (r *Results) PrintResults() {
	log.Info(log.Scanner, "------------------Pair Scan----------------------------------")
	if r.Nickname != "" {
		log.Infof(log.Scanner, "Universe: %v", r.Nickname)
	}
	log.Infof(log.Scanner, "Pairs scored: %v", len(r.Pairs))
	log.Infof(log.Scanner, "Pairs skipped: %v", r.Skipped)
	for i := range r.Pairs {
		p := &r.Pairs[i]
		log.Infof(log.Scanner, "%v. %v & %v score %.2f corr %.2f z %.2f reversion %.1f%%",
			i+1, p.Leg1, p.Leg2, p.Score, p.Correlation, p.ZScore, p.MeanReversionProb*100)
		if p.AtMax || p.AtMin {
			level := "minimum"
			if p.AtMax {
				level = "maximum"
			}
			log.Infof(log.Scanner, "   spread at historical %v, suggested %v, risk %.2f reward %.2f",
				level, p.Suggested, p.Risk, p.Reward)
		}
	}
	log.Info(log.Scanner, "------------------Position Summary---------------------------")
	log.Infof(log.Scanner, "Longs: %v", formatPositions(r.Longs))
	log.Infof(log.Scanner, "Shorts: %v", formatPositions(r.Shorts))
}

func formatPositions(positions []PositionCount) string {
	if len(positions) == 0 {
		return "none"
	}
	parts := make([]string, len(positions))
	for i := range positions {
		parts[i] = fmt.Sprintf("%v (%v)", positions[i].Instrument, positions[i].Count)
	}
	return strings.Join(parts, ", ")
}
