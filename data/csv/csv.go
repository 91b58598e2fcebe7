// Package csv loads recorded instrument prices from disk. Files hold one
// date,close row per trading day with an optional header row
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spread-lab/prefspread/common"
	"github.com/spread-lab/prefspread/log"
	"github.com/spread-lab/prefspread/series"
)

// LoadPriceSeries reads every observation for one instrument from file
func LoadPriceSeries(instrument, file string) (*series.PriceSeries, error) {
	csvFile, err := os.Open(file)
	if err != nil {
		return nil, err
	}

	defer func() {
		if errClose := csvFile.Close(); errClose != nil {
			log.Errorln(log.DataMgr, errClose)
		}
	}()

	csvData := csv.NewReader(csvFile)
	out := &series.PriceSeries{Instrument: instrument}

	for rowNumber := 0; ; rowNumber++ {
		row, errCSV := csvData.Read()
		if errCSV != nil {
			if errCSV == io.EOF {
				break
			}
			return nil, errCSV
		}
		if len(row) < 2 {
			return nil, fmt.Errorf("%s row %d: expected date,close received %v", file, rowNumber+1, row)
		}

		ts, errParse := parseTimestamp(row[0])
		if errParse != nil {
			if rowNumber == 0 {
				// header row
				continue
			}
			return nil, fmt.Errorf("%s row %d: %w", file, rowNumber+1, errParse)
		}

		price, errParse := strconv.ParseFloat(row[1], 64)
		if errParse != nil {
			return nil, fmt.Errorf("%s row %d: %w", file, rowNumber+1, errParse)
		}

		out.Observations = append(out.Observations, series.Observation{
			Time:  ts,
			Price: price,
		})
	}

	if len(out.Observations) == 0 {
		return nil, fmt.Errorf("%s: no observations loaded", file)
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// LoadBasket reads each basket instrument's price series from its
// configured file, preserving instrument order
func LoadBasket(instruments []string, files map[string]string) ([]*series.PriceSeries, error) {
	if len(instruments) == 0 {
		return nil, common.NewConfigError("data-settings.instruments", common.ErrNilArguments)
	}
	out := make([]*series.PriceSeries, len(instruments))
	for i := range instruments {
		file, ok := files[instruments[i]]
		if !ok {
			return nil, common.NewConfigError("data-settings.csv.files",
				fmt.Errorf("no file configured for instrument %v", instruments[i]))
		}
		ps, err := LoadPriceSeries(instruments[i], file)
		if err != nil {
			return nil, err
		}
		log.Debugf(log.DataMgr, "loaded %v observations for %v from %v",
			len(ps.Observations), instruments[i], file)
		out[i] = ps
	}
	return out, nil
}

func parseTimestamp(s string) (time.Time, error) {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(v, 0).UTC(), nil
	}
	if ts, err := time.Parse(time.DateOnly, s); err == nil {
		return ts.UTC(), nil
	}
	return time.Parse(time.RFC3339, s)
}
