// Package database loads recorded instrument prices from the price store
package database

import (
	"fmt"
	"time"

	"github.com/spread-lab/prefspread/common"
	dbprice "github.com/spread-lab/prefspread/database/repository/price"
	"github.com/spread-lab/prefspread/log"
	"github.com/spread-lab/prefspread/series"
)

// LoadPriceSeries reads every stored observation for one instrument
// between start and end
func LoadPriceSeries(instrument string, start, end time.Time) (*series.PriceSeries, error) {
	rows, err := dbprice.Series(instrument, start, end)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve database data for %v: %w", instrument, err)
	}

	out := &series.PriceSeries{Instrument: instrument}
	for i := range rows {
		out.Observations = append(out.Observations, series.Observation{
			Time:  rows[i].Timestamp,
			Price: rows[i].Price,
		})
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// LoadBasket reads each basket instrument's price series from the price
// store, preserving instrument order
func LoadBasket(instruments []string, start, end time.Time) ([]*series.PriceSeries, error) {
	if len(instruments) == 0 {
		return nil, common.NewConfigError("data-settings.instruments", common.ErrNilArguments)
	}
	out := make([]*series.PriceSeries, len(instruments))
	for i := range instruments {
		ps, err := LoadPriceSeries(instruments[i], start, end)
		if err != nil {
			return nil, err
		}
		log.Debugf(log.DataMgr, "loaded %v observations for %v from the price store",
			len(ps.Observations), instruments[i])
		out[i] = ps
	}
	return out, nil
}
