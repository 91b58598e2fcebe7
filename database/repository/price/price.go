// Package price is the repository for recorded instrument prices
package price

import (
	"context"
	"database/sql"
	"time"

	"github.com/spread-lab/prefspread/database"
	"github.com/spread-lab/prefspread/database/repository"
	"github.com/spread-lab/prefspread/log"
)

// Series returns the stored observations for one instrument between start
// and end inclusive, ordered by timestamp
func Series(instrument string, start, end time.Time) ([]Price, error) {
	if instrument == "" || start.After(end) {
		return nil, errInvalidInput
	}
	db, err := database.DB.GetSQL()
	if err != nil {
		return nil, err
	}

	var out []Price
	if repository.GetSQLDialect() == database.DBSQLite3 {
		rows, errQ := db.QueryContext(context.TODO(),
			`SELECT timestamp, price FROM price WHERE instrument = ? AND timestamp BETWEEN ? AND ? ORDER BY timestamp`,
			instrument, start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339))
		if errQ != nil {
			return nil, errQ
		}
		defer closeRows(rows)
		for rows.Next() {
			var ts string
			p := Price{Instrument: instrument}
			if err = rows.Scan(&ts, &p.Price); err != nil {
				return nil, err
			}
			p.Timestamp, err = time.Parse(time.RFC3339, ts)
			if err != nil {
				return nil, err
			}
			out = append(out, p)
		}
		if err = rows.Err(); err != nil {
			return nil, err
		}
	} else {
		rows, errQ := db.QueryContext(context.TODO(),
			`SELECT timestamp, price FROM price WHERE instrument = $1 AND timestamp BETWEEN $2 AND $3 ORDER BY timestamp`,
			instrument, start.UTC(), end.UTC())
		if errQ != nil {
			return nil, errQ
		}
		defer closeRows(rows)
		for rows.Next() {
			p := Price{Instrument: instrument}
			if err = rows.Scan(&p.Timestamp, &p.Price); err != nil {
				return nil, err
			}
			p.Timestamp = p.Timestamp.UTC()
			out = append(out, p)
		}
		if err = rows.Err(); err != nil {
			return nil, err
		}
	}

	if len(out) == 0 {
		return nil, ErrNoPriceDataFound
	}
	return out, nil
}

// Insert stores observations within a single transaction, replacing any
// existing row for the same instrument and timestamp
func Insert(prices ...Price) error {
	if len(prices) == 0 {
		return errNoPriceData
	}
	db, err := database.DB.GetSQL()
	if err != nil {
		return err
	}

	ctx := context.TODO()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			errRB := tx.Rollback()
			if errRB != nil {
				log.Errorln(log.DatabaseMgr, errRB)
			}
		}
	}()

	stmt := `INSERT INTO price (instrument, timestamp, price) VALUES ($1, $2, $3)
		ON CONFLICT (instrument, timestamp) DO UPDATE SET price = excluded.price`
	sqlite := repository.GetSQLDialect() == database.DBSQLite3
	if sqlite {
		stmt = `INSERT INTO price (instrument, timestamp, price) VALUES (?, ?, ?)
			ON CONFLICT (instrument, timestamp) DO UPDATE SET price = excluded.price`
	}

	for i := range prices {
		if sqlite {
			_, err = tx.ExecContext(ctx, stmt,
				prices[i].Instrument,
				prices[i].Timestamp.UTC().Format(time.RFC3339),
				prices[i].Price)
		} else {
			_, err = tx.ExecContext(ctx, stmt,
				prices[i].Instrument,
				prices[i].Timestamp.UTC(),
				prices[i].Price)
		}
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Instruments returns the distinct instruments present in the price store
func Instruments() ([]string, error) {
	db, err := database.DB.GetSQL()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(context.TODO(),
		`SELECT DISTINCT instrument FROM price ORDER BY instrument`)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	var out []string
	for rows.Next() {
		var instrument string
		if err = rows.Scan(&instrument); err != nil {
			return nil, err
		}
		out = append(out, instrument)
	}
	return out, rows.Err()
}

func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		log.Errorln(log.DatabaseMgr, err)
	}
}
