package sqlite3

import (
	"database/sql"

	// import sqlite3 driver
	_ "github.com/mattn/go-sqlite3"

	"github.com/spread-lab/prefspread/database"
)

// Connect opens a connection to a sqlite database file and returns a
// pointer to the global database instance
func Connect(db string) (*database.Instance, error) {
	if db == "" {
		return nil, database.ErrNoDatabaseProvided
	}

	dbConn, err := sql.Open("sqlite3", db)
	if err != nil {
		return nil, err
	}

	database.DB.SetSQLiteConnection(dbConn)
	database.DB.SetConnected(true)

	return database.DB, nil
}
