// Package repository resolves the active SQL dialect for the packages that
// issue queries against the price store
package repository

import (
	"github.com/spread-lab/prefspread/database"
)

// GetSQLDialect returns the dialect of the configured database driver,
// defaulting to sqlite3 when no config has been set
func GetSQLDialect() string {
	cfg := database.DB.GetConfig()
	if cfg == nil {
		return database.DBSQLite3
	}
	switch cfg.Driver {
	case database.DBSQLite, database.DBSQLite3:
		return database.DBSQLite3
	case database.DBPostgreSQL:
		return database.DBPostgreSQL
	}
	return database.DBSQLite3
}
