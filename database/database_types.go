package database

import (
	"database/sql"
	"errors"
	"path/filepath"
	"sync"
)

const (
	// DBSQLite const string for sqlite across code base
	DBSQLite = "sqlite"
	// DBSQLite3 const string for sqlite3 across code base
	DBSQLite3 = "sqlite3"
	// DBPostgreSQL const string for PostgreSQL across code base
	DBPostgreSQL = "postgres"
	// DefaultSQLiteDatabase is the default sqlite3 database file
	DefaultSQLiteDatabase = "prefspread.db"
)

var (
	// DB is the global database connection
	DB = &Instance{}

	// MigrationDir which folder to look in for current migrations
	MigrationDir = filepath.Join("database", "migrations")

	// ErrNoDatabaseProvided error to display when no database is provided
	ErrNoDatabaseProvided = errors.New("no database provided")
	// ErrDatabaseSupportDisabled error to display when no database is enabled or supported
	ErrDatabaseSupportDisabled = errors.New("database support is disabled")
	// ErrUnsupportedDriver is returned for drivers outside sqlite and postgres
	ErrUnsupportedDriver = errors.New("unsupported database driver")

	errNilInstance = errors.New("nil database instance received")
	errNilConfig   = errors.New("nil database config received")
	errNilSQL      = errors.New("database connection is nil")
)

// Config holds connection details for the price store
type Config struct {
	Enabled  bool   `json:"enabled"`
	Verbose  bool   `json:"verbose"`
	Driver   string `json:"driver"`
	Host     string `json:"host"`
	Port     uint16 `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	Database string `json:"database"`
	SSLMode  string `json:"sslmode"`
}

// Instance holds the database connection alongside its config
type Instance struct {
	SQL       *sql.DB
	config    *Config
	connected bool
	m         sync.RWMutex
}
