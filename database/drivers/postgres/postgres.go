package postgres

import (
	"database/sql"
	"fmt"

	// import postgres driver
	_ "github.com/lib/pq"

	"github.com/spread-lab/prefspread/database"
)

// Connect establishes a connection pool to the database and returns a
// pointer to the global database instance
func Connect(cfg *database.Config) (*database.Instance, error) {
	if cfg == nil {
		return nil, database.ErrNoDatabaseProvided
	}
	if cfg.Database == "" {
		return nil, database.ErrNoDatabaseProvided
	}

	configDSN := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.Username,
		cfg.Password,
		cfg.Database,
		cfg.SSLMode)

	dbConn, err := sql.Open("postgres", configDSN)
	if err != nil {
		return nil, err
	}

	err = database.DB.SetPostgresConnection(dbConn)
	if err != nil {
		return nil, err
	}
	database.DB.SetConnected(true)

	return database.DB, nil
}
