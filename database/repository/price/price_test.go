package price

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thrasher-corp/goose"

	"github.com/spread-lab/prefspread/database"
	"github.com/spread-lab/prefspread/database/drivers/sqlite3"
)

func setupTestDatabase(t *testing.T) {
	t.Helper()
	cfg := &database.Config{
		Enabled:  true,
		Driver:   database.DBSQLite3,
		Database: filepath.Join(t.TempDir(), "prefspread_test.db"),
	}
	require.NoError(t, database.DB.SetConfig(cfg))
	_, err := sqlite3.Connect(cfg.Database)
	require.NoError(t, err)
	require.NoError(t, goose.Run("up", database.DB.SQL, database.DBSQLite3, filepath.Join("..", "..", "migrations"), ""))
	t.Cleanup(func() {
		assert.NoError(t, database.DB.CloseConnection())
	})
}

func day(n int) time.Time {
	return time.Date(2023, 1, n, 0, 0, 0, 0, time.UTC)
}

func TestInsertAndSeries(t *testing.T) {
	setupTestDatabase(t)

	err := Insert(
		Price{Instrument: "PFD-A", Timestamp: day(1), Price: 25.10},
		Price{Instrument: "PFD-A", Timestamp: day(2), Price: 25.30},
		Price{Instrument: "PFD-A", Timestamp: day(3), Price: 25.05},
		Price{Instrument: "PFD-B", Timestamp: day(1), Price: 12.55},
		Price{Instrument: "PFD-B", Timestamp: day(2), Price: 12.65},
	)
	require.NoError(t, err)

	out, err := Series("PFD-A", day(1), day(3))
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, day(1), out[0].Timestamp)
	assert.Equal(t, 25.10, out[0].Price)
	assert.Equal(t, day(3), out[2].Timestamp)

	out, err = Series("PFD-A", day(2), day(3))
	require.NoError(t, err)
	assert.Len(t, out, 2)

	_, err = Series("PFD-C", day(1), day(3))
	assert.ErrorIs(t, err, ErrNoPriceDataFound)

	_, err = Series("", day(1), day(3))
	assert.ErrorIs(t, err, errInvalidInput)
	_, err = Series("PFD-A", day(3), day(1))
	assert.ErrorIs(t, err, errInvalidInput)
}

func TestInsertReplacesExistingRow(t *testing.T) {
	setupTestDatabase(t)

	require.NoError(t, Insert(Price{Instrument: "PFD-A", Timestamp: day(1), Price: 25.10}))
	require.NoError(t, Insert(Price{Instrument: "PFD-A", Timestamp: day(1), Price: 24.95}))

	out, err := Series("PFD-A", day(1), day(1))
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 24.95, out[0].Price)
}

func TestInsertNoData(t *testing.T) {
	assert.ErrorIs(t, Insert(), errNoPriceData)
}

func TestInstruments(t *testing.T) {
	setupTestDatabase(t)

	require.NoError(t, Insert(
		Price{Instrument: "PFD-B", Timestamp: day(1), Price: 12.55},
		Price{Instrument: "PFD-A", Timestamp: day(1), Price: 25.10},
	))

	names, err := Instruments()
	require.NoError(t, err)
	assert.Equal(t, []string{"PFD-A", "PFD-B"}, names)
}

func TestDisconnected(t *testing.T) {
	database.DB.SetConnected(false)
	_, err := Series("PFD-A", day(1), day(2))
	assert.ErrorIs(t, err, database.ErrDatabaseSupportDisabled)

	err = Insert(Price{Instrument: "PFD-A", Timestamp: day(1), Price: 25.10})
	assert.ErrorIs(t, err, database.ErrDatabaseSupportDisabled)

	_, err = Instruments()
	assert.ErrorIs(t, err, database.ErrDatabaseSupportDisabled)
}
