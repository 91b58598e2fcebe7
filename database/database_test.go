package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSupportedDriver(t *testing.T) {
	t.Parallel()
	assert.True(t, IsSupportedDriver(DBSQLite))
	assert.True(t, IsSupportedDriver(DBSQLite3))
	assert.True(t, IsSupportedDriver(DBPostgreSQL))
	assert.False(t, IsSupportedDriver("mysql"))
	assert.False(t, IsSupportedDriver(""))
}

func TestSetConfig(t *testing.T) {
	t.Parallel()
	var nilInstance *Instance
	assert.ErrorIs(t, nilInstance.SetConfig(nil), errNilInstance)

	i := &Instance{}
	assert.ErrorIs(t, i.SetConfig(nil), errNilConfig)
	assert.ErrorIs(t, i.SetConfig(&Config{Driver: "mysql"}), ErrUnsupportedDriver)

	cfg := &Config{Driver: DBSQLite3, Database: DefaultSQLiteDatabase}
	assert.NoError(t, i.SetConfig(cfg))
	assert.Equal(t, cfg, i.GetConfig())
}

func TestConnectedState(t *testing.T) {
	t.Parallel()
	i := &Instance{}
	assert.False(t, i.IsConnected())
	i.SetConnected(true)
	assert.True(t, i.IsConnected())
	i.SetConnected(false)
	assert.False(t, i.IsConnected())

	var nilInstance *Instance
	assert.False(t, nilInstance.IsConnected())
	assert.Nil(t, nilInstance.GetConfig())
}

func TestPing(t *testing.T) {
	t.Parallel()
	var nilInstance *Instance
	assert.ErrorIs(t, nilInstance.Ping(), errNilInstance)

	i := &Instance{}
	assert.ErrorIs(t, i.Ping(), errNilSQL)
}

func TestGetSQL(t *testing.T) {
	t.Parallel()
	var nilInstance *Instance
	_, err := nilInstance.GetSQL()
	assert.ErrorIs(t, err, errNilInstance)

	i := &Instance{}
	_, err = i.GetSQL()
	assert.ErrorIs(t, err, ErrDatabaseSupportDisabled)

	i.SetConnected(true)
	_, err = i.GetSQL()
	assert.ErrorIs(t, err, errNilSQL)
}

func TestCloseConnection(t *testing.T) {
	t.Parallel()
	i := &Instance{}
	assert.ErrorIs(t, i.CloseConnection(), errNilSQL)
}
