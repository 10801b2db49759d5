package driver

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chmenegatti/sqlx/conn"
	"github.com/chmenegatti/sqlx/pkg/config"
	"github.com/chmenegatti/sqlx/pkg/dialects"
)

func cleanupRegistry(t *testing.T) {
	t.Helper()
	openersMu.Lock()
	openers = make(map[string]Opener)
	openersMu.Unlock()
}

func TestRegisterAndOpen(t *testing.T) {
	cleanupRegistry(t)
	t.Cleanup(func() { cleanupRegistry(t) })

	var got config.DatabaseConfig
	Register("mock", func(_ context.Context, cfg config.DatabaseConfig, _ *zap.Logger) (*conn.DB, error) {
		got = cfg
		db, _, err := sqlmock.New()
		if err != nil {
			return nil, err
		}
		return conn.New(db, dialects.Generic{}), nil
	})

	assert.Equal(t, []string{"mock"}, Drivers())

	c, err := Open(context.Background(), config.DatabaseConfig{Dialect: "mock", DSN: "x"}, nil)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "x", got.DSN)
	require.NoError(t, c.Close())
}

func TestOpenUnknownDialect(t *testing.T) {
	cleanupRegistry(t)
	t.Cleanup(func() { cleanupRegistry(t) })

	_, err := Open(context.Background(), config.DatabaseConfig{Dialect: "oracle"}, nil)
	assert.ErrorContains(t, err, `unknown dialect "oracle"`)
}

func TestRegisterPanics(t *testing.T) {
	cleanupRegistry(t)
	t.Cleanup(func() { cleanupRegistry(t) })

	assert.PanicsWithValue(t, "driver: Register opener is nil", func() { Register("nil", nil) })

	noop := func(context.Context, config.DatabaseConfig, *zap.Logger) (*conn.DB, error) { return nil, nil }
	Register("dup", noop)
	assert.PanicsWithValue(t, "driver: Register called twice for driver dup", func() { Register("dup", noop) })
}

func TestPingClosesOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	mock.ExpectPing().WillReturnError(assert.AnError)
	mock.ExpectClose()

	err = Ping(context.Background(), db, "mock")
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}
