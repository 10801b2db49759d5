// driver/mysql/mysql_test.go
package mysql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chmenegatti/sqlx/driver"
	"github.com/chmenegatti/sqlx/pkg/config"
)

func TestDSN(t *testing.T) {
	mc, err := DSN("admin:password@tcp(localhost:3306)/nemesis?charset=utf8mb4")
	require.NoError(t, err)
	assert.True(t, mc.ParseTime)
	assert.Equal(t, "localhost:3306", mc.Addr)
	assert.Equal(t, "nemesis", mc.DBName)
	assert.Contains(t, mc.FormatDSN(), "parseTime=true")
}

func TestOpenInvalidDSN(t *testing.T) {
	_, err := Open(context.Background(), config.DatabaseConfig{Dialect: "mysql", DSN: "not a dsn"}, nil)
	assert.ErrorContains(t, err, "mysql: invalid DSN")
}

func TestRegistered(t *testing.T) {
	assert.NotNil(t, driver.Get("mysql"))
}
