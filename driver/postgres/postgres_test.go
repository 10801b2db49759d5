// driver/postgres/postgres_test.go
package postgres

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chmenegatti/sqlx/pkg/config"
	"github.com/chmenegatti/sqlx/query"
)

func TestWrapRebindsPlaceholders(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "users" SET "name" = $1 WHERE "id" = $2;`)).
		WithArgs("jane", 9).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c := Wrap(db, nil)
	stmt := query.UpdateTable("users").Set(query.P("name", "jane")).AndWhere(query.Eq("id", 9))
	res, err := c.Execute(context.Background(), stmt)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.AffectedRows())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenInvalidDSN(t *testing.T) {
	_, err := Open(context.Background(), config.DatabaseConfig{Dialect: "pgsql", DSN: "postgres://%zz"}, nil)
	assert.ErrorContains(t, err, "postgres: invalid DSN")
}
