package conn

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chmenegatti/sqlx/pkg/dialects"
	"github.com/chmenegatti/sqlx/pkg/dialects/common"
	"github.com/chmenegatti/sqlx/pkg/dialects/mysql"
	"github.com/chmenegatti/sqlx/query"
)

func newMock(t *testing.T, d common.Dialect, opts ...Option) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return New(db, d, opts...), mock
}

func TestExecute(t *testing.T) {
	c, mock := newMock(t, dialects.Generic{})
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE id = ?;")).
		WithArgs(21).
		WillReturnResult(sqlmock.NewResult(0, 1))

	res, err := c.Execute(context.Background(), query.DeleteFrom("users").AndWhere("id = ?", 21))
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.AffectedRows())
	assert.Equal(t, "0", res.LastInsertedID())
}

func TestExecuteLastInsertIDUnsupported(t *testing.T) {
	c, mock := newMock(t, dialects.Generic{})
	mock.ExpectExec("INSERT INTO users").
		WillReturnResult(sqlmock.NewErrorResult(errors.New("not supported")))

	res, err := c.Execute(context.Background(), query.InsertInto("users").Values(query.P("name", "a")))
	require.NoError(t, err)
	assert.Equal(t, "", res.LastInsertedID())
	assert.Equal(t, int64(0), res.AffectedRows())
}

func TestExecuteFailure(t *testing.T) {
	c, mock := newMock(t, dialects.Generic{})
	cause := errors.New("table is locked")
	mock.ExpectExec("UPDATE users").WillReturnError(cause)

	_, err := c.Execute(context.Background(), query.UpdateTable("users").Set(query.P("a", 1)))
	var execErr *ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "UPDATE users SET a = ?;", execErr.SQL)
}

func TestExecuteRejectsInvalidStatement(t *testing.T) {
	c, _ := newMock(t, dialects.Generic{})

	_, err := c.Execute(context.Background(), query.InsertInto("users"))
	var execErr *ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.ErrorIs(t, err, query.ErrInvalidQuery)
}

func TestQueryScan(t *testing.T) {
	c, mock := newMock(t, dialects.Generic{})
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM users WHERE tenant_id = ?;")).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(int64(1), "john").
			AddRow(int64(2), "jane"))

	rows, err := c.Query(context.Background(), query.SelectFrom("users").AndWhere(query.Eq("tenant_id", 3)))
	require.NoError(t, err)
	defer rows.Close()

	require.True(t, rows.Next())
	row, err := rows.ScanRow()
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), "john"}, row)

	require.True(t, rows.Next())
	assoc, err := rows.ScanAssoc()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": int64(2), "name": "jane"}, assoc)

	assert.False(t, rows.Next())
	assert.NoError(t, rows.Err())
}

func TestDialectOverrideAndRebind(t *testing.T) {
	c, mock := newMock(t, dialects.Generic{}, WithRebind(func(s string) string {
		return regexp.MustCompile(`\?`).ReplaceAllString(s, "$$1")
	}))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `users` WHERE `id` = $1;")).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ctx := common.WithDialect(context.Background(), mysql.Dialect{})
	_, err := c.Execute(ctx, query.DeleteFrom("users").AndWhere(query.Eq("id", 7)))
	require.NoError(t, err)
	assert.Equal(t, "generic", c.Dialect().Name())
}
