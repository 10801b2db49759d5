package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chmenegatti/sqlx/pkg/dialects/mysql"
)

func TestInsertMultipleRows(t *testing.T) {
	stmt := InsertInto("users").
		Values(P("id", "77fd8c2e"), P("name", "John Doe"), P("username", "jdoe"), P("password", "secret")).
		Values(P("id", "a1b2c3d4"), P("name", "Jane Doe"), P("username", "jane"), P("password", "hidden"))

	require.NoError(t, Check(stmt))
	assert.Equal(t, "INSERT INTO users (id, name, username, password) VALUES (?, ?, ?, ?), (?, ?, ?, ?);", stmt.SQL(generic))
	assert.Equal(t, []any{
		"77fd8c2e", "John Doe", "jdoe", "secret",
		"a1b2c3d4", "Jane Doe", "jane", "hidden",
	}, stmt.Params(generic))
}

func TestInsertRowsAreAlignedByColumn(t *testing.T) {
	stmt := InsertInto("users").
		Values(P("id", 1), P("name", "a")).
		Values(P("name", "b"), P("id", 2))

	require.NoError(t, Check(stmt))
	assert.Equal(t, []any{1, "a", 2, "b"}, stmt.Params(generic))
}

func TestInsertArityMismatch(t *testing.T) {
	stmt := InsertInto("users").
		Values(P("id", 1), P("name", "a")).
		Values(P("id", 2))

	err := Check(stmt)
	require.ErrorIs(t, err, ErrInvalidQuery)
	assert.Contains(t, err.Error(), "Number of values do not match the number of columns")
}

func TestInsertUnknownColumn(t *testing.T) {
	stmt := InsertInto("users").
		Values(P("id", 1), P("name", "a")).
		Values(P("id", 2), P("email", "b"))

	assert.ErrorIs(t, Check(stmt), ErrInvalidQuery)
}

func TestInsertWithoutValues(t *testing.T) {
	assert.ErrorIs(t, Check(InsertInto("users")), ErrInvalidQuery)
}

func TestInsertQuotedForMySQL(t *testing.T) {
	stmt := InsertInto("users").Values(P("id", 1), P("active", true))
	assert.Equal(t, "INSERT INTO `users` (`id`, `active`) VALUES (?, ?);", stmt.SQL(mysql.Dialect{}))
}
