package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chmenegatti/sqlx/pkg/dialects/sqlite"
)

func TestUpdateSingleAssignment(t *testing.T) {
	stmt := UpdateTable("users").
		Set(P("disabled", false)).
		AndWhere(Eq("account_id", 22))

	require.NoError(t, Check(stmt))
	assert.Equal(t, "UPDATE users SET disabled = ? WHERE account_id = ?;", stmt.SQL(generic))
	assert.Equal(t, []any{false, 22}, stmt.Params(generic))
}

func TestUpdateSeveralConditions(t *testing.T) {
	stmt := UpdateTable("users").
		Set(P("disabled", true), P("login_attempts", 0)).
		AndWhere(Eq("account_id", 22)).
		AndWhere(Gt("login_attempts", 5))

	assert.Equal(t, "UPDATE users SET disabled = ?, login_attempts = ? WHERE account_id = ? AND login_attempts > ?;", stmt.SQL(generic))
	assert.Equal(t, []any{true, 0, 22, 5}, stmt.Params(generic))
}

func TestUpdateSetOverwrites(t *testing.T) {
	stmt := UpdateTable("users").Set(P("a", 1), P("b", 2)).Set(P("a", 3))
	assert.Equal(t, "UPDATE users SET a = ?, b = ?;", stmt.SQL(generic))
	assert.Equal(t, []any{3, 2}, stmt.Params(generic))
}

func TestUpdateWithoutAssignments(t *testing.T) {
	assert.ErrorIs(t, Check(UpdateTable("users").AndWhere(Eq("id", 1))), ErrInvalidQuery)
}

func TestUpdateCleansValuesThroughDialect(t *testing.T) {
	stmt := UpdateTable("users").Set(P("disabled", true)).AndWhere(Eq("active", false))
	assert.Equal(t, []any{int64(1), int64(0)}, stmt.Params(sqlite.Dialect{}))
}
