package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chmenegatti/sqlx/pkg/dialects"
)

var generic = dialects.Generic{}

func TestDeleteRaw(t *testing.T) {
	stmt := DeleteFrom("users").AndWhere("id = ?", 21)

	require.NoError(t, Check(stmt))
	assert.Equal(t, "DELETE FROM users WHERE id = ?;", stmt.SQL(generic))
	assert.Equal(t, []any{21}, stmt.Params(generic))
}

func TestDeleteComposite(t *testing.T) {
	stmt := DeleteFrom("users").AndWhere(And(
		In("account_id", 1, 2, 3, 4, 5),
		Eq("active", true),
		Gt("created_at", "2022-01-23"),
	))

	assert.Equal(t, "DELETE FROM users WHERE account_id IN (?, ?, ?, ?, ?) AND active = ? AND created_at > ?;", stmt.SQL(generic))
	assert.Equal(t, []any{1, 2, 3, 4, 5, true, "2022-01-23"}, stmt.Params(generic))
}

func TestDeleteWithoutWhere(t *testing.T) {
	stmt := DeleteFrom("sessions")
	assert.Equal(t, "DELETE FROM sessions;", stmt.SQL(generic))
	assert.Empty(t, stmt.Params(generic))
}

func TestDeleteUnsupportedCondition(t *testing.T) {
	stmt := DeleteFrom("users").AndWhere(42)
	err := Check(stmt)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidQuery)

	stmt = DeleteFrom("users").AndWhere(Eq("id", 1), 2)
	assert.ErrorIs(t, Check(stmt), ErrInvalidQuery)
}
