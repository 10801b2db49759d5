package query

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComparisons(t *testing.T) {
	tests := []struct {
		name   string
		clause Clause
		sql    string
		params []any
	}{
		{"eq", Eq("a", 1), "a = ?", []any{1}},
		{"neq", Neq("a", 1), "a != ?", []any{1}},
		{"gte", Gte("a", 1), "a >= ?", []any{1}},
		{"lt", Lt("a", 1), "a < ?", []any{1}},
		{"lte", Lte("a", 1), "a <= ?", []any{1}},
		{"null", IsNull("a"), "a IS NULL", nil},
		{"not null", NotNull("a"), "a IS NOT NULL", nil},
		{"between", Between("a", 1, 9), "a BETWEEN ? AND ?", []any{1, 9}},
		{"in", In("a", "x", "y"), "a IN (?, ?)", []any{"x", "y"}},
		{"in without values", In("a"), "a IN (NULL)", []any{}},
		{"like", Like("a", "jo%"), "a LIKE ?", []any{"jo%"}},
		{"custom", Custom("a", "ILIKE", "jo%"), "a ILIKE ?", []any{"jo%"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.sql, tt.clause.SQL(generic))
			if tt.params == nil {
				assert.Nil(t, tt.clause.Params(generic))
				return
			}
			assert.Equal(t, tt.params, tt.clause.Params(generic))
		})
	}
}

func TestSingleClauseGroupKeepsConjunction(t *testing.T) {
	assert.Equal(t, "AND a = ?", And(Eq("a", 1)).SQL(generic))
	assert.Equal(t, "OR a = ?", Or(Eq("a", 1)).SQL(generic))

	stmt := DeleteFrom("t").AndWhere(And(Eq("a", 1))).AndWhere(Eq("b", 2))
	assert.Equal(t, "DELETE FROM t WHERE AND a = ? AND b = ?;", stmt.SQL(generic))
}

func TestNestedGroups(t *testing.T) {
	c := Or(And(Eq("a", 1), Eq("b", 2)), In("c", 3, 4))
	assert.Equal(t, "((a = ? AND b = ?) OR c IN (?, ?))", c.SQL(generic))
	assert.Equal(t, []any{1, 2, 3, 4}, c.Params(generic))

	stmt := SelectFrom("t").AndWhere(c)
	assert.Equal(t, "SELECT * FROM t WHERE (a = ? AND b = ?) OR c IN (?, ?);", stmt.SQL(generic))
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.sql")
	require.NoError(t, os.WriteFile(path, []byte("SELECT * FROM users WHERE id = ?;\n"), 0o644))

	raw, err := FromFile(path, 7)
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM users WHERE id = ?;", raw.SQL(generic))
	assert.Equal(t, []any{7}, raw.Params(generic))

	_, err = FromFile(filepath.Join(t.TempDir(), "missing.sql"))
	assert.Error(t, err)
}
