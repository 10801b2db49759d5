package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRebind(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"no params", "SELECT * FROM users;", "SELECT * FROM users;"},
		{"ordered", "UPDATE users SET a = ?, b = ? WHERE id = ?;", "UPDATE users SET a = $1, b = $2 WHERE id = $3;"},
		{"literal kept", "SELECT '?' AS q FROM t WHERE id = ?", "SELECT '?' AS q FROM t WHERE id = $1"},
		{"escaped quote", "SELECT 'it''s ?' FROM t WHERE a = ?", "SELECT 'it''s ?' FROM t WHERE a = $1"},
		{"identifier kept", `SELECT "we?ird" FROM t WHERE a = ?`, `SELECT "we?ird" FROM t WHERE a = $1`},
		{"comment kept", "SELECT 1 -- why?\nFROM t WHERE a = ?", "SELECT 1 -- why?\nFROM t WHERE a = $1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Rebind(tt.query))
		})
	}
}

func TestQuoting(t *testing.T) {
	d := Dialect{}
	assert.Equal(t, `"users"`, d.QuoteTable("users"))
	assert.Equal(t, `"public"."users"`, d.QuoteTable("public.users"))
	assert.Equal(t, `"we""ird"`, d.QuoteIdentifier(`we"ird`))
}
