package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDialect(t *testing.T) {
	d := Dialect{}
	assert.Equal(t, "users", d.QuoteTable("users"))
	assert.Equal(t, "id", d.QuoteIdentifier("id"))
	assert.Equal(t, int64(1), d.CleanValue(true))
	assert.Equal(t, int64(0), d.CleanValue(false))
	assert.Equal(t, "x", d.CleanValue("x"))
	assert.Equal(t, "-1", d.NoLimit())
}
