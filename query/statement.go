// query/statement.go
package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chmenegatti/sqlx/pkg/dialects/common"
)

// ErrInvalidQuery is wrapped by every construction-time error of a statement.
var ErrInvalidQuery = errors.New("invalid query")

// Statement is a complete SQL command. SQL and Params must agree: Params
// returns one value per "?" placeholder, in the order they appear in SQL.
type Statement interface {
	SQL(d common.Dialect) string
	Params(d common.Dialect) []any
}

// Clause is a fragment of a WHERE condition.
type Clause interface {
	SQL(d common.Dialect) string
	Params(d common.Dialect) []any
}

// Pair binds a value to a column, for INSERT rows and UPDATE assignments.
type Pair struct {
	Column string
	Value  any
}

// P is shorthand for Pair{Column: column, Value: value}.
func P(column string, value any) Pair {
	return Pair{Column: column, Value: value}
}

// Check reports the construction error carried by stmt, if any.
func Check(stmt Statement) error {
	if v, ok := stmt.(interface{ Err() error }); ok {
		return v.Err()
	}
	return nil
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidQuery, fmt.Sprintf(format, args...))
}

func placeholders(n int) string {
	if n == 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}

func cleanAll(d common.Dialect, values []any) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = d.CleanValue(v)
	}
	return out
}
