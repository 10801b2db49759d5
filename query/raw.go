// query/raw.go
package query

import (
	"fmt"
	"os"
	"strings"

	"github.com/chmenegatti/sqlx/pkg/dialects/common"
)

// Raw is a verbatim SQL fragment with its parameters. It is both a Clause
// and a Statement.
type Raw struct {
	Query string
	Args  []any
}

// NewRaw returns a raw fragment. Values must be passed as args, never
// formatted into query.
func NewRaw(query string, args ...any) *Raw {
	return &Raw{Query: query, Args: args}
}

// FromFile loads a raw statement from a SQL file.
func FromFile(filename string, args ...any) (*Raw, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("query: could not read sql file %q: %w", filename, err)
	}
	return NewRaw(strings.TrimSpace(string(content)), args...), nil
}

func (r *Raw) SQL(common.Dialect) string {
	return r.Query
}

func (r *Raw) Params(d common.Dialect) []any {
	if len(r.Args) == 0 {
		return nil
	}
	return cleanAll(d, r.Args)
}
