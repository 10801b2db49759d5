// query/where.go
package query

import (
	"strings"

	"github.com/chmenegatti/sqlx/pkg/dialects/common"
)

// where accumulates the WHERE clauses shared by Update, Delete and Select.
// The first clause is kept as is; every later one is wrapped in a
// single-clause AND/OR group.
type where struct {
	clauses []Clause
	err     error
}

// toClause converts a string (raw SQL plus args) or a Clause into a Clause.
func toClause(cond any, args []any) (Clause, error) {
	switch c := cond.(type) {
	case string:
		return NewRaw(c, args...), nil
	case Clause:
		if len(args) > 0 {
			return nil, invalidf("arguments are only accepted along with raw SQL, got %T", cond)
		}
		return c, nil
	default:
		return nil, invalidf("unsupported where condition of type %T", cond)
	}
}

func (w *where) add(conjunction string, cond any, args []any) {
	c, err := toClause(cond, args)
	if err != nil {
		if w.err == nil {
			w.err = err
		}
		return
	}
	if len(w.clauses) == 0 {
		w.clauses = append(w.clauses, c)
		return
	}
	w.clauses = append(w.clauses, &Group{Conjunction: conjunction, Clauses: []Clause{c}})
}

func (w *where) sql(d common.Dialect) string {
	if len(w.clauses) == 0 {
		return ""
	}
	if len(w.clauses) == 1 {
		if g, ok := w.clauses[0].(*Group); ok && len(g.Clauses) > 1 {
			return "WHERE " + g.inner(d)
		}
	}
	parts := make([]string, len(w.clauses))
	for i, c := range w.clauses {
		parts[i] = c.SQL(d)
	}
	return "WHERE " + strings.Join(parts, " ")
}

func (w *where) params(d common.Dialect) []any {
	var params []any
	for _, c := range w.clauses {
		params = append(params, c.Params(d)...)
	}
	return params
}

func (w *where) clone() where {
	return where{clauses: append([]Clause(nil), w.clauses...), err: w.err}
}
