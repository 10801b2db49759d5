// query/clause.go
package query

import (
	"strings"

	"github.com/chmenegatti/sqlx/pkg/dialects/common"
)

// Operator is the comparison operator of a Comp clause.
type Operator string

const (
	OpEq      Operator = "="
	OpNeq     Operator = "!="
	OpGt      Operator = ">"
	OpGte     Operator = ">="
	OpLt      Operator = "<"
	OpLte     Operator = "<="
	OpNull    Operator = "IS NULL"
	OpNotNull Operator = "IS NOT NULL"
	OpBetween Operator = "BETWEEN"
	OpIn      Operator = "IN"
	OpLike    Operator = "LIKE"
)

// Comp compares a column against zero or more parameters.
type Comp struct {
	Column   string
	Operator Operator
	Values   []any
}

func Eq(column string, value any) *Comp  { return &Comp{column, OpEq, []any{value}} }
func Neq(column string, value any) *Comp { return &Comp{column, OpNeq, []any{value}} }
func Gt(column string, value any) *Comp  { return &Comp{column, OpGt, []any{value}} }
func Gte(column string, value any) *Comp { return &Comp{column, OpGte, []any{value}} }
func Lt(column string, value any) *Comp  { return &Comp{column, OpLt, []any{value}} }
func Lte(column string, value any) *Comp { return &Comp{column, OpLte, []any{value}} }
func Like(column string, pattern string) *Comp {
	return &Comp{column, OpLike, []any{pattern}}
}
func IsNull(column string) *Comp  { return &Comp{Column: column, Operator: OpNull} }
func NotNull(column string) *Comp { return &Comp{Column: column, Operator: OpNotNull} }

func Between(column string, low, high any) *Comp {
	return &Comp{column, OpBetween, []any{low, high}}
}

// In matches any of values. With no values it renders "column IN (NULL)",
// which never matches a row.
func In(column string, values ...any) *Comp {
	return &Comp{column, OpIn, values}
}

// Custom compares column with a backend specific binary operator, ex: Custom("name", "ILIKE", "jo%").
func Custom(column string, operator string, value any) *Comp {
	return &Comp{column, Operator(operator), []any{value}}
}

func (c *Comp) SQL(d common.Dialect) string {
	col := d.QuoteIdentifier(c.Column)
	switch c.Operator {
	case OpNull, OpNotNull:
		return col + " " + string(c.Operator)
	case OpBetween:
		return col + " BETWEEN ? AND ?"
	case OpIn:
		if len(c.Values) == 0 {
			return col + " IN (NULL)"
		}
		return col + " IN (" + placeholders(len(c.Values)) + ")"
	default:
		return col + " " + string(c.Operator) + " ?"
	}
}

func (c *Comp) Params(d common.Dialect) []any {
	switch c.Operator {
	case OpNull, OpNotNull:
		return nil
	}
	return cleanAll(d, c.Values)
}

// Group joins clauses with AND or OR.
type Group struct {
	Conjunction string
	Clauses     []Clause
}

// And groups clauses with AND.
func And(clauses ...Clause) *Group {
	return &Group{Conjunction: "AND", Clauses: clauses}
}

// Or groups clauses with OR.
func Or(clauses ...Clause) *Group {
	return &Group{Conjunction: "OR", Clauses: clauses}
}

// SQL wraps the group in parentheses when it holds more than one clause.
// A single clause is rendered with a leading conjunction: "AND a = ?".
func (g *Group) SQL(d common.Dialect) string {
	switch len(g.Clauses) {
	case 0:
		return ""
	case 1:
		return g.Conjunction + " " + g.Clauses[0].SQL(d)
	}
	return "(" + g.inner(d) + ")"
}

func (g *Group) inner(d common.Dialect) string {
	parts := make([]string, len(g.Clauses))
	for i, c := range g.Clauses {
		parts[i] = c.SQL(d)
	}
	return strings.Join(parts, " "+g.Conjunction+" ")
}

func (g *Group) Params(d common.Dialect) []any {
	var params []any
	for _, c := range g.Clauses {
		params = append(params, c.Params(d)...)
	}
	return params
}
