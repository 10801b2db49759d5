// query/select.go
package query

import (
	"strings"

	"github.com/chmenegatti/sqlx/pkg/dialects/common"
)

// Sort directions.
const (
	Asc  = "ASC"
	Desc = "DESC"
)

// Column is a projected column with an optional alias.
type Column struct {
	Name  string
	Alias string
}

// Order is one ORDER BY entry.
type Order struct {
	Column    string
	Direction string
}

// Select builds a SELECT statement over a single table.
type Select struct {
	table   string
	columns []Column
	orderBy []Order
	limit   int
	offset  int
	sortErr error // only the row query renders ORDER BY
	where
}

// SelectFrom starts a "SELECT * FROM table" statement.
func SelectFrom(table string) *Select {
	return &Select{table: table}
}

// Col adds a projected column. Once a column is added, "*" is no longer selected.
func (s *Select) Col(name string, alias string) *Select {
	s.columns = append(s.columns, Column{Name: name, Alias: alias})
	return s
}

func (s *Select) AndWhere(cond any, args ...any) *Select {
	s.add("AND", cond, args)
	return s
}

func (s *Select) OrWhere(cond any, args ...any) *Select {
	s.add("OR", cond, args)
	return s
}

// AddOrderBy appends an ORDER BY entry. A column already present keeps its
// position and takes the new direction.
func (s *Select) AddOrderBy(column string, direction string) *Select {
	dir := strings.ToUpper(strings.TrimSpace(direction))
	switch dir {
	case "":
		dir = Asc
	case Asc, Desc:
	default:
		if s.sortErr == nil {
			s.sortErr = invalidf("invalid sort direction %q for column %s", direction, column)
		}
		return s
	}
	for n := range s.orderBy {
		if s.orderBy[n].Column == column {
			s.orderBy[n].Direction = dir
			return s
		}
	}
	s.orderBy = append(s.orderBy, Order{Column: column, Direction: dir})
	return s
}

// Limit sets LIMIT; zero or less removes it.
func (s *Select) Limit(n int) *Select {
	s.limit = max(n, 0)
	return s
}

// Offset sets OFFSET; zero or less removes it.
func (s *Select) Offset(n int) *Select {
	s.offset = max(n, 0)
	return s
}

func (s *Select) Table() string { return s.table }

func (s *Select) Err() error {
	if s.where.err != nil {
		return s.where.err
	}
	return s.sortErr
}

// Clone returns an independent copy of s.
func (s *Select) Clone() *Select {
	return &Select{
		table:   s.table,
		columns: append([]Column(nil), s.columns...),
		orderBy: append([]Order(nil), s.orderBy...),
		limit:   s.limit,
		offset:  s.offset,
		sortErr: s.sortErr,
		where:   s.where.clone(),
	}
}

// ToCount derives a COUNT(*) statement keeping only the table and the WHERE clauses.
func (s *Select) ToCount() *SelectCount {
	return &SelectCount{table: s.table, where: s.where.clone()}
}

func (s *Select) SQL(d common.Dialect) string {
	var b strings.Builder
	b.WriteString("SELECT ")
	if len(s.columns) == 0 {
		b.WriteString("*")
	} else {
		for n, c := range s.columns {
			if n > 0 {
				b.WriteString(", ")
			}
			b.WriteString(d.QuoteIdentifier(c.Name))
			if c.Alias != "" {
				b.WriteString(" AS ")
				b.WriteString(d.QuoteIdentifier(c.Alias))
			}
		}
	}
	b.WriteString(" FROM ")
	b.WriteString(d.QuoteTable(s.table))
	if w := s.where.sql(d); w != "" {
		b.WriteString(" ")
		b.WriteString(w)
	}
	if len(s.orderBy) > 0 {
		b.WriteString(" ORDER BY ")
		for n, o := range s.orderBy {
			if n > 0 {
				b.WriteString(", ")
			}
			b.WriteString(d.QuoteIdentifier(o.Column) + " " + o.Direction)
		}
	}
	if s.limit > 0 {
		b.WriteString(" LIMIT ?")
	} else if u, ok := d.(common.Unlimited); ok && s.offset > 0 {
		b.WriteString(" LIMIT " + u.NoLimit())
	}
	if s.offset > 0 {
		b.WriteString(" OFFSET ?")
	}
	b.WriteString(";")
	return b.String()
}

func (s *Select) Params(d common.Dialect) []any {
	params := s.where.params(d)
	if s.limit > 0 {
		params = append(params, s.limit)
	}
	if s.offset > 0 {
		params = append(params, s.offset)
	}
	return params
}

// SelectCount is the "SELECT COUNT(*)" projection of a Select.
type SelectCount struct {
	table string
	where
}

func (c *SelectCount) Err() error { return c.where.err }

func (c *SelectCount) SQL(d common.Dialect) string {
	sql := "SELECT COUNT(*) FROM " + d.QuoteTable(c.table)
	if w := c.where.sql(d); w != "" {
		sql += " " + w
	}
	return sql + ";"
}

func (c *SelectCount) Params(d common.Dialect) []any {
	return c.where.params(d)
}
