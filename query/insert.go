// query/insert.go
package query

import (
	"strings"

	"github.com/chmenegatti/sqlx/pkg/dialects/common"
)

// Insert builds a (possibly multi-row) INSERT statement.
// The first Values call fixes the column list; every later row must
// provide exactly the same columns, in any order.
type Insert struct {
	table   string
	columns []string
	rows    [][]any
	err     error
}

func InsertInto(table string) *Insert {
	return &Insert{table: table}
}

// Values appends one row.
func (i *Insert) Values(pairs ...Pair) *Insert {
	if i.err != nil {
		return i
	}
	if len(i.rows) == 0 {
		i.columns = make([]string, len(pairs))
		row := make([]any, len(pairs))
		for n, p := range pairs {
			i.columns[n] = p.Column
			row[n] = p.Value
		}
		i.rows = append(i.rows, row)
		return i
	}
	if len(pairs) != len(i.columns) {
		i.err = invalidf("Number of values do not match the number of columns")
		return i
	}
	row := make([]any, len(i.columns))
	filled := make([]bool, len(i.columns))
	for _, p := range pairs {
		idx := i.columnIndex(p.Column)
		if idx < 0 || filled[idx] {
			i.err = invalidf("column %q does not match the columns of the first row", p.Column)
			return i
		}
		row[idx] = p.Value
		filled[idx] = true
	}
	i.rows = append(i.rows, row)
	return i
}

func (i *Insert) columnIndex(column string) int {
	for n, c := range i.columns {
		if c == column {
			return n
		}
	}
	return -1
}

// Table returns the target table.
func (i *Insert) Table() string { return i.table }

// Err reports a construction error.
func (i *Insert) Err() error {
	if i.err == nil && len(i.rows) == 0 {
		return invalidf("insert into %s has no values", i.table)
	}
	return i.err
}

func (i *Insert) SQL(d common.Dialect) string {
	cols := make([]string, len(i.columns))
	for n, c := range i.columns {
		cols[n] = d.QuoteIdentifier(c)
	}
	tuples := make([]string, len(i.rows))
	for n, row := range i.rows {
		tuples[n] = "(" + placeholders(len(row)) + ")"
	}
	return "INSERT INTO " + d.QuoteTable(i.table) + " (" + strings.Join(cols, ", ") + ") VALUES " + strings.Join(tuples, ", ") + ";"
}

func (i *Insert) Params(d common.Dialect) []any {
	params := make([]any, 0, len(i.rows)*len(i.columns))
	for _, row := range i.rows {
		params = append(params, cleanAll(d, row)...)
	}
	return params
}
