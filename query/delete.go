// query/delete.go
package query

import "github.com/chmenegatti/sqlx/pkg/dialects/common"

// Delete builds a DELETE statement.
type Delete struct {
	table string
	where
}

func DeleteFrom(table string) *Delete {
	return &Delete{table: table}
}

func (del *Delete) AndWhere(cond any, args ...any) *Delete {
	del.add("AND", cond, args)
	return del
}

func (del *Delete) OrWhere(cond any, args ...any) *Delete {
	del.add("OR", cond, args)
	return del
}

func (del *Delete) Table() string { return del.table }

func (del *Delete) Err() error { return del.where.err }

func (del *Delete) SQL(d common.Dialect) string {
	sql := "DELETE FROM " + d.QuoteTable(del.table)
	if w := del.where.sql(d); w != "" {
		sql += " " + w
	}
	return sql + ";"
}

func (del *Delete) Params(d common.Dialect) []any {
	return del.where.params(d)
}
