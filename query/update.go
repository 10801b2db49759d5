// query/update.go
package query

import (
	"strings"

	"github.com/chmenegatti/sqlx/pkg/dialects/common"
)

// Update builds an UPDATE statement. Assignments keep the order of their
// first Set; setting the same column again replaces its value.
type Update struct {
	table string
	set   []Pair
	where
}

func UpdateTable(table string) *Update {
	return &Update{table: table}
}

func (u *Update) Set(pairs ...Pair) *Update {
	for _, p := range pairs {
		replaced := false
		for n := range u.set {
			if u.set[n].Column == p.Column {
				u.set[n].Value = p.Value
				replaced = true
				break
			}
		}
		if !replaced {
			u.set = append(u.set, p)
		}
	}
	return u
}

// AndWhere adds a condition: a Clause, or raw SQL followed by its args.
func (u *Update) AndWhere(cond any, args ...any) *Update {
	u.add("AND", cond, args)
	return u
}

func (u *Update) OrWhere(cond any, args ...any) *Update {
	u.add("OR", cond, args)
	return u
}

func (u *Update) Table() string { return u.table }

func (u *Update) Err() error {
	if u.where.err != nil {
		return u.where.err
	}
	if len(u.set) == 0 {
		return invalidf("update of %s has no assignments", u.table)
	}
	return nil
}

func (u *Update) SQL(d common.Dialect) string {
	assignments := make([]string, len(u.set))
	for n, p := range u.set {
		assignments[n] = d.QuoteIdentifier(p.Column) + " = ?"
	}
	sql := "UPDATE " + d.QuoteTable(u.table) + " SET " + strings.Join(assignments, ", ")
	if w := u.where.sql(d); w != "" {
		sql += " " + w
	}
	return sql + ";"
}

func (u *Update) Params(d common.Dialect) []any {
	params := make([]any, 0, len(u.set))
	for _, p := range u.set {
		params = append(params, d.CleanValue(p.Value))
	}
	return append(params, u.where.params(d)...)
}
