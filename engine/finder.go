// engine/finder.go
package engine

import (
	"context"
	"errors"
	"iter"
	"strings"

	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/chmenegatti/sqlx/accessor"
	"github.com/chmenegatti/sqlx/conn"
	"github.com/chmenegatti/sqlx/mapper"
	"github.com/chmenegatti/sqlx/metadata"
	"github.com/chmenegatti/sqlx/query"
)

// Finder is a lazy query over one entity class. Conditions and sorting are
// expressed with property names; they are translated to columns before the
// statement is rendered. Nothing runs until a terminal method (One, First,
// Nth, Count, Rows, All) is called.
type Finder struct {
	ctx      context.Context
	conn     conn.Connection
	md       *metadata.Metadata
	mapper   mapper.Mapper
	accessor accessor.Accessor
	tracker  Tracker
	log      *zap.Logger
	sel      *query.Select
	err      error
}

// Metadata returns the metadata of the class being searched.
func (f *Finder) Metadata() *metadata.Metadata { return f.md }

// Statement returns a copy of the SELECT the finder would run.
func (f *Finder) Statement() *query.Select { return f.sel.Clone() }

// Err reports the first condition that could not be mapped.
func (f *Finder) Err() error { return f.err }

// AndWhere adds a condition: a query.Clause, or raw SQL followed by its args.
func (f *Finder) AndWhere(cond any, args ...any) *Finder {
	f.where(false, cond, args)
	return f
}

func (f *Finder) OrWhere(cond any, args ...any) *Finder {
	f.where(true, cond, args)
	return f
}

func (f *Finder) where(or bool, cond any, args []any) {
	switch c := cond.(type) {
	case string:
		mapped, err := f.mapClause(query.NewRaw(c, args...))
		if err != nil {
			f.fail(err)
			return
		}
		cond, args = mapped, nil
	case query.Clause:
		mapped, err := f.mapClause(c)
		if err != nil {
			f.fail(err)
			return
		}
		cond = mapped
	}
	if or {
		f.sel.OrWhere(cond, args...)
	} else {
		f.sel.AndWhere(cond, args...)
	}
}

// SortBy orders by property; direction is "ASC" (the default) or "DESC".
func (f *Finder) SortBy(property string, direction string) *Finder {
	column, _ := f.column(property)
	f.sel.AddOrderBy(column, direction)
	return f
}

// Slice skips offset rows and returns at most length rows. A zero length
// removes the limit.
func (f *Finder) Slice(offset, length int) *Finder {
	f.sel.Offset(offset).Limit(length)
	return f
}

// One returns the only matching row. It fails with NotFoundError when no row
// matches and with MoreThanOneError when several do.
func (f *Finder) One(ctx context.Context) (any, error) {
	found, err := f.fetch(ctx, f.sel.Clone().Limit(2))
	if err != nil {
		return nil, err
	}
	switch len(found) {
	case 0:
		return nil, &NotFoundError{Class: f.md.ClassName()}
	case 1:
		return found[0], nil
	}
	return nil, &MoreThanOneError{Class: f.md.ClassName()}
}

// First returns the first matching row or a NotFoundError.
func (f *Finder) First(ctx context.Context) (any, error) {
	found, err := f.fetch(ctx, f.sel.Clone().Limit(1))
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, &NotFoundError{Class: f.md.ClassName()}
	}
	return found[0], nil
}

// Nth returns the row at position n (zero based), or nil when there is none.
func (f *Finder) Nth(ctx context.Context, n int) (any, error) {
	if n < 0 {
		return nil, nil
	}
	found, err := f.fetch(ctx, f.sel.Clone().Limit(1).Offset(n))
	if err != nil || len(found) == 0 {
		return nil, err
	}
	return found[0], nil
}

// Count returns the number of matching rows, ignoring ordering and slicing.
func (f *Finder) Count(ctx context.Context) (int64, error) {
	if f.err != nil {
		return 0, &FinderError{Msg: MsgMapClause, Err: f.err}
	}
	raw, err := f.conn.Query(ctx, f.sel.ToCount())
	if err != nil {
		return 0, &FinderError{Msg: MsgQuery, Err: err}
	}
	defer raw.Close()
	if !raw.Next() {
		err := raw.Err()
		if err == nil {
			err = errors.New("count returned no rows")
		}
		return 0, &FinderError{Msg: MsgQuery, Err: err}
	}
	row, err := raw.ScanRow()
	if err != nil {
		return 0, &FinderError{Msg: MsgQuery, Err: err}
	}
	if len(row) == 0 {
		return 0, &FinderError{Msg: MsgQuery, Err: errors.New("count returned no columns")}
	}
	value := row[0]
	if b, ok := value.([]byte); ok {
		value = string(b)
	}
	n, err := cast.ToInt64E(value)
	if err != nil {
		return 0, &FinderError{Msg: MsgQuery, Err: err}
	}
	return n, nil
}

// Rows returns a cursor over the matching rows. The query runs on the first
// call to Next.
func (f *Finder) Rows(ctx context.Context) *Rows {
	return &Rows{ctx: f.scope(ctx), finder: f, stmt: f.sel.Clone()}
}

// All ranges over the hydrated rows. Iteration stops at the first error,
// which is yielded with a nil value.
func (f *Finder) All(ctx context.Context) iter.Seq2[any, error] {
	return f.Rows(ctx).All()
}

func (f *Finder) fetch(ctx context.Context, stmt *query.Select) ([]any, error) {
	rows := &Rows{ctx: f.scope(ctx), finder: f, stmt: stmt}
	defer rows.Close()
	var found []any
	for rows.Next() {
		found = append(found, rows.Value())
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return found, nil
}

// scope layers the settings the finder was created with under ctx: the
// hydration mode and the datetime overrides, when ctx sets none.
func (f *Finder) scope(ctx context.Context) context.Context {
	ctx = mapper.WithFormatsFrom(ctx, f.ctx)
	if _, ok := ctx.Value(hydrationKey{}).(hydration); !ok {
		if h, ok := f.ctx.Value(hydrationKey{}).(hydration); ok {
			ctx = context.WithValue(ctx, hydrationKey{}, h)
		}
	}
	return ctx
}

func (f *Finder) fail(err error) {
	if f.err == nil {
		f.err = err
	}
	f.log.Debug("finder condition rejected", zap.String("class", f.md.ClassName()), zap.Error(err))
}

// column resolves a property name; unknown names are taken as column names.
func (f *Finder) column(property string) (string, string) {
	if field, ok := f.md.FieldByName(property); ok {
		return field.Column, field.Type
	}
	return property, ""
}

func (f *Finder) mapClause(c query.Clause) (query.Clause, error) {
	switch c := c.(type) {
	case *query.Comp:
		column, typ := f.column(c.Column)
		values, err := f.params(column, typ, c.Values)
		if err != nil {
			return nil, err
		}
		return &query.Comp{Column: column, Operator: c.Operator, Values: values}, nil
	case *query.Group:
		clauses := make([]query.Clause, len(c.Clauses))
		for i, sub := range c.Clauses {
			mapped, err := f.mapClause(sub)
			if err != nil {
				return nil, err
			}
			clauses[i] = mapped
		}
		return &query.Group{Conjunction: c.Conjunction, Clauses: clauses}, nil
	case *query.Raw:
		args, err := f.params("", "", c.Args)
		if err != nil {
			return nil, err
		}
		return query.NewRaw(f.rewrite(c.Query), args...), nil
	}
	return c, nil
}

func (f *Finder) params(column, typ string, values []any) ([]any, error) {
	if len(values) == 0 {
		return values, nil
	}
	ctx := mapper.WithType(mapper.WithColumn(f.ctx, column), typ)
	out := make([]any, len(values))
	for i, v := range values {
		mv, err := f.mapper.ToDatabase(ctx, v)
		if err != nil {
			return nil, err
		}
		out[i] = mv
	}
	return out, nil
}

// rewrite replaces property names found in a raw SQL fragment by their
// columns. Quoted strings and identifiers are left alone.
func (f *Finder) rewrite(sql string) string {
	var b strings.Builder
	b.Grow(len(sql))
	for i := 0; i < len(sql); {
		c := sql[i]
		switch {
		case c == '\'' || c == '"' || c == '`':
			end := i + 1
			for end < len(sql) && sql[end] != c {
				end++
			}
			if end < len(sql) {
				end++
			}
			b.WriteString(sql[i:end])
			i = end
		case isIdentStart(c):
			end := i + 1
			for end < len(sql) && isIdentPart(sql[end]) {
				end++
			}
			word := sql[i:end]
			if field, ok := f.md.FieldByName(word); ok {
				word = field.Column
			}
			b.WriteString(word)
			i = end
		case c >= '0' && c <= '9':
			end := i + 1
			for end < len(sql) && isIdentPart(sql[end]) {
				end++
			}
			b.WriteString(sql[i:end])
			i = end
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
