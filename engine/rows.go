// engine/rows.go
package engine

import (
	"context"
	"fmt"
	"iter"
	"slices"

	"go.uber.org/zap"

	"github.com/chmenegatti/sqlx/conn"
	"github.com/chmenegatti/sqlx/mapper"
	"github.com/chmenegatti/sqlx/pkg/hooks"
	"github.com/chmenegatti/sqlx/query"
)

// Rows is a forward-only cursor hydrating one value per row: a new tracked
// entity, or a map[string]any keyed by property name when the context asks
// for array hydration (see WithArrayHydration). It is not safe for
// concurrent use.
type Rows struct {
	ctx     context.Context
	finder  *Finder
	stmt    *query.Select
	raw     conn.Rows
	started bool
	done    bool
	current any
	err     error
}

// Next executes the query on its first call and advances to the next row.
func (r *Rows) Next() bool {
	if r.done {
		return false
	}
	if !r.started {
		r.started = true
		if err := r.finder.err; err != nil {
			return r.fail(&FinderError{Msg: MsgMapClause, Err: err})
		}
		raw, err := r.finder.conn.Query(r.ctx, r.stmt)
		if err != nil {
			return r.fail(&FinderError{Msg: MsgQuery, Err: err})
		}
		r.raw = raw
	}
	if !r.raw.Next() {
		if err := r.raw.Err(); err != nil {
			return r.fail(&FinderError{Msg: MsgQuery, Err: err})
		}
		r.Close()
		return false
	}
	v, err := r.hydrate()
	if err != nil {
		return r.fail(&FinderError{Msg: MsgScanObject, Err: err})
	}
	r.current = v
	return true
}

// Value returns the row hydrated by the last call to Next.
func (r *Rows) Value() any { return r.current }

func (r *Rows) Err() error { return r.err }

// Close releases the underlying result set. Further calls to Next return false.
func (r *Rows) Close() error {
	r.done = true
	r.current = nil
	if r.raw == nil {
		return nil
	}
	err := r.raw.Close()
	r.raw = nil
	return err
}

// All ranges over the remaining rows and closes the cursor when done.
func (r *Rows) All() iter.Seq2[any, error] {
	return func(yield func(any, error) bool) {
		defer r.Close()
		for r.Next() {
			if !yield(r.current, nil) {
				return
			}
		}
		if r.err != nil {
			yield(nil, r.err)
		}
	}
}

func (r *Rows) fail(err error) bool {
	r.err = err
	r.finder.log.Warn("finder failed", zap.String("class", r.finder.md.ClassName()), zap.Error(err))
	r.Close()
	return false
}

func (r *Rows) hydrate() (any, error) {
	cols, err := r.raw.Columns()
	if err != nil {
		return nil, err
	}
	values, err := r.raw.ScanRow()
	if err != nil {
		return nil, err
	}
	if h := hydrationFrom(r.ctx); h.assoc {
		return r.assoc(cols, values, h.exclude)
	}
	return r.object(cols, values)
}

func (r *Rows) object(cols []string, values []any) (any, error) {
	md := r.finder.md
	instance := md.NewInstance()
	for i, col := range cols {
		field, ok := md.FieldByColumn(col)
		if !ok {
			return nil, &conn.ScanError{Msg: fmt.Sprintf("No field found in class %s for column name %s", md.ClassName(), col)}
		}
		v, err := r.convert(col, field.Type, values[i])
		if err != nil {
			return nil, err
		}
		if err := r.finder.accessor.Set(instance, field.Scope, field.Name, v); err != nil {
			return nil, mapper.Errorf(err, "Error while mapping property %q of class %q", field.Name, md.ClassName())
		}
	}
	if err := hooks.Run(r.ctx, hooks.StageAfterFind, instance); err != nil {
		return nil, err
	}
	if r.finder.tracker != nil {
		r.finder.tracker.Track(instance)
	}
	return instance, nil
}

func (r *Rows) assoc(cols []string, values []any, exclude []string) (map[string]any, error) {
	md := r.finder.md
	rec := make(map[string]any, len(cols))
	for i, col := range cols {
		key, typ := col, ""
		if field, ok := md.FieldByColumn(col); ok {
			key, typ = field.Name, field.Type
		}
		if slices.Contains(exclude, col) || slices.Contains(exclude, key) {
			continue
		}
		v, err := r.convert(col, typ, values[i])
		if err != nil {
			return nil, err
		}
		rec[key] = v
	}
	return rec, nil
}

func (r *Rows) convert(column, typ string, value any) (any, error) {
	ctx := mapper.WithType(mapper.WithColumn(mapper.WithTable(r.ctx, r.stmt.Table()), column), typ)
	v, err := r.finder.mapper.ToApplication(ctx, value)
	if err != nil {
		return nil, mapper.Errorf(err, "Error while mapping column %q of class %q", column, r.finder.md.ClassName())
	}
	return v, nil
}
