// query_builder.go
package sqlx

import (
	"context"
	"fmt"
	"iter"

	"github.com/chmenegatti/sqlx/engine"
)

// Query is a typed view of a Finder for entities of type T. Entities are
// returned as *T.
type Query[T any] struct {
	finder *engine.Finder
}

// From starts a typed query over T.
func From[T any](ctx context.Context, e *Engine) (*Query[T], error) {
	f, err := e.Find(ctx, (*T)(nil))
	if err != nil {
		return nil, err
	}
	return &Query[T]{finder: f}, nil
}

// Finder returns the underlying untyped finder.
func (q *Query[T]) Finder() *engine.Finder { return q.finder }

func (q *Query[T]) Where(cond any, args ...any) *Query[T] {
	q.finder.AndWhere(cond, args...)
	return q
}

func (q *Query[T]) OrWhere(cond any, args ...any) *Query[T] {
	q.finder.OrWhere(cond, args...)
	return q
}

func (q *Query[T]) SortBy(property, direction string) *Query[T] {
	q.finder.SortBy(property, direction)
	return q
}

func (q *Query[T]) Slice(offset, length int) *Query[T] {
	q.finder.Slice(offset, length)
	return q
}

func (q *Query[T]) One(ctx context.Context) (*T, error) {
	return typed[T](q.finder.One(ctx))
}

func (q *Query[T]) First(ctx context.Context) (*T, error) {
	return typed[T](q.finder.First(ctx))
}

// Nth returns nil, without error, when there is no row at position n.
func (q *Query[T]) Nth(ctx context.Context, n int) (*T, error) {
	return typed[T](q.finder.Nth(ctx, n))
}

func (q *Query[T]) Count(ctx context.Context) (int64, error) {
	return q.finder.Count(ctx)
}

// All ranges over the matching entities.
func (q *Query[T]) All(ctx context.Context) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		for v, err := range q.finder.All(ctx) {
			if !yield(typed[T](v, err)) {
				return
			}
		}
	}
}

// Collect loads every matching entity.
func (q *Query[T]) Collect(ctx context.Context) ([]*T, error) {
	var out []*T
	for v, err := range q.All(ctx) {
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func typed[T any](v any, err error) (*T, error) {
	if err != nil || v == nil {
		return nil, err
	}
	t, ok := v.(*T)
	if !ok {
		return nil, fmt.Errorf("sqlx: hydrated %T, want *%T", v, *new(T))
	}
	return t, nil
}
