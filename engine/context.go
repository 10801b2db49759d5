// engine/context.go
package engine

import "context"

// Operation is the statement the EntityMapper builds for an entity.
type Operation int

const (
	// OpNone asks the EntityMapper for a property -> database value record.
	OpNone Operation = iota
	OpInsert
	OpUpdate
	OpDelete
)

func (o Operation) String() string {
	switch o {
	case OpInsert:
		return "insert"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	}
	return "none"
}

type (
	operationKey struct{}
	hydrationKey struct{}
	filtersKey   struct{}
)

type hydration struct {
	assoc   bool
	exclude []string
}

// WithOperation sets the operation mapped entities are turned into.
func WithOperation(ctx context.Context, op Operation) context.Context {
	return context.WithValue(ctx, operationKey{}, op)
}

// OperationFrom returns the current operation, OpNone when unset.
func OperationFrom(ctx context.Context) Operation {
	op, _ := ctx.Value(operationKey{}).(Operation)
	return op
}

// WithArrayHydration makes finders return map[string]any records keyed by
// property name instead of entities. Excluded names may be columns or
// properties.
func WithArrayHydration(ctx context.Context, exclude ...string) context.Context {
	return context.WithValue(ctx, hydrationKey{}, hydration{assoc: true, exclude: append([]string(nil), exclude...)})
}

// WithObjectHydration restores the default entity hydration.
func WithObjectHydration(ctx context.Context) context.Context {
	return context.WithValue(ctx, hydrationKey{}, hydration{})
}

func hydrationFrom(ctx context.Context) hydration {
	h, _ := ctx.Value(hydrationKey{}).(hydration)
	return h
}

// WithFilter appends filters to the ones already attached to ctx. The
// parent's list is never modified.
func WithFilter(ctx context.Context, filters ...Filter) context.Context {
	parent := Filters(ctx)
	chain := make([]Filter, 0, len(parent)+len(filters))
	chain = append(chain, parent...)
	for _, f := range filters {
		if f != nil {
			chain = append(chain, f)
		}
	}
	return context.WithValue(ctx, filtersKey{}, chain)
}

// Filters returns the filters attached to ctx in registration order.
func Filters(ctx context.Context) []Filter {
	chain, _ := ctx.Value(filtersKey{}).([]Filter)
	return chain
}
