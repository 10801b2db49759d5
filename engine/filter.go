// engine/filter.go
package engine

import (
	"context"

	"github.com/chmenegatti/sqlx/metadata"
)

// Filter is applied to every new Finder before it runs, ex: to scope all
// queries to a tenant.
type Filter interface {
	Filter(ctx context.Context, f *Finder, md *metadata.Metadata) error
}

// FilterFunc adapts a function to Filter.
type FilterFunc func(ctx context.Context, f *Finder, md *metadata.Metadata) error

func (fn FilterFunc) Filter(ctx context.Context, f *Finder, md *metadata.Metadata) error {
	return fn(ctx, f, md)
}

func applyFilters(ctx context.Context, f *Finder, md *metadata.Metadata) error {
	for _, filter := range Filters(ctx) {
		if err := filter.Filter(ctx, f, md); err != nil {
			return err
		}
	}
	return nil
}
