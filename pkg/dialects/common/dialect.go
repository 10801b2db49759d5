// pkg/dialects/common/dialect.go
package common

import "context"

// Dialect customizes how statements are rendered for a given backend.
// Implementations must be stateless and safe for concurrent use.
type Dialect interface {
	// Name returns the unique dialect name (ex: "mysql", "sqlite", "pgsql").
	Name() string

	// QuoteIdentifier wraps a column identifier with the backend's quotes.
	QuoteIdentifier(name string) string

	// QuoteTable wraps a table identifier with the backend's quotes.
	QuoteTable(name string) string

	// CleanValue normalizes a bound parameter before it reaches the driver.
	CleanValue(value any) any
}

// Unlimited is implemented by dialects that cannot render OFFSET without a
// LIMIT. NoLimit returns the literal meaning "all rows".
type Unlimited interface {
	NoLimit() string
}

type dialectKey struct{}

// WithDialect overrides the dialect used to render statements executed with ctx.
func WithDialect(ctx context.Context, d Dialect) context.Context {
	return context.WithValue(ctx, dialectKey{}, d)
}

// DialectFrom returns the dialect attached with WithDialect, if any.
func DialectFrom(ctx context.Context) (Dialect, bool) {
	d, ok := ctx.Value(dialectKey{}).(Dialect)
	return d, ok
}
