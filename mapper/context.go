// mapper/context.go
package mapper

import "context"

type (
	typeKey          struct{}
	tableKey         struct{}
	columnKey        struct{}
	driverKey        struct{}
	appTimeFormatKey struct{}
	dbTimeFormatKey  struct{}
)

// WithType sets the semantic type the next value must be converted to or from.
func WithType(ctx context.Context, typ string) context.Context {
	return context.WithValue(ctx, typeKey{}, typ)
}

// TypeFrom returns the type hint, or "" when none is set.
func TypeFrom(ctx context.Context) string {
	s, _ := ctx.Value(typeKey{}).(string)
	return s
}

// WithTable records the table the value belongs to.
func WithTable(ctx context.Context, table string) context.Context {
	return context.WithValue(ctx, tableKey{}, table)
}

func TableFrom(ctx context.Context) string {
	s, _ := ctx.Value(tableKey{}).(string)
	return s
}

// WithColumn records the column the value belongs to.
func WithColumn(ctx context.Context, column string) context.Context {
	return context.WithValue(ctx, columnKey{}, column)
}

func ColumnFrom(ctx context.Context) string {
	s, _ := ctx.Value(columnKey{}).(string)
	return s
}

// WithDriver records the name of the dialect values are exchanged with.
func WithDriver(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, driverKey{}, name)
}

func DriverFrom(ctx context.Context) string {
	s, _ := ctx.Value(driverKey{}).(string)
	return s
}

// WithAppTimeFormat overrides the layout used to parse datetimes read from the database.
func WithAppTimeFormat(ctx context.Context, layout string) context.Context {
	return context.WithValue(ctx, appTimeFormatKey{}, layout)
}

// WithDBTimeFormat overrides the layout used to format datetimes sent to the database.
func WithDBTimeFormat(ctx context.Context, layout string) context.Context {
	return context.WithValue(ctx, dbTimeFormatKey{}, layout)
}

// WithFormatsFrom copies the datetime overrides of src that ctx does not set.
func WithFormatsFrom(ctx, src context.Context) context.Context {
	for _, key := range []any{appTimeFormatKey{}, dbTimeFormatKey{}} {
		if s, _ := ctx.Value(key).(string); s != "" {
			continue
		}
		if s, _ := src.Value(key).(string); s != "" {
			ctx = context.WithValue(ctx, key, s)
		}
	}
	return ctx
}

func appTimeFormat(ctx context.Context) string {
	if s, _ := ctx.Value(appTimeFormatKey{}).(string); s != "" {
		return s
	}
	return DriverTimeFormat(DriverFrom(ctx))
}

func dbTimeFormat(ctx context.Context) string {
	if s, _ := ctx.Value(dbTimeFormatKey{}).(string); s != "" {
		return s
	}
	return DriverTimeFormat(DriverFrom(ctx))
}
