// mapper/driver.go
package mapper

import "context"

// DriverLink publishes the dialect name to the rest of the chain.
type DriverLink struct {
	driver string
}

var _ Link = DriverLink{}

func NewDriverLink(driver string) DriverLink {
	return DriverLink{driver: driver}
}

func (l DriverLink) Name() string { return "driver" }

func (l DriverLink) ToApplication(ctx context.Context, value any, next Mapper) (any, error) {
	return next.ToApplication(l.with(ctx), value)
}

func (l DriverLink) ToDatabase(ctx context.Context, value any, next Mapper) (any, error) {
	return next.ToDatabase(l.with(ctx), value)
}

func (l DriverLink) with(ctx context.Context) context.Context {
	if DriverFrom(ctx) != "" {
		return ctx
	}
	return WithDriver(ctx, l.driver)
}
