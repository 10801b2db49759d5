// mapper/mapper.go
package mapper

import (
	"context"
	"fmt"
)

// Mapper converts values between their application and database forms.
type Mapper interface {
	ToApplication(ctx context.Context, value any) (any, error)
	ToDatabase(ctx context.Context, value any) (any, error)
}

// Link is one element of a Chain. A link either handles the value or
// forwards it, possibly with a derived context, to next.
type Link interface {
	Name() string
	ToApplication(ctx context.Context, value any, next Mapper) (any, error)
	ToDatabase(ctx context.Context, value any, next Mapper) (any, error)
}

// Chain runs its links in order and ends with a terminal mapper.
type Chain struct {
	links []Link
	tail  Mapper
}

var _ Mapper = (*Chain)(nil)

// NewChain returns a chain running links in the given order before tail.
// A nil tail means Standard.
func NewChain(tail Mapper, links ...Link) *Chain {
	if tail == nil {
		tail = Standard{}
	}
	return &Chain{links: append([]Link(nil), links...), tail: tail}
}

// Names lists the chain in execution order, terminal mapper last.
func (c *Chain) Names() []string {
	names := make([]string, 0, len(c.links)+1)
	for _, l := range c.links {
		names = append(names, l.Name())
	}
	if n, ok := c.tail.(interface{ Name() string }); ok {
		names = append(names, n.Name())
	} else {
		names = append(names, fmt.Sprintf("%T", c.tail))
	}
	return names
}

func (c *Chain) ToApplication(ctx context.Context, value any) (any, error) {
	return step{c, 0}.ToApplication(ctx, value)
}

func (c *Chain) ToDatabase(ctx context.Context, value any) (any, error) {
	return step{c, 0}.ToDatabase(ctx, value)
}

// step is the rest of the chain starting at link i.
type step struct {
	c *Chain
	i int
}

func (s step) ToApplication(ctx context.Context, value any) (any, error) {
	if s.i >= len(s.c.links) {
		return s.c.tail.ToApplication(ctx, value)
	}
	return s.c.links[s.i].ToApplication(ctx, value, step{s.c, s.i + 1})
}

func (s step) ToDatabase(ctx context.Context, value any) (any, error) {
	if s.i >= len(s.c.links) {
		return s.c.tail.ToDatabase(ctx, value)
	}
	return s.c.links[s.i].ToDatabase(ctx, value, step{s.c, s.i + 1})
}
