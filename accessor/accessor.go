// accessor/accessor.go
package accessor

import (
	"errors"
	"fmt"
)

// ErrNonexistentProperty is returned when an object has no property with the
// requested scope and name.
var ErrNonexistentProperty = errors.New("nonexistent property")

// Accessor reads and writes properties of arbitrary objects. Scope is the
// name of the type declaring the property, so embedded types can be reached
// without ambiguity.
type Accessor interface {
	Get(obj any, scope, name string) (any, error)
	Set(obj any, scope, name string, value any) error
	Has(obj any, scope, name string) bool
}

func nonexistent(scope, name string) error {
	return fmt.Errorf("%w %s.%s", ErrNonexistentProperty, scope, name)
}
