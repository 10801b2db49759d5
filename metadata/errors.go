// metadata/errors.go
package metadata

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the type is not an entity.
	ErrNotFound = errors.New("metadata not found")
	// ErrInvalid means the type's mapping is malformed.
	ErrInvalid = errors.New("invalid metadata")
)

func NotFound(class string) error {
	return fmt.Errorf("%w for class %s", ErrNotFound, class)
}

func Invalid(class string, cause error) error {
	return fmt.Errorf("%w for class %s: %w", ErrInvalid, class, cause)
}
