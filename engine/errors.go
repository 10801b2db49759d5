// engine/errors.go
package engine

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrMoreThanOne = errors.New("more than one record found")
)

// Messages carried by FinderError.
const (
	MsgMapClause  = "Could not map clause"
	MsgQuery      = "Query error"
	MsgScanObject = "Could not scan object"
)

// FinderError wraps a failure raised while a Finder builds or runs its query.
type FinderError struct {
	Msg string
	Err error
}

func (e *FinderError) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return e.Msg + ": " + e.Err.Error()
}

func (e *FinderError) Unwrap() error { return e.Err }

// NotFoundError is returned by One and First when no row matches.
type NotFoundError struct {
	Class string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Record not found for class %s", e.Class)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// MoreThanOneError is returned by One when several rows match.
type MoreThanOneError struct {
	Class string
}

func (e *MoreThanOneError) Error() string {
	return fmt.Sprintf("More than one record found for class %s", e.Class)
}

func (e *MoreThanOneError) Unwrap() error { return ErrMoreThanOne }
