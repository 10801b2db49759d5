// mapper/errors.go
package mapper

import "fmt"

// ConversionError reports a value that could not be mapped.
type ConversionError struct {
	Msg string
	Err error
}

// Errorf builds a ConversionError with an optional cause.
func Errorf(cause error, format string, args ...any) *ConversionError {
	return &ConversionError{Msg: fmt.Sprintf(format, args...), Err: cause}
}

func (e *ConversionError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}
