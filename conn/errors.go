// conn/errors.go
package conn

// ExecutionError wraps a failure of the database to run a statement.
type ExecutionError struct {
	SQL string
	Err error
}

func (e *ExecutionError) Error() string {
	return "error executing statement " + e.SQL + ": " + e.Err.Error()
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// ScanError reports a row that could not be read or hydrated.
type ScanError struct {
	Msg string
	Err error
}

func (e *ScanError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *ScanError) Unwrap() error { return e.Err }
