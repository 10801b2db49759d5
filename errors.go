// errors.go
package sqlx

const (
	opPersist = "persist"
	opDelete  = "delete"
	opFind    = "find"
)

// EngineError is returned by every Engine operation. Msg is stable and
// human readable; Err holds the underlying cause, when there is one.
type EngineError struct {
	Op  string
	Msg string
	Err error
}

func (e *EngineError) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return e.Msg + " " + e.Err.Error()
}

func (e *EngineError) Unwrap() error { return e.Err }
