package directory

import "errors"

var (
	ErrCompanyCreate = errors.New("create company")
	ErrRemoteDelete  = errors.New("delete appointment")
)

// RemoteError is returned when the remote store rejects a write the caller
// must know about. errors.Is matches it against Op.
type RemoteError struct {
	Op  error
	Err error
}

func (e *RemoteError) Error() string { return e.Op.Error() + ": " + e.Err.Error() }

func (e *RemoteError) Unwrap() error { return e.Err }

func (e *RemoteError) Is(target error) bool { return target == e.Op }
