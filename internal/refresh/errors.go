package refresh

import "errors"

// ErrNotReady is matched by errors returned when no snapshot has been produced yet
var ErrNotReady = errors.New("refresh data not ready")

// NotReadyError is returned by GetData before the first refresh has completed.
// Callers that depend on mirrored data should let it propagate and skip the
// current cycle rather than treat it as a failure.
type NotReadyError struct {
	Name    string
	Message string
}

func (e *NotReadyError) Error() string {
	return e.Message
}

func (*NotReadyError) Unwrap() error {
	return ErrNotReady
}
