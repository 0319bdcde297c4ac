package services

// ValidationError covers client mistakes: an unknown action or kind tag, or a
// malformed request shape. Handlers answer it with 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError means the target id does not resolve to a row. Handlers answer
// it with 404.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// StorageFault wraps a persistence failure so the underlying message can be
// surfaced for diagnostics instead of being swallowed.
type StorageFault struct {
	Err error
}

func (e *StorageFault) Error() string { return e.Err.Error() }
func (e *StorageFault) Unwrap() error { return e.Err }
