package domain

import "errors"

// Error kinds surfaced by services. Handlers map each kind to a fixed status.
var (
	ErrValidation       = errors.New("validation failed")
	ErrConflict         = errors.New("resource already exists")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrNotFound         = errors.New("not found")
)

// ValidationError carries a message that is safe to show to the client.
type ValidationError struct {
	Message string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
