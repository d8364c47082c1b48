package slots

import "fmt"

// ValidationError is user-correctable: missing selection, inverted range, or
// a range overlapping a booked slot. It never reaches the store.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s", e.Message)
}

func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// ConflictError means another session booked an overlapping range first.
// The caller returns the user to slot selection for the same date.
type ConflictError struct {
	Date  string
	Slots []string // labels that were already taken
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: slots already booked on %s: %v", e.Date, e.Slots)
}

// StoreUnavailableError wraps an I/O failure against the document store.
// Retryable by the user; the commit must not be assumed to have succeeded.
type StoreUnavailableError struct {
	Op  string
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("store unavailable during %s: %v", e.Op, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error {
	return e.Err
}
