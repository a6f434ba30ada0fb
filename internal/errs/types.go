package errs

import "fmt"

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

type NotFoundError struct {
	ErrorMessage
}

type ValidationError struct {
	ErrorMessage
}

// CorruptStoreError means the persisted document exists but cannot be decoded.
// It is distinct from an empty store, which is not an error.
type CorruptStoreError struct {
	ErrorMessage
	Backend string
	Err     error
}

func (e *CorruptStoreError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Backend, e.Message, e.Err)
}

func (e *CorruptStoreError) Unwrap() error { return e.Err }

// PersistenceError wraps an I/O failure while reading or writing the store.
type PersistenceError struct {
	ErrorMessage
	Operation string // "read", "write"
	Err       error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Operation, e.Message, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewCorruptStoreError(backend, message string, err error) *CorruptStoreError {
	return &CorruptStoreError{
		ErrorMessage: ErrorMessage{Message: message},
		Backend:      backend,
		Err:          err,
	}
}

func NewPersistenceError(operation, message string, err error) *PersistenceError {
	return &PersistenceError{
		ErrorMessage: ErrorMessage{Message: message},
		Operation:    operation,
		Err:          err,
	}
}
