// File: internal/services/portal/errors.go
package portal

import (
	"errors"
	"fmt"
)

type ErrorType string

const (
	ErrTypeValidation   ErrorType = "VALIDATION"
	ErrTypeNotFound     ErrorType = "NOT_FOUND"
	ErrTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrTypeStore        ErrorType = "STORE"
)

// Error is the typed error returned by the portal services. Handlers switch
// on Type to pick a status code.
type Error struct {
	Type      ErrorType
	Operation string
	Message   string
	Cause     error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("portal %s error in %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("portal %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func NewValidationError(operation, msg string) *Error {
	return &Error{Type: ErrTypeValidation, Operation: operation, Message: msg}
}

func NewNotFoundError(operation, msg string) *Error {
	return &Error{Type: ErrTypeNotFound, Operation: operation, Message: msg}
}

func NewUnauthorizedError(operation string) *Error {
	return &Error{Type: ErrTypeUnauthorized, Operation: operation, Message: "Unauthorized"}
}

func NewStoreError(operation, msg string, cause error) *Error {
	return &Error{Type: ErrTypeStore, Operation: operation, Message: msg, Cause: cause}
}

// TypeOf extracts the ErrorType of err, or ErrTypeStore when err is not a
// portal error (unexpected failures are treated as store-side).
func TypeOf(err error) ErrorType {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Type
	}
	return ErrTypeStore
}
