package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrInvalidCredentials = New("ERR_INVALID_CREDENTIALS", http.StatusUnauthorized, "invalid username or password")
	ErrUnauthorized       = New("ERR_UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrValidation         = New("ERR_VALIDATION", http.StatusBadRequest, "validation failed")
	ErrInternal           = New("ERR_INTERNAL", http.StatusInternalServerError, "internal server error")
	ErrSource             = New("ERR_SOURCE", http.StatusInternalServerError, "failed to load dataset")
	ErrStudentNotFound    = New("ERR_STUDENT_404", http.StatusNotFound, "student not found")
	ErrDepartmentNotFound = New("ERR_DEPARTMENT_404", http.StatusNotFound, "department not found")
	ErrSubjectNotFound    = New("ERR_SUBJECT_404", http.StatusNotFound, "subject not found")
	ErrEntityNotFound     = New("ERR_ENTITY_404", http.StatusNotFound, "entity not found")
	ErrCacheMiss          = New("ERR_CACHE_MISS", http.StatusNotFound, "cache miss")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
