package csrf

import (
	"errors"
	"fmt"
)

// Error is a coded error returned by the tokenizer.
type Error struct {
	Code    string // e.g. "CSRF-ARG-1001"
	Message string
	Details string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches errors by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func newError(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithDetails returns a copy of the error with additional details.
func (e *Error) WithDetails(details string) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping cause.
func (e *Error) WithCause(cause error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// Code extracts the error code from err, or "" if err is not an *Error.
func Code(err error) string {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

var (
	// ErrInvalidArgument reports a bad argument to Create or SecretFunc.
	ErrInvalidArgument = newError("CSRF-ARG-1001", "invalid argument")

	// ErrInvalidConfig reports a Config rejected by New.
	ErrInvalidConfig = newError("CSRF-CFG-1002", "invalid config")

	// ErrTokenMalformed reports a token Parse could not split.
	ErrTokenMalformed = newError("CSRF-TOKN-4000", "malformed token")

	// ErrRandomSource reports a failure of the secret's random source.
	ErrRandomSource = newError("CSRF-SYS-5001", "random source failure")
)
