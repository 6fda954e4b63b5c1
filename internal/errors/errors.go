package errors

import (
	stderrors "errors"
	"fmt"
)

// Error is the domain error type carrying a code next to the message.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Sentinels for errors.Is checks; matching is by code only.
var (
	ErrValidation   = &Error{Code: CodeValidation}
	ErrNotFound     = &Error{Code: CodeNotFound}
	ErrIllegalState = &Error{Code: CodeIllegalState}
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil && e.Message != "" {
		return e.Message + ": " + e.Cause.Error()
	}
	if e.Message == "" && e.Cause != nil {
		return e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a domain error with a code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates a domain error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// Validationf formats a validation error.
func Validationf(format string, args ...any) *Error {
	return New(CodeValidation, fmt.Sprintf(format, args...))
}

// NotFoundf formats a not-found error.
func NotFoundf(format string, args ...any) *Error {
	return New(CodeNotFound, fmt.Sprintf(format, args...))
}

// IllegalStatef formats an illegal-state error.
func IllegalStatef(format string, args ...any) *Error {
	return New(CodeIllegalState, fmt.Sprintf(format, args...))
}

// CodeOf extracts the code of the first *Error in the chain, or CodeUnknown.
func CodeOf(err error) Code {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// IsValidation reports whether err carries CodeValidation.
func IsValidation(err error) bool {
	return CodeOf(err) == CodeValidation
}

// IsNotFound reports whether err carries CodeNotFound.
func IsNotFound(err error) bool {
	return CodeOf(err) == CodeNotFound
}

// IsIllegalState reports whether err carries CodeIllegalState.
func IsIllegalState(err error) bool {
	return CodeOf(err) == CodeIllegalState
}
