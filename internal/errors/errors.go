// Package errors defines the kiosk's error taxonomy. None of these errors is
// fatal: every one of them ends in a timed recovery back to an idle scanner.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Code is a machine-readable error code.
type Code string

const (
	CodeUnknown           Code = "UNKNOWN"
	CodeFormat            Code = "FORMAT_ERROR"
	CodeMissingCredential Code = "MISSING_CREDENTIAL"
	CodeCamera            Code = "CAMERA_ERROR"
	CodeNetwork           Code = "NETWORK_ERROR"
	CodeNotFound          Code = "NOT_FOUND"
	CodeAPI               Code = "API_ERROR"
	// CodeAlreadyCheckedIn is not a fault; it asks for operator attention.
	CodeAlreadyCheckedIn Code = "ALREADY_CHECKED_IN"
)

// Error is the domain error type.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Operator-facing detail, may be empty
	Status  int    // HTTP status when the error came from the webhook
	Cause   error  // Wrapped underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Cause != nil:
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %v", e.Code, e.Cause)
	default:
		return string(e.Code)
	}
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

// WithStatus creates a domain error carrying an HTTP status.
func WithStatus(code Code, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// CodeOf extracts the code from err, or CodeUnknown.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}
