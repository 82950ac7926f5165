// Package errors provides structured error types for csrgraph.
//
// Graph construction is a fail-fast batch stage: there is no recoverable error
// path inside the converter. Errors carry a machine-readable [Code] so that the
// command-line entry point can decide how to terminate and so callers that
// embed the library can tell resource exhaustion apart from bad input.
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - OUT_OF_MEMORY / OVERFLOW: Fatal sizing failures of the allocator
//   - CORRUPT_*: Malformed on-disk artifacts
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeOverflow, "edge count %d exceeds int32", n)
//	if errors.Is(err, errors.ErrCodeOverflow) {
//	    // Retry with a wider edge-count type
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "parse %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeCorruptFile  Code = "CORRUPT_FILE"

	// Fatal sizing errors
	ErrCodeOutOfMemory Code = "OUT_OF_MEMORY"
	ErrCodeOverflow    Code = "OVERFLOW"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsFatal reports whether err belongs to the fatal sizing taxonomy
// (out of memory or integer overflow).
func IsFatal(err error) bool {
	code := GetCode(err)
	return code == ErrCodeOutOfMemory || code == ErrCodeOverflow
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// SizeError reports the graph dimensions that could not be materialized.
// It is the cause attached to OUT_OF_MEMORY and OVERFLOW errors.
type SizeError struct {
	Vertices uint64
	Edges    uint64
	Limit    uint64 // Type maximum or memory limit that was exceeded (0 if unknown)
}

// Error implements the error interface.
func (e *SizeError) Error() string {
	if e.Limit > 0 {
		return fmt.Sprintf("V: %d E: %d (limit %d)", e.Vertices, e.Edges, e.Limit)
	}
	return fmt.Sprintf("V: %d E: %d", e.Vertices, e.Edges)
}
