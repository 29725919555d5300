// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for hioload-pool.

package api

import "fmt"

// Sentinel errors used across the library.
//
// ErrAcquireTimeout and factory failures are transient: the caller may
// retry. ErrNotLeased signals a caller bug (double release, or release of
// a resource the pool never leased) and is never swallowed.
var (
	ErrPoolClosed      = fmt.Errorf("pool is closed")
	ErrAcquireTimeout  = fmt.Errorf("acquire timeout")
	ErrNotLeased       = fmt.Errorf("resource is not leased by this pool")
	ErrInvalidCapacity = fmt.Errorf("pool capacity must be positive")
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeInvalidArgument
	ErrCodeTimeout
	ErrCodeClosed
	ErrCodeNotLeased
	ErrCodeFactory
	ErrCodeReset
	ErrCodeInternal
)

// Error represents a structured error with code, context and an optional
// wrapped cause.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	if len(e.Context) == 0 {
		return msg
	}
	return fmt.Sprintf("%s (context: %+v)", msg, e.Context)
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *Error) Unwrap() error { return e.Cause }

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// WrapFactoryError tags a factory failure so callers can distinguish
// creation errors from exhaustion without string matching.
func WrapFactoryError(err error) *Error {
	return &Error{
		Code:    ErrCodeFactory,
		Message: "resource creation failed",
		Cause:   err,
	}
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}
