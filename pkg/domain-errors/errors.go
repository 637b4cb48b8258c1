// Package domainerrors carries typed error codes across layers.
//
// Services return these errors so transports can map them to status codes
// without string matching. Contract-level reverts implement Coder so they
// classify the same way while keeping their own typed fields.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies an error independently of its message.
type Code string

const (
	// Authorization failures: the caller is not allowed to perform the operation.
	CodeUnauthorized Code = "unauthorized"
	CodeForbidden    Code = "forbidden"

	// State preconditions: the target is in the wrong state for the operation.
	CodeConflict           Code = "conflict"
	CodeNotFound           Code = "not_found"
	CodeInvariantViolation Code = "invariant_violation"

	// Input validity: the request itself is malformed or out of range.
	CodeBadRequest   Code = "bad_request"
	CodeInvalidInput Code = "invalid_input"
	CodeValidation   Code = "validation_error"
	CodeExpired      Code = "expired"

	// Execution: the requested transfer or call could not complete.
	CodeExecutionFailed Code = "execution_failed"

	CodeTimeout  Code = "timeout"
	CodeInternal Code = "internal_error"
)

// Coder is implemented by typed errors that carry their own classification.
type Coder interface {
	ErrorCode() Code
}

// Error is the generic coded error.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// ErrorCode implements Coder.
func (e *Error) ErrorCode() Code { return e.Code }

// New creates a coded error.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Err: err}
}

// CodeOf returns the outermost code in err's chain, or CodeInternal when none is present.
func CodeOf(err error) Code {
	var coder Coder
	if errors.As(err, &coder) {
		return coder.ErrorCode()
	}
	return CodeInternal
}

// HasCode reports whether any error in err's chain carries code.
func HasCode(err error, code Code) bool {
	for err != nil {
		if coder, ok := err.(Coder); ok && coder.ErrorCode() == code {
			return true
		}
		switch x := err.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range x.Unwrap() {
				if HasCode(inner, code) {
					return true
				}
			}
			return false
		default:
			err = errors.Unwrap(err)
		}
	}
	return false
}

// Is is an alias of HasCode kept for call sites that read better with it.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}
