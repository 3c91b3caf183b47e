// Package domainerrors defines the coded error type shared by the domain
// layer and its callers. Every broken invariant or illegal state transition
// surfaces as a single error kind carrying a machine-readable code; the
// transport layer translates codes into HTTP statuses.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error for callers that need to branch on it.
type Code string

const (
	// CodeValidation covers broken invariants, malformed input, and illegal
	// state transitions. This is the only code the entity layer emits.
	CodeValidation Code = "validation"

	// CodeNotFound is raised by stores when a referenced entity is absent.
	CodeNotFound Code = "not_found"

	// CodeConflict is raised by stores on id collisions.
	CodeConflict Code = "conflict"

	// CodeInternal covers infrastructure failures outside the domain's control.
	CodeInternal Code = "internal"
)

// Error is the single error type crossing the domain boundary.
type Error struct {
	Code    Code
	Message string
	cause   error
}

// New builds a domain error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf builds a domain error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying cause.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is makes two domain errors equivalent when their codes match, so callers
// can use errors.Is with a sentinel like New(CodeValidation, "").
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// HasCode reports whether err is a domain error carrying the given code.
func HasCode(err error, code Code) bool {
	var domainErr *Error
	if !errors.As(err, &domainErr) {
		return false
	}
	return domainErr.Code == code
}

// IsValidation reports whether err is a validation rejection. The entity
// layer guarantees the entity is unchanged when this returns true.
func IsValidation(err error) bool {
	return HasCode(err, CodeValidation)
}

// CodeOf extracts the code from err, defaulting to CodeInternal for
// non-domain errors.
func CodeOf(err error) Code {
	var domainErr *Error
	if !errors.As(err, &domainErr) {
		return CodeInternal
	}
	return domainErr.Code
}
