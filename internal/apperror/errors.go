// Package apperror defines the error kinds surfaced to API callers.
//
// Callers branch on Kind to decide whether a retry makes sense: rejections
// and validation failures are final, persistence failures are transient.
package apperror

import (
	"errors"
	"fmt"
)

// Kind categorizes an Error.
type Kind string

const (
	KindValidation  Kind = "validation"
	KindRejected    Kind = "rejected"
	KindNotFound    Kind = "not_found"
	KindPersistence Kind = "persistence"
	KindConflict    Kind = "conflict"
)

// Business rejection codes.
const (
	CodeTooSoon       = "too_soon"
	CodeNoActiveShift = "no_active_shift"
)

// Other well-known codes.
const (
	CodeInvalidInput      = "invalid_input"
	CodeUnknownOrg        = "unknown_organization"
	CodeUnknownSupervisor = "unknown_supervisor"
	CodeUnknownUser       = "unknown_user"
	CodeEmailTaken        = "email_taken"
	CodeDuplicate         = "duplicate"
	CodeDatabase          = "database_unavailable"
	CodeBadCredentials    = "bad_credentials"
	CodeForbidden         = "forbidden"
)

// Error is the typed error returned by usecases.
type Error struct {
	Kind    Kind
	Code    string
	Message string

	// RetryAfter is set on too_soon rejections, in whole seconds.
	RetryAfter int

	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s/%s: %s: %v", e.Kind, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s/%s: %s", e.Kind, e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Retryable reports whether the same call may succeed if repeated later.
func (e *Error) Retryable() bool { return e.Kind == KindPersistence }

func Validation(code, msg string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: msg}
}

func Reject(code, msg string) *Error {
	return &Error{Kind: KindRejected, Code: code, Message: msg}
}

// TooSoon rejects a mark that falls inside the debounce window.
func TooSoon(retryAfter int) *Error {
	return &Error{
		Kind:       KindRejected,
		Code:       CodeTooSoon,
		Message:    fmt.Sprintf("debe esperar %d segundos antes de volver a marcar", retryAfter),
		RetryAfter: retryAfter,
	}
}

// NoActiveShift rejects an event that falls outside every shift window.
func NoActiveShift() *Error {
	return Reject(CodeNoActiveShift, "no hay turno activo en este horario")
}

func NotFound(code, msg string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: msg}
}

func Conflict(code, msg string, err error) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: msg, Err: err}
}

func Persistence(msg string, err error) *Error {
	return &Error{Kind: KindPersistence, Code: CodeDatabase, Message: msg, Err: err}
}

// As unwraps err into an *Error.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the kind of err, or KindPersistence for untyped errors.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindPersistence
}

// IsRejection reports whether err is a business rejection with the given
// code. An empty code matches any rejection.
func IsRejection(err error, code string) bool {
	e, ok := As(err)
	if !ok || e.Kind != KindRejected {
		return false
	}
	return code == "" || e.Code == code
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	e, ok := As(err)
	return ok && e.Kind == kind
}
