package store

import (
	"errors"
	"fmt"
	"strings"
)

type ErrorKind string

const (
	KindNotFoundError   ErrorKind = "not_found"
	KindValidationError ErrorKind = "validation"
	KindDatabaseError   ErrorKind = "database"
	KindInternalError   ErrorKind = "internal"
)

// Error is the typed result surfaced to callers of the store. Its Error()
// text is the stable display string shown to users.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

var (
	ErrNotFound   = &Error{Kind: KindNotFoundError}
	ErrValidation = &Error{Kind: KindValidationError}
	ErrDatabase   = &Error{Kind: KindDatabaseError}
	ErrInternal   = &Error{Kind: KindInternalError}
)

func (e *Error) Error() string {
	switch e.Kind {
	case KindNotFoundError:
		return "Not found: " + e.Message
	case KindValidationError:
		return "Validation error: " + e.Message
	case KindDatabaseError:
		if e.Message == "" && e.Cause != nil {
			return "Database error: " + e.Cause.Error()
		}
		if e.Cause != nil {
			return fmt.Sprintf("Database error: %s: %v", e.Message, e.Cause)
		}
		return "Database error: " + e.Message
	default:
		if e.Cause != nil {
			return fmt.Sprintf("Internal error: %s: %v", e.Message, e.Cause)
		}
		return "Internal error: " + e.Message
	}
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound)
// works regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func NotFound(label, id string) *Error {
	return &Error{
		Kind:    KindNotFoundError,
		Message: fmt.Sprintf("%s %s not found", label, id),
	}
}

func Validation(violations ...string) *Error {
	return &Error{
		Kind:    KindValidationError,
		Message: strings.Join(violations, "; "),
	}
}

// Database wraps a storage-layer failure. A nil err yields nil, and an err
// that already carries a kind yields that typed error.
func Database(err error) error {
	if err == nil {
		return nil
	}
	var typed *Error
	if errors.As(err, &typed) {
		return typed
	}
	return &Error{Kind: KindDatabaseError, Cause: err}
}

func Internal(format string, args ...any) *Error {
	return &Error{
		Kind:    KindInternalError,
		Message: fmt.Sprintf(format, args...),
	}
}

// KindOf reports the kind of a store error, or "" for anything else.
func KindOf(err error) ErrorKind {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Kind
	}
	return ""
}
