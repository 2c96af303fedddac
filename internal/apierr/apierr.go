// Package apierr defines the domain error taxonomy. Every failure that can
// reach a client is one of these kinds; the handler layer translates kind to
// HTTP status and the uniform error envelope.
package apierr

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

// Kind classifies a domain error.
type Kind int

const (
	Internal Kind = iota
	NotFound
	Unauthorized
	Forbidden
	Validation
	Conflict
	Upload
)

// Error is a domain error with a client-facing message.
type Error struct {
	Kind    Kind
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

// New builds a domain error of the given kind.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches an underlying cause to a domain error.
func Wrap(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the kind from err, defaulting to Internal for anything
// unrecognized.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// StatusCode maps an error to its HTTP status.
func StatusCode(err error) int {
	switch KindOf(err) {
	case NotFound:
		return http.StatusNotFound
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case Validation, Upload:
		return http.StatusBadRequest
	case Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-facing message for err. Unrecognized errors get
// a generic message so internals never leak.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal Server Error"
}

// FromStore normalizes store-level errors: missing rows become NotFound with
// the given resource description, duplicate keys become Conflict. Anything
// else passes through for the boundary to treat as Internal.
func FromStore(err error, resource string, id interface{}) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return New(NotFound, "%s not found with id of %v", resource, id)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return New(Conflict, "Duplicate field value entered")
	default:
		return err
	}
}
