// Package apperr defines the business error taxonomy shared by the core
// services. Every rejection the core produces on purpose is an *Error with a
// Kind; anything else reaching a handler is treated as an internal failure.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a business failure.
type Kind string

const (
	Unauthenticated Kind = "Unauthenticated"
	Forbidden       Kind = "Forbidden"
	NotFound        Kind = "NotFound"
	InvalidInput    Kind = "InvalidInput"
	InvalidAmount   Kind = "InvalidAmount"
	Unapproved      Kind = "Unapproved"
	AlreadyExists   Kind = "AlreadyExists"
	PaymentRequired Kind = "PaymentRequired"
	EventFull       Kind = "EventFull"
)

// Error is a business failure with a stable Kind and a caller-facing message.
// Err optionally carries the underlying cause for logging.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New returns an *Error of the given kind.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Newf is New with fmt formatting.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an *Error of the given kind that keeps cause for logging.
func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Err: cause}
}

// KindOf returns the Kind of the first *Error in err's chain.
// ok is false for nil and for errors outside the taxonomy.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
