// Package apperr is the single error channel for the whole core. Every
// operation returns a tagged *Error so callers can branch on Kind instead
// of matching message strings or mixing panics with return values.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// KindUnknown is the zero value; errors not created by this package.
	KindUnknown Kind = iota
	// KindInvalidInput rejects malformed requests before any store call.
	KindInvalidInput
	// KindConflict marks duplicate edges, bookmarks and similar collisions.
	KindConflict
	// KindNotFound marks operations on missing parent documents.
	KindNotFound
	// KindPersistence wraps store failures, message preserved.
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindPersistence:
		return "persistence"
	}
	return "unknown"
}

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

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap keeps the underlying error reachable via errors.Unwrap.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf classifies any error. Errors not created by this package report
// KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
