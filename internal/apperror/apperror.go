// Package apperror classifies failures so handlers can answer with a
// sanitized message instead of the underlying error text.
package apperror

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindInvalidInput
	KindGateway
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidInput:
		return "invalid_input"
	case KindGateway:
		return "gateway"
	default:
		return "internal"
	}
}

type Error struct {
	Kind    Kind
	Message string // safe to show to the caller
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func InvalidInput(format string, args ...any) *Error {
	return New(KindInvalidInput, fmt.Sprintf(format, args...))
}

func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

func Internal(err error) *Error {
	return Wrap(KindInternal, err, "internal error")
}

// KindOf reports the kind of the first *Error in err's chain. Unclassified
// errors are internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// PublicMessage returns the message that may be shown to API callers.
func PublicMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Kind != KindInternal {
		return appErr.Message
	}
	return "internal error"
}
