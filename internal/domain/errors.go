package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a failure at the point of detection so the HTTP
// boundary can map it to a status code exactly once.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindDuplicate
	KindNotFound
	KindUnsupportedMedia
	KindTooLarge
)

// Error is the kind-tagged error used across validator, upload handler
// and accessor. Details carries per-field messages when present.
type Error struct {
	Kind    Kind
	Message string
	Details map[string]string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// NewError builds a kind-tagged error without field details.
func NewError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// ValidationError builds a KindValidation error carrying per-field
// messages.
func ValidationError(msg string, details map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: msg, Details: details}
}

// WrapError tags an underlying error with a kind and message.
func WrapError(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, cause: cause}
}

// KindOf extracts the kind from err, defaulting to KindInternal for
// anything untagged.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// DetailsOf returns the per-field details attached to err, if any.
func DetailsOf(err error) map[string]string {
	var de *Error
	if errors.As(err, &de) {
		return de.Details
	}
	return nil
}

// Common accessor outcomes.
var (
	ErrNotFound       = NewError(KindNotFound, "employee not found")
	ErrDuplicateEmail = NewError(KindDuplicate, "an employee with this email already exists")
)
