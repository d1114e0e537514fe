// Package apperr defines the client-visible error taxonomy shared by all modules.
//
// Errors cross module boundaries as text over the request-reply bus, so every
// Error renders as "<kind>: <message>" and From recovers the kind from either
// a typed error or its rendered form.
package apperr

import (
	"errors"
	"slices"
	"strings"
)

// Kind classifies an error for the HTTP boundary.
type Kind string

const (
	KindValidation     Kind = "validation_error"
	KindConflict       Kind = "conflict"
	KindAuthentication Kind = "authentication_error"
	KindNotFound       Kind = "not_found"
	KindInternal       Kind = "internal_error"
)

// internalMessage is the only text ever shown to clients for internal errors.
const internalMessage = "An internal error occurred"

var knownKinds = []Kind{
	KindValidation,
	KindConflict,
	KindAuthentication,
	KindNotFound,
}

// Error is a classified, client-safe error.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// Validation reports missing or malformed input.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Conflict reports a duplicate unique key.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Authentication reports bad credentials or an unusable token.
func Authentication(message string) *Error {
	return &Error{Kind: KindAuthentication, Message: message}
}

// NotFound reports a missing record.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Internal reports a failure whose detail must stay server-side.
func Internal() *Error {
	return &Error{Kind: KindInternal, Message: internalMessage}
}

// From classifies err. Unclassified errors, such as wrapped store
// failures, come back as KindInternal with a generic message.
func From(err error) *Error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	// A kind counts only as a whole ": "-separated segment.
	segments := strings.Split(err.Error(), ": ")
	for i, segment := range segments[:len(segments)-1] {
		kind := Kind(segment)
		if kind == KindInternal {
			break
		}
		if slices.Contains(knownKinds, kind) {
			return &Error{Kind: kind, Message: strings.Join(segments[i+1:], ": ")}
		}
	}

	return Internal()
}

// Is reports whether err classifies as kind.
func Is(err error, kind Kind) bool {
	if err == nil {
		return false
	}
	return From(err).Kind == kind
}
