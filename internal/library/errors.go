package library

import (
	"errors"
	"fmt"
)

// Kind classifies a service failure. The HTTP layer maps each kind to a status.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindBadRequest
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindBadRequest:
		return "bad_request"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

const internalMessage = "An unexpected error occurred on the server."

// Error is the single error type returned by the services for expected failures.
type Error struct {
	Kind    Kind
	Message string
	// Entity and ID are set for KindNotFound.
	Entity string
	ID     uint
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NotFound(entity string, id uint) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s with ID %d not found.", entity, id),
		Entity:  entity,
		ID:      id,
	}
}

func BadRequest(message string) *Error {
	return &Error{Kind: KindBadRequest, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Internal wraps an unexpected failure. The cause is kept for logging only.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: internalMessage, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var libErr *Error
	if errors.As(err, &libErr) {
		return libErr.Kind
	}
	return KindInternal
}

// AsError extracts the first *Error in err's chain.
func AsError(err error) (*Error, bool) {
	var libErr *Error
	if errors.As(err, &libErr) {
		return libErr, true
	}
	return nil, false
}
