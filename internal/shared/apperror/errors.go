package apperror

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Kind classifies a domain error so transports can map it to a response.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindDuplicateVote
	KindNotFound
	KindCapacity
	KindUnauthorized
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindDuplicateVote:
		return "duplicate_vote"
	case KindNotFound:
		return "not_found"
	case KindCapacity:
		return "capacity"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	default:
		return "internal"
	}
}

// Error codes
const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeConflict      = "CONFLICT"
	CodeDuplicateVote = "DUPLICATE_VOTE"
	CodeNotFound      = "NOT_FOUND"
	CodeCapacity      = "CAPACITY_EXCEEDED"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeForbidden     = "FORBIDDEN"
	CodeInternal      = "INTERNAL_SERVER_ERROR"
)

// Error is the error type returned by every domain service.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Details interface{}
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, apperror.ErrNotFound) works
// regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == "" && t.Message == "" && t.Kind == e.Kind
}

// Sentinels for errors.Is checks
var (
	ErrValidation    = &Error{Kind: KindValidation}
	ErrConflict      = &Error{Kind: KindConflict}
	ErrDuplicateVote = &Error{Kind: KindDuplicateVote}
	ErrNotFound      = &Error{Kind: KindNotFound}
	ErrCapacity      = &Error{Kind: KindCapacity}
	ErrUnauthorized  = &Error{Kind: KindUnauthorized}
	ErrForbidden     = &Error{Kind: KindForbidden}
)

// KindOf returns the kind of err, or KindInternal for anything that is not an *Error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// ========================================
// CONSTRUCTORS
// ========================================

func Validation(message string, details interface{}) *Error {
	return &Error{Kind: KindValidation, Code: CodeValidation, Message: message, Details: details}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Code: CodeConflict, Message: message}
}

func DuplicateVote(message string) *Error {
	return &Error{Kind: KindDuplicateVote, Code: CodeDuplicateVote, Message: message}
}

func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Code: CodeNotFound, Message: resource + " not found"}
}

func Capacity(message string, limit int) *Error {
	return &Error{
		Kind:    KindCapacity,
		Code:    CodeCapacity,
		Message: message,
		Details: map[string]int{"limit": limit},
	}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Code: CodeUnauthorized, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Code: CodeForbidden, Message: message}
}

// Wrap attaches a cause to an existing domain error without changing its kind.
func (e *Error) Wrap(err error) *Error {
	cp := *e
	cp.Err = err
	return &cp
}

// FromValidation converts an ozzo-validation result into a validation error. Internal
// validator failures are passed through untouched.
func FromValidation(err error) error {
	if err == nil {
		return nil
	}
	var internal validation.InternalError
	if errors.As(err, &internal) {
		return err
	}
	return Validation(err.Error(), err)
}
