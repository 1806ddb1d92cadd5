package cricket

import (
	"errors"
	"fmt"
)

// Kind classifies failures so transports can map them without string checks.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindInvalidTransition
	KindConstraintViolation
	KindStorageUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindInvalidTransition:
		return "invalid_transition"
	case KindConstraintViolation:
		return "constraint_violation"
	case KindStorageUnavailable:
		return "storage_unavailable"
	default:
		return "unknown"
	}
}

// Machine-readable error codes.
const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeNotFound            = "NOT_FOUND"
	CodeAlreadyLive         = "ALREADY_LIVE"
	CodeAlreadyFinished     = "ALREADY_FINISHED"
	CodeNotUpcoming         = "NOT_UPCOMING"
	CodeConstraintViolation = "CONSTRAINT_VIOLATION"
	CodeStorageUnavailable  = "STORAGE_UNAVAILABLE"
)

// Error is the structured failure returned by every core operation.
type Error struct {
	Kind    Kind
	Code    string
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

// ValidationError reports missing or malformed input.
func ValidationError(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports an absent fixture or live score.
func NotFoundError(entity string, id int64) *Error {
	return &Error{Kind: KindNotFound, Code: CodeNotFound, Message: fmt.Sprintf("%s %d not found", entity, id)}
}

// InvalidTransitionError reports a lifecycle guard violation for a fixture
// currently in state from.
func InvalidTransitionError(id int64, from, to Status) *Error {
	e := &Error{Kind: KindInvalidTransition}
	switch {
	case to == StatusLive && from == StatusLive:
		e.Code = CodeAlreadyLive
		e.Message = fmt.Sprintf("match %d is already live", id)
	case from == StatusFinished:
		e.Code = CodeAlreadyFinished
		e.Message = fmt.Sprintf("match %d is already finished", id)
	default:
		e.Code = CodeNotUpcoming
		e.Message = fmt.Sprintf("match %d cannot move from %s to %s", id, from, to)
	}
	return e
}

// ConstraintViolationError reports a storage-level invariant violation.
func ConstraintViolationError(format string, args ...any) *Error {
	return &Error{Kind: KindConstraintViolation, Code: CodeConstraintViolation, Message: fmt.Sprintf(format, args...)}
}

// StorageUnavailableError wraps a failure of the storage collaborator.
func StorageUnavailableError(op string, err error) *Error {
	return &Error{Kind: KindStorageUnavailable, Code: CodeStorageUnavailable, Message: op, Err: err}
}

// AsError unwraps err into an *Error.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the kind of err, or KindUnknown for foreign errors.
func KindOf(err error) Kind {
	if e, ok := AsError(err); ok {
		return e.Kind
	}
	return KindUnknown
}

// IsNotFound reports whether err is a NotFound failure.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}
