package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a business-rule violation so handlers can map it to an HTTP
// status without string matching.
type Kind string

const (
	KindNotFound         Kind = "not_found"
	KindUnauthorized     Kind = "unauthorized"
	KindInvalidInput     Kind = "invalid_input"
	KindMealUnavailable  Kind = "meal_unavailable"
	KindTerminalState    Kind = "terminal_state"
	KindAlreadyCancelled Kind = "already_cancelled"
	KindAlreadyDelivered Kind = "already_delivered"
	KindAlreadyExpired   Kind = "already_expired"
	KindAlreadyActive    Kind = "already_active"
	KindMissingReference Kind = "missing_reference"
	KindConflict         Kind = "conflict"
)

type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// KindOf unwraps err looking for an *Error and returns its kind, or "" when
// err carries no business classification.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
