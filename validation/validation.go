package validation

import (
	"errors"
	"fmt"
)

// ErrInvalid is matched by every *Error.
var ErrInvalid = errors.New("validation error")

// Error reports a single invalid input value.
type Error struct {
	Field  string
	Value  interface{}
	Reason string
}

func New(field string, value interface{}, reason string) *Error {
	return &Error{Field: field, Value: value, Reason: reason}
}

func (e *Error) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s (%v): %s", e.Field, e.Value, e.Reason)
}

func (e *Error) Is(target error) bool {
	return target == ErrInvalid
}
