package engine

import (
	"errors"
	"fmt"
)

// ErrorKind classifies engine errors.
type ErrorKind string

const (
	KindValidation    ErrorKind = "validation"
	KindConfiguration ErrorKind = "configuration"
)

// Error represents a fatal engine error. Holiday-source failures are not
// represented here: they degrade the run instead of failing it.
type Error struct {
	Kind    ErrorKind
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

// Per-rule validation sentinels, matchable with errors.Is on the aggregated
// validation error.
var (
	ErrInvalidDate   = errors.New("start date is missing or not a valid calendar date")
	ErrIntervalRange = errors.New("interval must be between 1 and 365 days")
	ErrDurationRange = errors.New("duration must be between 1 and 100")
	ErrInvalidUnit   = errors.New("duration unit must be one of days, weeks, months, years")
)

func newValidationError(errs []error) *Error {
	msg := ""
	for i, err := range errs {
		if i > 0 {
			msg += "; "
		}
		msg += err.Error()
	}
	return &Error{Kind: KindValidation, Message: msg, Err: errors.Join(errs...)}
}
