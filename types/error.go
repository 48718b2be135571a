package types

import (
	stderrors "errors"

	"github.com/juju/errors"
)

var (
	_ error = &FatalError{}
)

/**
 * FatalError marks a job failure as non-transient: the queue moves
 * the job straight to the failed list instead of retrying it.
 * Anything else escaping a walk is retried up to the attempt limit.
 */
type FatalError struct {
	wrapped error
}

func NewFatalError(err error) error {
	return &FatalError{wrapped: err}
}

func NewFatalErrorf(format string, args ...interface{}) error {
	return &FatalError{wrapped: errors.Errorf(format, args...)}
}

func (e *FatalError) Error() string {
	return e.wrapped.Error()
}

func (e *FatalError) Unwrap() error {
	return e.wrapped
}

func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	if _, ok := errors.Cause(err).(*FatalError); ok {
		return true
	}
	var fe *FatalError
	return stderrors.As(err, &fe)
}
