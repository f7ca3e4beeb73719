package store

import (
	"errors"
	"fmt"
)

// ErrorKind discriminates store operation failures.
type ErrorKind string

const (
	// KindValidation means the caller supplied bad input.
	KindValidation ErrorKind = "validation"
	// KindBusy means a generation is already in flight.
	KindBusy ErrorKind = "busy"
	// KindNotFound means the operation referenced an unknown project id.
	KindNotFound ErrorKind = "not-found"
)

// Error is a typed store failure. No store error is fatal; the session
// always stays usable after one.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds a typed store error from a format string.
func NewError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// KindOf extracts the error kind; empty for untyped errors.
func KindOf(err error) ErrorKind {
	var storeErr *Error
	if errors.As(err, &storeErr) {
		return storeErr.Kind
	}
	return ""
}

// IsBusy reports whether err is the single-flight rejection.
func IsBusy(err error) bool { return KindOf(err) == KindBusy }

// IsNotFound reports whether err is an unknown-project failure.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }
