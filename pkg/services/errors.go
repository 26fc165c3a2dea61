package services

import (
	"github.com/pkg/errors"
)

// Error kinds returned by the category and role services. Callers classify
// with errors.Is; the wrapped message carries the context.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrMalformedInput  = errors.New("malformed input")
	ErrStore           = errors.New("store error")
)

type kindError struct {
	kind error
	err  error
}

func (e *kindError) Error() string { return e.kind.Error() + ": " + e.err.Error() }

func (e *kindError) Is(target error) bool { return target == e.kind }

func (e *kindError) Unwrap() error { return e.err }

// withKind tags err with one of the error kinds above.
func withKind(kind, err error) error {
	if err == nil {
		return nil
	}
	return &kindError{kind: kind, err: err}
}

// storeError wraps a persistence failure, tagging it ErrStore unless the
// store already reported ErrNotFound.
func storeError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrStore) {
		return errors.Wrapf(err, format, args...)
	}
	return errors.Wrapf(withKind(ErrStore, err), format, args...)
}
