// Package apperr defines the domain errors returned by use cases. Each error
// carries a Kind, which handlers map to an HTTP status, and an i18n key, which
// handlers turn into the caller-facing message.
package apperr

import "errors"

type Kind int

const (
	KindInternal Kind = iota
	KindUnauthorized
	KindForbidden
	KindValidation
	KindNotFound
	KindConflict
	KindRateLimited
)

type Error struct {
	Kind Kind
	Key  string
	err  error
}

func New(kind Kind, key string) *Error {
	return &Error{Kind: kind, Key: key}
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.Key + ": " + e.err.Error()
	}
	return e.Key
}

func (e *Error) Unwrap() error {
	return e.err
}

// Internal wraps a store or network failure. The cause is kept for logs only.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Key: "common.serverError", err: err}
}

// KindOf returns KindInternal for errors that are not *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// KeyOf returns the message key of err, or the generic server error key.
func KeyOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Key
	}
	return "common.serverError"
}

var (
	ErrUnauthenticated = New(KindUnauthorized, "auth.unauthenticated")
	ErrInvalidToken    = New(KindUnauthorized, "auth.invalidToken")
	ErrForbidden       = New(KindForbidden, "auth.adminOnly")
	ErrInvalidInput    = New(KindValidation, "common.invalidInput")
	ErrNotFound        = New(KindNotFound, "common.notFound")
	ErrRateLimited     = New(KindRateLimited, "common.rateLimited")
)
