package auth

import "errors"

var (
	// ErrUnauthorized is the umbrella error for every rejected token. Callers
	// that only need to decide 401 check this one.
	ErrUnauthorized = errors.New("unauthorized")

	ErrMalformedToken = errors.New("malformed token")
	ErrBadSignature   = errors.New("bad token signature")
	ErrTokenExpired   = errors.New("token expired")

	ErrLockedOut = errors.New("too many failed login attempts")
)

type tokenError struct {
	cause error
	err   error
}

func (e *tokenError) Error() string {
	if e.err == nil {
		return e.cause.Error()
	}
	return e.cause.Error() + ": " + e.err.Error()
}

func (e *tokenError) Is(target error) bool {
	return target == ErrUnauthorized || target == e.cause
}

func (e *tokenError) Unwrap() error {
	return e.err
}

func newTokenError(cause, err error) error {
	return &tokenError{cause: cause, err: err}
}
