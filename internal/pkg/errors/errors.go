package errors

import "errors"

var (
	ErrNotFound             = errors.New("not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrInvalid              = errors.New("invalid")
	ErrConflict             = errors.New("conflict")
	ErrTooMany              = errors.New("too many requests")
	ErrInternal             = errors.New("internal")
	ErrAlreadyVerified      = errors.New("already verified")
	ErrCodeExpired          = errors.New("code expired")
	ErrCodeInvalid          = errors.New("code invalid")
	ErrCodeInvalidOrExpired = errors.New("code invalid or expired")
	ErrWeakPassword         = errors.New("weak password")
	ErrUpstream             = errors.New("upstream error")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}
