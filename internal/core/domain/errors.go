package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error a client may see wraps exactly one of these; an
// error that wraps none of them is an internal failure.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("not allowed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
)

var (
	ErrInvalidCredentials = kindError(ErrUnauthorized, "wrong credentials given")
	ErrUserNotFound       = kindError(ErrNotFound, "user not found")
	ErrUserExists         = kindError(ErrConflict, "credentials taken")
	ErrPostNotFound       = kindError(ErrNotFound, "post not found")
	ErrFavoriteNotFound   = kindError(ErrNotFound, "post is not in favorites")
	ErrAlreadyFavorite    = kindError(ErrConflict, "post already in favorites")
)

type kindedError struct {
	kind error
	msg  string
}

func kindError(kind error, msg string) error {
	return &kindedError{kind: kind, msg: msg}
}

func (e *kindedError) Error() string { return e.msg }

func (e *kindedError) Unwrap() error { return e.kind }

// WithMessage returns an error that matches base under errors.Is but reports
// the formatted message instead of base's own.
func WithMessage(base error, format string, args ...any) error {
	return &kindedError{kind: base, msg: fmt.Sprintf(format, args...)}
}
