package errors

import (
	"errors"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyInUse  = errors.New("email already in use")
	ErrMissingToken       = errors.New("authorization token is missing")
	ErrTokenRevoked       = errors.New("token has been revoked, please log in again")
	ErrTokenExpired       = errors.New("token has expired")
	ErrTokenInvalid       = errors.New("token is invalid")
	ErrTicketNotFound     = errors.New("no password reset was requested for this email")
	ErrTicketMismatch     = errors.New("password reset token does not match")
	ErrTicketExpired      = errors.New("password reset token has expired")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrMissingSecret      = errors.New("signing secret is not configured")
)

// Kind classifies an error for the HTTP translator. Handlers and services
// raise kinded errors; only the translator turns them into status codes.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindUnauthorized
	KindForbidden
	KindServer
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Unauthorized(err error) *Error {
	return &Error{Kind: KindUnauthorized, Err: err}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

func Server(err error) *Error {
	return &Error{Kind: KindServer, Message: "something went wrong", Err: err}
}
