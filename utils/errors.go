package utils

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindNotFound     ErrorKind = "NOT_FOUND"
	KindUnavailable  ErrorKind = "UNAVAILABLE"
	KindUnauthorized ErrorKind = "UNAUTHORIZED"
	KindForbidden    ErrorKind = "FORBIDDEN"
	KindValidation   ErrorKind = "VALIDATION_FAILED"
	KindConflict     ErrorKind = "CONFLICT"
	KindAccessDenied ErrorKind = "ACCESS_DENIED"
	KindRateLimited  ErrorKind = "RATE_LIMITED"
	KindInternal     ErrorKind = "INTERNAL_ERROR"
)

// AppError is an error that is safe to show to API clients. Err holds the
// underlying cause for logging only.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func newAppError(kind ErrorKind, format string, args ...interface{}) *AppError {
	return &AppError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func NewNotFound(format string, args ...interface{}) *AppError {
	return newAppError(KindNotFound, format, args...)
}

func NewUnavailable(format string, args ...interface{}) *AppError {
	return newAppError(KindUnavailable, format, args...)
}

func NewUnauthorized(format string, args ...interface{}) *AppError {
	return newAppError(KindUnauthorized, format, args...)
}

func NewForbidden(format string, args ...interface{}) *AppError {
	return newAppError(KindForbidden, format, args...)
}

func NewValidation(format string, args ...interface{}) *AppError {
	return newAppError(KindValidation, format, args...)
}

func NewConflict(format string, args ...interface{}) *AppError {
	return newAppError(KindConflict, format, args...)
}

func NewAccessDenied(format string, args ...interface{}) *AppError {
	return newAppError(KindAccessDenied, format, args...)
}

// AsAppError reports whether err (or anything it wraps) is an *AppError.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf returns KindInternal for errors that are not AppErrors.
func KindOf(err error) ErrorKind {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Kind
	}
	return KindInternal
}
