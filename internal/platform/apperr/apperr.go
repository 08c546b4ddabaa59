// Package apperr defines the error type returned to HTTP clients. Message is
// the client-facing text; Err keeps the underlying cause for logs only.
package apperr

import (
	"errors"
	"net/http"
)

type AppError struct {
	Message string
	Err     error
	status  int
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.StatusCode())
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func (e *AppError) StatusCode() int {
	if e == nil || e.status == 0 {
		return http.StatusInternalServerError
	}
	return e.status
}

func BadRequest(msg string, err error) *AppError {
	return newAppError(msg, err, http.StatusBadRequest)
}

func Unauthorized(msg string, err error) *AppError {
	return newAppError(msg, err, http.StatusUnauthorized)
}

func Forbidden(msg string, err error) *AppError {
	return newAppError(msg, err, http.StatusForbidden)
}

func NotFound(msg string, err error) *AppError {
	return newAppError(msg, err, http.StatusNotFound)
}

func Internal(msg string, err error) *AppError {
	return newAppError(msg, err, http.StatusInternalServerError)
}

func FromError(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("Internal server error", err)
}

func newAppError(msg string, err error, status int) *AppError {
	return &AppError{
		Message: msg,
		Err:     err,
		status:  status,
	}
}
