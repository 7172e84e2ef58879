// Package apperr carries the HTTP-facing error taxonomy. Services return
// *Error values; the handler layer translates any error into the uniform
// failure envelope exactly once.
package apperr

import (
	"errors"
	"net/http"
)

// Error is an operational error with an HTTP status.
type Error struct {
	Status  int
	Message string
	Err     error // optional cause
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message)
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

func Internal(message string, cause error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: message, Err: cause}
}

// UploadFailed wraps an external image-storage failure.
func UploadFailed(cause error) *Error {
	return Internal("image upload failed", cause)
}

// From extracts the *Error from err's chain, or wraps err as an
// unclassified internal failure.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal("internal server error", err)
}

// StatusOf returns the HTTP status carried by err, defaulting to 500.
func StatusOf(err error) int {
	return From(err).Status
}
