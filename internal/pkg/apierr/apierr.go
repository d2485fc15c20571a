package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// Validation marks malformed or out-of-range input.
func Validation(code string, err error) *Error {
	return New(http.StatusBadRequest, code, err)
}

// NotFound marks a missing resource owned by the caller. A resource
// that exists but belongs to someone else reports the same way.
func NotFound(code string, err error) *Error {
	return New(http.StatusNotFound, code, err)
}

// Storage marks an underlying persistence failure.
func Storage(code string, err error) *Error {
	return New(http.StatusInternalServerError, code, err)
}

// StatusOf extracts the HTTP status carried by err, defaulting to 500.
func StatusOf(err error) int {
	var ae *Error
	if errors.As(err, &ae) && ae.Status != 0 {
		return ae.Status
	}
	return http.StatusInternalServerError
}

// CodeOf extracts the machine-readable code carried by err.
func CodeOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Code != "" {
		return ae.Code
	}
	return "internal_error"
}

// IsStorage reports whether err is a persistence failure whose detail
// must not leak to clients.
func IsStorage(err error) bool {
	return StatusOf(err) >= http.StatusInternalServerError
}
