package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes shared between services and the HTTP layer.
const (
	CodeNotFound           = "not_found"
	CodeForbidden          = "forbidden"
	CodeConflict           = "conflict"
	CodeInvalidArgument    = "invalid_argument"
	CodeInvariantViolation = "invariant_violation"
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

func NotFound(err error) *Error {
	return New(http.StatusNotFound, CodeNotFound, err)
}

func Forbidden(err error) *Error {
	return New(http.StatusForbidden, CodeForbidden, err)
}

// Conflict marks an error as safe to retry from the caller: the enclosing
// transaction committed nothing.
func Conflict(err error) *Error {
	return New(http.StatusConflict, CodeConflict, err)
}

func InvalidArgument(err error) *Error {
	return New(http.StatusBadRequest, CodeInvalidArgument, err)
}

func InvariantViolation(err error) *Error {
	return New(http.StatusInternalServerError, CodeInvariantViolation, err)
}

// From extracts an *Error from err's chain, or nil.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}
