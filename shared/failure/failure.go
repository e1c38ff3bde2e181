// Package failure carries the HTTP status an error should be answered with.
// Errors that are not a *Failure are answered as 500 by the response layer.
package failure

import (
	"errors"
	"net/http"
)

// Failure is an error with the HTTP status and the message shown to the client.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	cause   error
}

var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}

func (e *Failure) Error() string {
	return e.Message
}

// Unwrap exposes the error a Failure was built from, if any.
func (e *Failure) Unwrap() error {
	return e.cause
}

// New builds a Failure from a status and message.
func New(code int, msg string) error {
	return &Failure{Code: code, Message: msg}
}

// Wrap builds a Failure that shows err's message and still matches it with
// errors.Is. A nil err stays nil.
func Wrap(code int, err error) error {
	if err == nil {
		return nil
	}

	return &Failure{Code: code, Message: err.Error(), cause: err}
}

func BadRequest(err error) error {
	return Wrap(http.StatusBadRequest, err)
}

func BadRequestFromString(msg string) error {
	return New(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return New(http.StatusUnauthorized, msg)
}

// Forbidden is for authenticated callers acting on something they do not own.
func Forbidden(msg string) error {
	return New(http.StatusForbidden, msg)
}

func NotFound(msg string) error {
	return New(http.StatusNotFound, msg)
}

// Conflict reports a clash with a concurrent or existing write.
func Conflict(msg string) error {
	return New(http.StatusConflict, msg)
}

// InvalidState rejects operations the entity's current state does not allow.
func InvalidState(msg string) error {
	return New(http.StatusConflict, msg)
}

// Unprocessable is for well-formed requests that cannot be fulfilled.
func Unprocessable(msg string) error {
	return New(http.StatusUnprocessableEntity, msg)
}

// Upstream reports a failing external provider.
func Upstream(msg string) error {
	return New(http.StatusBadGateway, msg)
}

// GetCode returns the status carried by err, or 500 when it carries none.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}
