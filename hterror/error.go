package hterror

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error is an HTTP-facing error with a fixed status code, a message, and an
// optional detail payload. It supports errors.Is / errors.As via Unwrap.
type Error struct {
	status int
	msg    string
	detail any
	cause  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.cause != nil {
		return fmt.Sprintf("%s (%d): %v", e.msg, e.status, e.cause)
	}
	return fmt.Sprintf("%s (%d)", e.msg, e.status)
}

// Unwrap allows errors.Is and errors.As to work on the cause.
func (e *Error) Unwrap() error { return e.cause }

// StatusCode returns the HTTP status code associated with the error.
func (e *Error) StatusCode() int { return e.status }

// Message returns the error message, without the status code or cause.
func (e *Error) Message() string { return e.msg }

// Detail returns the structured detail payload, or nil if there is none.
func (e *Error) Detail() any { return e.detail }

// MarshalJSON renders the message and detail, which is convenient for error
// handlers that return the error itself as the response body.
func (e *Error) MarshalJSON() ([]byte, error) {
	//nolint:wrapcheck // Wrapped by the caller.
	return json.Marshal(struct {
		Message string `json:"message"`
		Detail  any    `json:"detail,omitempty"`
	}{Message: e.msg, Detail: e.detail})
}

// Option configures an Error during construction.
type Option func(*Error)

// WithStatus sets the HTTP status code.
func WithStatus(status int) Option { return func(e *Error) { e.status = status } }

// WithDetail sets the structured detail payload.
func WithDetail(detail any) Option { return func(e *Error) { e.detail = detail } }

// WithCause sets the underlying cause, exposed via Unwrap.
func WithCause(cause error) Option { return func(e *Error) { e.cause = cause } }

// New creates a generic error. The status code defaults to 500 Internal
// Server Error unless overridden with WithStatus.
func New(msg string, opts ...Option) *Error {
	e := &Error{status: http.StatusInternalServerError, msg: msg}
	for _, o := range opts {
		o(e)
	}
	return e
}

// MethodNotAllowed creates a 405 Method Not Allowed error.
func MethodNotAllowed(msg string) *Error {
	return &Error{status: http.StatusMethodNotAllowed, msg: msg}
}

// BadRequest creates a 400 Bad Request error carrying a detail payload,
// typically a validation issue list.
func BadRequest(msg string, detail any) *Error {
	return &Error{status: http.StatusBadRequest, msg: msg, detail: detail}
}

// ServerInternal creates a 500 Internal Server Error with optional additional
// context. A single context value becomes the detail as-is; multiple values
// are kept as a slice.
func ServerInternal(msg string, context ...any) *Error {
	e := &Error{status: http.StatusInternalServerError, msg: msg}
	switch len(context) {
	case 0:
	case 1:
		e.detail = context[0]
	default:
		e.detail = context
	}
	return e
}

// StatusCode extracts the HTTP status code from any error. Errors that don't
// wrap an *Error map to 500 Internal Server Error.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) && e != nil {
		return e.status
	}
	return http.StatusInternalServerError
}
