package errors

import (
	stderrors "errors"
	"net/http"
)

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTPError with the given code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

// Helpers for the error kinds the handlers translate to status codes.
var (
	NewValidationError = func(msg string) *HTTPError { return NewHTTPError(http.StatusBadRequest, msg) }
	NewConflictError   = func(msg string) *HTTPError { return NewHTTPError(http.StatusConflict, msg) }
	ErrUnauthorized    = NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	ErrForbidden       = NewHTTPError(http.StatusForbidden, "Forbidden")
	ErrInternal        = NewHTTPError(http.StatusInternalServerError, "Internal server error")
)

// StatusOf returns the HTTP status carried by err, or 500 when err is not an
// HTTPError. Collaborator errors never reach the client with their own shape.
func StatusOf(err error) int {
	var httpErr *HTTPError
	if stderrors.As(err, &httpErr) {
		return httpErr.Code
	}
	return http.StatusInternalServerError
}

// MessageOf returns the client-facing message for err. Non-HTTPError values
// collapse to the generic internal message.
func MessageOf(err error) string {
	var httpErr *HTTPError
	if stderrors.As(err, &httpErr) {
		return httpErr.Message
	}
	return ErrInternal.Message
}

// IsConflict reports whether err carries a 409 status.
func IsConflict(err error) bool {
	return StatusOf(err) == http.StatusConflict
}
