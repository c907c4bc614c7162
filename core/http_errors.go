package core

import "net/http"

// HTTPError represents an HTTP error with a status code and a stable
// machine-readable code exposed to API clients.
type HTTPError struct {
	Status  int    // HTTP status code
	Code    string // machine-readable error code (e.g. "not_found")
	Message string // human-readable description
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

// WithMessage returns a copy of the error with a specific message.
func (e HTTPError) WithMessage(msg string) HTTPError {
	e.Message = msg
	return e
}

var (
	ErrBadRequest          = HTTPError{Status: http.StatusBadRequest, Code: "bad_request"}
	ErrUnauthorized        = HTTPError{Status: http.StatusUnauthorized, Code: "unauthorized"}
	ErrForbidden           = HTTPError{Status: http.StatusForbidden, Code: "forbidden"}
	ErrNotFound            = HTTPError{Status: http.StatusNotFound, Code: "not_found"}
	ErrMethodNotAllowed    = HTTPError{Status: http.StatusMethodNotAllowed, Code: "method_not_allowed"}
	ErrUnprocessableEntity = HTTPError{Status: http.StatusUnprocessableEntity, Code: "unprocessable_entity"}
	ErrInternalServerError = HTTPError{Status: http.StatusInternalServerError, Code: "internal_error"}
)

// NewHTTPError creates a custom HTTP error.
func NewHTTPError(status int, code, message string) HTTPError {
	return HTTPError{Status: status, Code: code, Message: message}
}
