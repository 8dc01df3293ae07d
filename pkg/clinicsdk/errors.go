package clinicsdk

import (
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/clinic/pkg/httpx"
)

// APIError is the wire error type: a status code and a `{"error": "..."}`
// body. Handlers write it and the client parses it back.
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"error"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteError(w, e.StatusCode, e.Message)
}

// NewAPIError creates a new APIError.
func NewAPIError(statusCode int, message string) *APIError {
	return &APIError{StatusCode: statusCode, Message: message}
}

var (
	ErrInternal      = NewAPIError(http.StatusInternalServerError, httpx.MsgInternal)
	ErrTokenRequired = NewAPIError(http.StatusUnauthorized, httpx.MsgTokenRequired)
	ErrTokenInvalid  = NewAPIError(http.StatusForbidden, httpx.MsgTokenInvalid)
	ErrForbidden     = NewAPIError(http.StatusForbidden, httpx.MsgForbidden)
)

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, statusCode int) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == statusCode
}
