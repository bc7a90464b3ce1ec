package api

import "net/http"

// Error categories carried in the JSON error envelope.
const (
	CategoryValidationError = "VALIDATION_ERROR"
	CategoryObjectNotFound  = "OBJECT_NOT_FOUND"
	CategoryInternalError   = "INTERNAL_ERROR"
	CategoryUnauthorized    = "UNAUTHORIZED"
)

// Error is the JSON body of every failed API request.
type Error struct {
	Status        string        `json:"status"`
	Message       string        `json:"message"`
	CorrelationID string        `json:"correlationId"`
	Category      string        `json:"category"`
	Errors        []ErrorDetail `json:"errors,omitempty"`
}

// ErrorDetail points at one offending input.
type ErrorDetail struct {
	Message string `json:"message"`
	In      string `json:"in,omitempty"`
}

// NewNotFoundError creates a 404 error with the OBJECT_NOT_FOUND category.
func NewNotFoundError(message, correlationID string) *Error {
	return &Error{
		Status:        "error",
		Message:       message,
		CorrelationID: correlationID,
		Category:      CategoryObjectNotFound,
	}
}

// NewValidationError creates a 400 error with the VALIDATION_ERROR category.
func NewValidationError(message, correlationID string, details []ErrorDetail) *Error {
	return &Error{
		Status:        "error",
		Message:       message,
		CorrelationID: correlationID,
		Category:      CategoryValidationError,
		Errors:        details,
	}
}

// NewInternalError creates a 500 error. The message is generic; the cause
// belongs in the log.
func NewInternalError(correlationID string) *Error {
	return &Error{
		Status:        "error",
		Message:       "Internal Server Error",
		CorrelationID: correlationID,
		Category:      CategoryInternalError,
	}
}

// WriteError writes an Error as a JSON response with the given HTTP status code.
func WriteError(w http.ResponseWriter, statusCode int, apiErr *Error) {
	WriteJSON(w, statusCode, apiErr)
}
