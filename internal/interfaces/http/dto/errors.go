package dto

import (
	"errors"
	"net/http"

	"github.com/erp/tradecore/internal/domain/shared"
)

// Codes produced by the HTTP layer itself. Domain codes come from the shared package.
const (
	ErrCodeValidation       = shared.CodeValidation
	ErrCodeBadRequest       = "BAD_REQUEST"
	ErrCodeInternal         = "INTERNAL_ERROR"
	ErrCodeRequestTooLarge  = "REQUEST_TOO_LARGE"
	ErrCodeServiceUnhealthy = "SERVICE_UNAVAILABLE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:         http.StatusInternalServerError,
	ErrCodeBadRequest:       http.StatusBadRequest,
	ErrCodeRequestTooLarge:  http.StatusRequestEntityTooLarge,
	ErrCodeServiceUnhealthy: http.StatusServiceUnavailable,

	shared.CodeValidation: http.StatusBadRequest,
	shared.CodeNotFound:   http.StatusNotFound,

	// Business rule errors -> 422 Unprocessable Entity
	shared.CodeInsufficientStock:      http.StatusUnprocessableEntity,
	shared.CodeInvalidStateTransition: http.StatusUnprocessableEntity,

	shared.CodeDuplicateRequest:    http.StatusConflict,
	shared.CodeConcurrencyConflict: http.StatusConflict,
	shared.CodeAlreadyExists:       http.StatusConflict,

	shared.CodePersistence: http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// StatusForError picks the response status for err. Retryable persistence
// failures (serialization, lost connection) become 503 so clients know to retry.
func StatusForError(err error) int {
	var de *shared.DomainError
	if !errors.As(err, &de) {
		return http.StatusInternalServerError
	}
	if de.Code == shared.CodePersistence && de.Retryable {
		return http.StatusServiceUnavailable
	}
	return GetHTTPStatus(de.Code)
}
