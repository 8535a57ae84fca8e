package shared

import (
	"errors"
	"fmt"
)

// Error codes shared by every bounded context
const (
	CodeValidation             = "VALIDATION_ERROR"
	CodeNotFound               = "NOT_FOUND"
	CodeInsufficientStock      = "INSUFFICIENT_STOCK"
	CodeInvalidStateTransition = "INVALID_STATE_TRANSITION"
	CodePersistence            = "PERSISTENCE_ERROR"
	CodeConcurrencyConflict    = "CONCURRENCY_CONFLICT"
	CodeDuplicateRequest       = "DUPLICATE_REQUEST"
	CodeAlreadyExists          = "ALREADY_EXISTS"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Retryable is set on persistence failures the caller may retry from scratch
	Retryable bool  `json:"-"`
	cause     error `json:"-"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause, if any
func (e *DomainError) Unwrap() error {
	return e.cause
}

// Is matches any DomainError carrying the same code, so sentinel
// comparisons keep working on errors with a specific message.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrValidation             = NewDomainError(CodeValidation, "Invalid input provided")
	ErrNotFound               = NewDomainError(CodeNotFound, "Resource not found")
	ErrInsufficientStock      = NewDomainError(CodeInsufficientStock, "Insufficient stock available")
	ErrInvalidStateTransition = NewDomainError(CodeInvalidStateTransition, "Status transition not allowed")
	ErrPersistence            = NewDomainError(CodePersistence, "Storage operation failed")
	ErrConcurrencyConflict    = NewDomainError(CodeConcurrencyConflict, "Resource was modified by another process")
	ErrDuplicateRequest       = NewDomainError(CodeDuplicateRequest, "Request has already been processed")
	ErrAlreadyExists          = NewDomainError(CodeAlreadyExists, "Resource already exists")
)

// NewValidationError reports bad caller input; nothing has been written
func NewValidationError(format string, args ...any) *DomainError {
	return NewDomainError(CodeValidation, fmt.Sprintf(format, args...))
}

// NewNotFoundError reports a missing entity
func NewNotFoundError(entity string, id any) *DomainError {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s %v not found", entity, id))
}

// NewInsufficientStockError names the product whose stock cannot cover the request
func NewInsufficientStockError(productCode string, requested, available fmt.Stringer) *DomainError {
	return NewDomainError(CodeInsufficientStock,
		fmt.Sprintf("Insufficient stock for product %s: requested %s, available %s", productCode, requested, available))
}

// NewInvalidStateTransitionError reports a rejected status change
func NewInvalidStateTransitionError(entity string, from, to string) *DomainError {
	return NewDomainError(CodeInvalidStateTransition,
		fmt.Sprintf("Cannot change %s status from %s to %s", entity, from, to))
}

// NewPersistenceError wraps a storage failure. The unit of work has been rolled back.
func NewPersistenceError(op string, cause error, retryable bool) *DomainError {
	return &DomainError{
		Code:      CodePersistence,
		Message:   fmt.Sprintf("%s failed: %v", op, cause),
		Retryable: retryable,
		cause:     cause,
	}
}

// ErrorCode returns the DomainError code carried by err, or "" when err is not a DomainError
func ErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// IsDomainError reports whether err carries a DomainError
func IsDomainError(err error) bool {
	return ErrorCode(err) != ""
}

// IsRetryable reports whether err is a persistence failure the caller may retry from scratch
func IsRetryable(err error) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Retryable
}
