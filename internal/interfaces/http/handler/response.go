package handler

import "github.com/erp/tradecore/internal/interfaces/http/dto"

// The types below only describe response shapes to swag. Handlers always
// write dto.Response.

// APIResponse is a success envelope with a typed payload
type APIResponse[T any] struct {
	Success bool `json:"success" example:"true"`
	Data    T    `json:"data"`
}

// ListResponse is a paged success envelope
type ListResponse[T any] struct {
	Success bool      `json:"success" example:"true"`
	Data    []T       `json:"data"`
	Meta    *dto.Meta `json:"meta"`
}

// ErrorResponse is the failure envelope
type ErrorResponse struct {
	Success bool           `json:"success" example:"false"`
	Error   *dto.ErrorInfo `json:"error"`
}
