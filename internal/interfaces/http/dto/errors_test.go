package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/erp/tradecore/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{shared.CodeValidation, http.StatusBadRequest},
		{shared.CodeNotFound, http.StatusNotFound},
		{shared.CodeInsufficientStock, http.StatusUnprocessableEntity},
		{shared.CodeInvalidStateTransition, http.StatusUnprocessableEntity},
		{shared.CodeDuplicateRequest, http.StatusConflict},
		{shared.CodeConcurrencyConflict, http.StatusConflict},
		{shared.CodeAlreadyExists, http.StatusConflict},
		{shared.CodePersistence, http.StatusInternalServerError},
		{ErrCodeBadRequest, http.StatusBadRequest},
		{ErrCodeRequestTooLarge, http.StatusRequestEntityTooLarge},
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"validation", shared.NewValidationError("bad"), http.StatusBadRequest},
		{"wrapped not found", fmt.Errorf("load: %w", shared.NewNotFoundError("Order", "x")), http.StatusNotFound},
		{"persistence", shared.NewPersistenceError("save", errors.New("disk"), false), http.StatusInternalServerError},
		{"retryable persistence", shared.NewPersistenceError("save", errors.New("serialization"), true), http.StatusServiceUnavailable},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusForError(tt.err))
		})
	}
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]int{1, 2}, 41, 2, 20)
	require.NotNil(t, resp.Meta)
	assert.True(t, resp.Success)
	assert.Equal(t, 3, resp.Meta.TotalPages)
	assert.Equal(t, 2, resp.Meta.Page)

	resp = NewSuccessResponseWithMeta(nil, 5, 0, 0)
	assert.Equal(t, 1, resp.Meta.Page)
	assert.Equal(t, DefaultPageSize, resp.Meta.PageSize)
	assert.Equal(t, 1, resp.Meta.TotalPages)
}

func TestNewErrorResponse_JSON(t *testing.T) {
	resp := NewValidationErrorResponse("Request validation failed", "req-1", []ValidationDetail{
		{Field: "amount", Message: "Must be greater than zero"},
	})

	body, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, false, decoded["success"])
	assert.NotContains(t, decoded, "data")

	errObj := decoded["error"].(map[string]any)
	assert.Equal(t, "VALIDATION_ERROR", errObj["code"])
	assert.Equal(t, "req-1", errObj["request_id"])
	assert.Len(t, errObj["details"], 1)
}
