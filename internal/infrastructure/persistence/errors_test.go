package persistence

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/erp/tradecore/internal/domain/shared"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestWrapError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		code      string
		retryable bool
	}{
		{"record not found", gorm.ErrRecordNotFound, shared.CodeNotFound, false},
		{"unique violation", &pgconn.PgError{Code: "23505", ConstraintName: "products_code_key"}, shared.CodeAlreadyExists, false},
		{"serialization failure", &pgconn.PgError{Code: "40001"}, shared.CodePersistence, true},
		{"deadlock", fmt.Errorf("exec: %w", &pgconn.PgError{Code: "40P01"}), shared.CodePersistence, true},
		{"connection failure", &pgconn.PgError{Code: "08006"}, shared.CodePersistence, true},
		{"check violation", &pgconn.PgError{Code: "23514"}, shared.CodePersistence, false},
		{"deadline exceeded", context.DeadlineExceeded, shared.CodePersistence, true},
		{"plain error", errors.New("boom"), shared.CodePersistence, false},
		{"domain error passes through", shared.ErrInsufficientStock, shared.CodeInsufficientStock, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WrapError("save", tt.err)
			assert.Equal(t, tt.code, shared.ErrorCode(err))
			assert.Equal(t, tt.retryable, shared.IsRetryable(err))
		})
	}

	assert.NoError(t, WrapError("save", nil))
}

func TestWrapError_KeepsCause(t *testing.T) {
	cause := &pgconn.PgError{Code: "40001"}
	err := WrapError("lock stock", cause)

	var pgErr *pgconn.PgError
	assert.True(t, errors.As(err, &pgErr))
	assert.Contains(t, err.Error(), "lock stock")
}
