package persistence

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/erp/tradecore/internal/domain/shared"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes the repositories react to
const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgCheckViolation       = "23514"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
	pgConnectionExceptions = "08"
)

// WrapError converts a storage error into a DomainError.
//
// Domain errors pass through untouched. gorm.ErrRecordNotFound becomes
// NOT_FOUND, unique violations become ALREADY_EXISTS, and everything else is
// a PERSISTENCE_ERROR marked retryable when the database reported a
// serialization failure, a deadlock or a broken connection.
func WrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if shared.IsDomainError(err) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgUniqueViolation:
			return shared.NewDomainError(shared.CodeAlreadyExists,
				fmt.Sprintf("%s: duplicate value violates %s", op, pgErr.ConstraintName))
		case pgErr.Code == pgForeignKeyViolation, pgErr.Code == pgCheckViolation:
			return shared.NewPersistenceError(op, err, false)
		case pgErr.Code == pgSerializationFailure,
			pgErr.Code == pgDeadlockDetected,
			pgErr.Code == pgLockNotAvailable,
			len(pgErr.Code) == 5 && pgErr.Code[:2] == pgConnectionExceptions:
			return shared.NewPersistenceError(op, err, true)
		}
		return shared.NewPersistenceError(op, err, false)
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, context.DeadlineExceeded) || pgconn.SafeToRetry(err) {
		return shared.NewPersistenceError(op, err, true)
	}
	return shared.NewPersistenceError(op, err, false)
}

// notFound maps a missing row to a NOT_FOUND error naming the entity
func notFound(entity string, id any, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.NewNotFoundError(entity, id)
	}
	return WrapError("find "+entity, err)
}
