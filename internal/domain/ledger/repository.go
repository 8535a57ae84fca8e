package ledger

import (
	"context"

	"github.com/erp/tradecore/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountRepository defines the interface for ledger account persistence
type AccountRepository interface {
	// FindByID finds an account without locking
	FindByID(ctx context.Context, id uuid.UUID) (*LedgerAccount, error)

	// FindByIDForUpdate finds an account and locks its row until the transaction ends
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*LedgerAccount, error)

	// FindAll lists accounts matching the filter and returns the total count
	FindAll(ctx context.Context, filter shared.Filter) ([]LedgerAccount, int64, error)

	// Create inserts a new account
	Create(ctx context.Context, account *LedgerAccount) error

	// Update persists balance, sequence and contact fields
	Update(ctx context.Context, account *LedgerAccount) error
}

// TransactionRepository defines the interface for ledger entry persistence
type TransactionRepository interface {
	// FindByID finds an entry by ID
	FindByID(ctx context.Context, id uuid.UUID) (*LedgerTransaction, error)

	// FindByAccountID lists entries ordered by sequence ascending
	FindByAccountID(ctx context.Context, accountID uuid.UUID, filter shared.Filter) ([]LedgerTransaction, int64, error)

	// FindFromSequence returns every entry with sequence >= fromSequence, ordered by sequence
	FindFromSequence(ctx context.Context, accountID uuid.UUID, fromSequence int64) ([]LedgerTransaction, error)

	// BalanceBefore returns the NewBalance of the last entry with sequence < sequence,
	// or zero when there is none
	BalanceBefore(ctx context.Context, accountID uuid.UUID, sequence int64) (decimal.Decimal, error)

	// Create inserts an entry
	Create(ctx context.Context, entry *LedgerTransaction) error

	// Update persists an amended entry including its balances
	Update(ctx context.Context, entry *LedgerTransaction) error

	// Delete removes an entry
	Delete(ctx context.Context, id uuid.UUID) error
}
