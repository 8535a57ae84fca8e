package ledger

import (
	"context"

	"github.com/erp/tradecore/internal/domain/ledger"
)

// TransactionScope runs ledger writes inside one database transaction
type TransactionScope interface {
	// Execute runs fn within a database transaction.
	// If fn returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories are ledger repositories bound to one transaction.
// The account row lock taken by AccountRepo().FindByIDForUpdate serializes
// every write to that account's entries.
type TransactionalRepositories interface {
	AccountRepo() ledger.AccountRepository
	TransactionRepo() ledger.TransactionRepository
}

// NoOpTransactionScope runs fn against plain repositories. Useful for tests.
type NoOpTransactionScope struct {
	accountRepo     ledger.AccountRepository
	transactionRepo ledger.TransactionRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(accountRepo ledger.AccountRepository, transactionRepo ledger.TransactionRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{accountRepo: accountRepo, transactionRepo: transactionRepo}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// AccountRepo returns the account repository.
func (s *NoOpTransactionScope) AccountRepo() ledger.AccountRepository { return s.accountRepo }

// TransactionRepo returns the ledger transaction repository.
func (s *NoOpTransactionScope) TransactionRepo() ledger.TransactionRepository {
	return s.transactionRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
