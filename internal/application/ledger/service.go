package ledger

import (
	"context"
	"strings"

	"github.com/erp/tradecore/internal/domain/ledger"
	"github.com/erp/tradecore/internal/domain/shared"
	"github.com/erp/tradecore/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service records and maintains running-balance ledger entries.
// Every write locks the account row first, so concurrent writers on one
// account are serialized.
type Service struct {
	accountRepo     ledger.AccountRepository
	transactionRepo ledger.TransactionRepository
	txScope         TransactionScope
	clock           shared.Clock
	eventPublisher  shared.EventPublisher
	metrics         BusinessMetrics
	logger          *zap.Logger
}

// NewService creates a new ledger Service
func NewService(
	accountRepo ledger.AccountRepository,
	transactionRepo ledger.TransactionRepository,
	txScope TransactionScope,
	clock shared.Clock,
	logger *zap.Logger,
) *Service {
	if clock == nil {
		clock = shared.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		txScope:         txScope,
		clock:           clock,
		metrics:         noopMetrics{},
		logger:          logger,
	}
}

// SetEventPublisher sets the publisher that receives events after commit
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetMetrics sets the business metrics sink
func (s *Service) SetMetrics(m BusinessMetrics) {
	if m != nil {
		s.metrics = m
	}
}

// CreateAccount opens an account with a zero balance
func (s *Service) CreateAccount(ctx context.Context, req CreateAccountRequest) (*AccountResponse, error) {
	account, err := ledger.NewLedgerAccount(req.Name, req.Phone, req.Address, req.Remark)
	if err != nil {
		return nil, err
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}
	s.logger.Info("ledger account created",
		zap.String("account_id", account.ID.String()),
		zap.String("name", account.Name),
	)
	response := ToAccountResponse(account)
	return &response, nil
}

// UpdateAccount changes contact details. The balance is untouched.
func (s *Service) UpdateAccount(ctx context.Context, accountID uuid.UUID, req UpdateAccountRequest) (*AccountResponse, error) {
	var account *ledger.LedgerAccount
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		account, err = repos.AccountRepo().FindByIDForUpdate(ctx, accountID)
		if err != nil {
			return err
		}
		if err := account.UpdateContact(req.Name, req.Phone, req.Address, req.Remark); err != nil {
			return err
		}
		return repos.AccountRepo().Update(ctx, account)
	})
	if err != nil {
		return nil, err
	}
	response := ToAccountResponse(account)
	return &response, nil
}

// GetAccount retrieves an account
func (s *Service) GetAccount(ctx context.Context, accountID uuid.UUID) (*AccountResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	response := ToAccountResponse(account)
	return &response, nil
}

// ListAccounts retrieves accounts with search and pagination
func (s *Service) ListAccounts(ctx context.Context, filter AccountListFilter) ([]AccountResponse, int64, error) {
	accounts, total, err := s.accountRepo.FindAll(ctx, shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Search:   strings.TrimSpace(filter.Search),
		OrderBy:  "name",
		OrderDir: "asc",
	})
	if err != nil {
		return nil, 0, err
	}
	out := make([]AccountResponse, len(accounts))
	for i := range accounts {
		out[i] = ToAccountResponse(&accounts[i])
	}
	return out, total, nil
}

// ListTransactions retrieves an account's entries in sequence order
func (s *Service) ListTransactions(ctx context.Context, accountID uuid.UUID, filter TransactionListFilter) ([]TransactionResponse, int64, error) {
	if _, err := s.accountRepo.FindByID(ctx, accountID); err != nil {
		return nil, 0, err
	}
	entries, total, err := s.transactionRepo.FindByAccountID(ctx, accountID, shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
	})
	if err != nil {
		return nil, 0, err
	}
	out := make([]TransactionResponse, len(entries))
	for i := range entries {
		out[i] = ToTransactionResponse(&entries[i])
	}
	return out, total, nil
}

// Record appends an entry: previous = current balance, new = previous ± amount
func (s *Service) Record(ctx context.Context, accountID uuid.UUID, req RecordEntryRequest) (*EntryResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ledger", "record", telemetry.Attr("account.id", accountID), telemetry.Attr("entry.type", req.Type))
	resp, err := s.record(ctx, accountID, req)
	telemetry.EndSpan(span, err)
	return resp, err
}

func (s *Service) record(ctx context.Context, accountID uuid.UUID, req RecordEntryRequest) (*EntryResult, error) {
	entryType, err := ledger.ParseTransactionType(req.Type)
	if err != nil {
		return nil, err
	}
	input := ledger.EntryInput{
		Type:            entryType,
		Amount:          req.Amount,
		Reference:       req.Reference,
		Description:     req.Description,
		TransactionDate: shared.EffectiveDate(s.clock, req.TransactionDate),
		Author:          strings.TrimSpace(req.Author),
	}

	var (
		account *ledger.LedgerAccount
		entry   *ledger.LedgerTransaction
	)
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		account, err = repos.AccountRepo().FindByIDForUpdate(ctx, accountID)
		if err != nil {
			return err
		}
		entry, err = account.Record(input)
		if err != nil {
			return err
		}
		if err := repos.TransactionRepo().Create(ctx, entry); err != nil {
			return err
		}
		return repos.AccountRepo().Update(ctx, account)
	})
	if err != nil {
		s.logger.Warn("ledger entry rejected",
			zap.String("account_id", accountID.String()),
			zap.String("code", shared.ErrorCode(err)),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("ledger entry recorded",
		zap.String("account_id", account.ID.String()),
		zap.String("transaction_id", entry.ID.String()),
		zap.String("type", entry.Type.String()),
		zap.String("amount", entry.Amount.String()),
		zap.String("new_balance", entry.NewBalance.String()),
	)
	s.metrics.RecordLedgerEntry(ctx, entry.Type.String())
	s.publish(ctx, account)

	resp := ToTransactionResponse(entry)
	return &EntryResult{Transaction: &resp, AccountBalance: account.TotalBalance}, nil
}

// Edit changes an entry and re-runs the running balance over it and every
// later entry of the account.
func (s *Service) Edit(ctx context.Context, transactionID uuid.UUID, req EditEntryRequest) (*EntryResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ledger", "edit", telemetry.Attr("transaction.id", transactionID))
	resp, err := s.edit(ctx, transactionID, req)
	telemetry.EndSpan(span, err)
	return resp, err
}

func (s *Service) edit(ctx context.Context, transactionID uuid.UUID, req EditEntryRequest) (*EntryResult, error) {
	changes, err := toEntryChanges(req)
	if err != nil {
		return nil, err
	}

	var (
		account    *ledger.LedgerAccount
		edited     ledger.LedgerTransaction
		recomputed int
	)
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		target, err := repos.TransactionRepo().FindByID(ctx, transactionID)
		if err != nil {
			return err
		}
		account, err = repos.AccountRepo().FindByIDForUpdate(ctx, target.AccountID)
		if err != nil {
			return err
		}

		// Re-read under the account lock; the first row is the edited entry.
		entries, err := repos.TransactionRepo().FindFromSequence(ctx, account.ID, target.Sequence)
		if err != nil {
			return err
		}
		if len(entries) == 0 || entries[0].ID != transactionID {
			return shared.NewNotFoundError("ledger transaction", transactionID)
		}
		if err := entries[0].Amend(changes); err != nil {
			return err
		}

		opening, err := repos.TransactionRepo().BalanceBefore(ctx, account.ID, target.Sequence)
		if err != nil {
			return err
		}
		closing, changed := ledger.Recompute(opening, entries)

		if err := repos.TransactionRepo().Update(ctx, &entries[0]); err != nil {
			return err
		}
		for _, i := range changed {
			if i == 0 {
				continue
			}
			if err := repos.TransactionRepo().Update(ctx, &entries[i]); err != nil {
				return err
			}
		}
		recomputed = laterChanges(changed)
		edited = entries[0]

		account.SettleBalance(closing)
		return repos.AccountRepo().Update(ctx, account)
	})
	if err != nil {
		s.logger.Warn("ledger edit rejected",
			zap.String("transaction_id", transactionID.String()),
			zap.String("code", shared.ErrorCode(err)),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("ledger entry edited",
		zap.String("account_id", account.ID.String()),
		zap.String("transaction_id", transactionID.String()),
		zap.Int("recomputed", recomputed),
		zap.String("total_balance", account.TotalBalance.String()),
	)
	s.publish(ctx, account)

	resp := ToTransactionResponse(&edited)
	return &EntryResult{Transaction: &resp, AccountBalance: account.TotalBalance, Recomputed: recomputed}, nil
}

// Delete removes an entry and re-runs the running balance from the entry
// that preceded it.
func (s *Service) Delete(ctx context.Context, transactionID uuid.UUID) (*EntryResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ledger", "delete", telemetry.Attr("transaction.id", transactionID))
	resp, err := s.delete(ctx, transactionID)
	telemetry.EndSpan(span, err)
	return resp, err
}

func (s *Service) delete(ctx context.Context, transactionID uuid.UUID) (*EntryResult, error) {
	var (
		account    *ledger.LedgerAccount
		recomputed int
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		target, err := repos.TransactionRepo().FindByID(ctx, transactionID)
		if err != nil {
			return err
		}
		account, err = repos.AccountRepo().FindByIDForUpdate(ctx, target.AccountID)
		if err != nil {
			return err
		}
		if err := repos.TransactionRepo().Delete(ctx, target.ID); err != nil {
			return err
		}

		opening, err := repos.TransactionRepo().BalanceBefore(ctx, account.ID, target.Sequence)
		if err != nil {
			return err
		}
		later, err := repos.TransactionRepo().FindFromSequence(ctx, account.ID, target.Sequence+1)
		if err != nil {
			return err
		}
		closing, changed, err := s.rewrite(ctx, repos.TransactionRepo(), opening, later)
		if err != nil {
			return err
		}
		recomputed = len(changed)

		account.SettleBalance(closing)
		return repos.AccountRepo().Update(ctx, account)
	})
	if err != nil {
		s.logger.Warn("ledger delete rejected",
			zap.String("transaction_id", transactionID.String()),
			zap.String("code", shared.ErrorCode(err)),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("ledger entry deleted",
		zap.String("account_id", account.ID.String()),
		zap.String("transaction_id", transactionID.String()),
		zap.Int("recomputed", recomputed),
		zap.String("total_balance", account.TotalBalance.String()),
	)
	s.publish(ctx, account)

	return &EntryResult{AccountBalance: account.TotalBalance, Recomputed: recomputed}, nil
}

// RebuildBalance recomputes every entry of the account from a zero opening
// balance and repairs the cached total.
func (s *Service) RebuildBalance(ctx context.Context, accountID uuid.UUID) (*EntryResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ledger", "rebuild", telemetry.Attr("account.id", accountID))
	resp, err := s.rebuildBalance(ctx, accountID)
	telemetry.EndSpan(span, err)
	return resp, err
}

func (s *Service) rebuildBalance(ctx context.Context, accountID uuid.UUID) (*EntryResult, error) {
	var (
		account    *ledger.LedgerAccount
		recomputed int
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		account, err = repos.AccountRepo().FindByIDForUpdate(ctx, accountID)
		if err != nil {
			return err
		}
		entries, err := repos.TransactionRepo().FindFromSequence(ctx, accountID, 0)
		if err != nil {
			return err
		}
		closing, changed, err := s.rewrite(ctx, repos.TransactionRepo(), decimal.Zero, entries)
		if err != nil {
			return err
		}
		recomputed = len(changed)
		account.SettleBalance(closing)
		return repos.AccountRepo().Update(ctx, account)
	})
	if err != nil {
		return nil, err
	}

	if recomputed > 0 {
		s.logger.Warn("ledger balance repaired",
			zap.String("account_id", accountID.String()),
			zap.Int("recomputed", recomputed),
			zap.String("total_balance", account.TotalBalance.String()),
		)
	}
	s.publish(ctx, account)

	return &EntryResult{AccountBalance: account.TotalBalance, Recomputed: recomputed}, nil
}

// rewrite recomputes entries from opening and persists the ones that changed
func (s *Service) rewrite(ctx context.Context, repo ledger.TransactionRepository, opening decimal.Decimal, entries []ledger.LedgerTransaction) (decimal.Decimal, []int, error) {
	closing, changed := ledger.Recompute(opening, entries)
	for _, i := range changed {
		if err := repo.Update(ctx, &entries[i]); err != nil {
			return decimal.Zero, nil, err
		}
	}
	return closing, changed, nil
}

func (s *Service) publish(ctx context.Context, account *ledger.LedgerAccount) {
	events := account.PullDomainEvents()
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish ledger events",
			zap.String("account_id", account.ID.String()),
			zap.Error(err),
		)
	}
}

func toEntryChanges(req EditEntryRequest) (ledger.EntryChanges, error) {
	changes := ledger.EntryChanges{
		Amount:          req.Amount,
		Reference:       req.Reference,
		Description:     req.Description,
		TransactionDate: req.TransactionDate,
	}
	if req.Type != nil {
		t, err := ledger.ParseTransactionType(*req.Type)
		if err != nil {
			return changes, err
		}
		changes.Type = &t
	}
	if req.Amount != nil && !req.Amount.IsPositive() {
		return changes, shared.NewValidationError("Amount must be positive")
	}
	return changes, nil
}

// laterChanges counts changed indexes other than the edited entry itself
func laterChanges(changed []int) int {
	n := 0
	for _, i := range changed {
		if i > 0 {
			n++
		}
	}
	return n
}
