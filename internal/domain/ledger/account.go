// Package ledger models running-balance accounts for counterparties.
// A positive balance means the counterparty owes the business.
package ledger

import (
	"strings"
	"time"

	"github.com/erp/tradecore/internal/domain/shared"
	"github.com/erp/tradecore/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// LedgerAccount is a named counterparty with a cached running balance.
// TotalBalance always equals the NewBalance of the entry with the highest
// Sequence, or zero when the account has no entries.
type LedgerAccount struct {
	shared.BaseAggregateRoot
	Name         string
	Phone        string
	Address      string
	Remark       string
	TotalBalance decimal.Decimal
	LastSequence int64
}

// NewLedgerAccount creates an account with a zero balance
func NewLedgerAccount(name, phone, address, remark string) (*LedgerAccount, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("Account name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewValidationError("Account name cannot exceed 200 characters")
	}
	return &LedgerAccount{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Phone:             strings.TrimSpace(phone),
		Address:           strings.TrimSpace(address),
		Remark:            remark,
		TotalBalance:      decimal.Zero,
	}, nil
}

// UpdateContact changes the descriptive fields
func (a *LedgerAccount) UpdateContact(name, phone, address, remark string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("Account name cannot be empty")
	}
	a.Name = name
	a.Phone = strings.TrimSpace(phone)
	a.Address = strings.TrimSpace(address)
	a.Remark = remark
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return nil
}

// EntryInput carries the caller-supplied fields of a ledger entry
type EntryInput struct {
	Type            TransactionType
	Amount          decimal.Decimal
	Reference       string
	Description     string
	TransactionDate time.Time
	Author          string
}

func (in EntryInput) validate() error {
	if !in.Type.IsValid() {
		return shared.NewValidationError("Unknown transaction type %q", in.Type)
	}
	if !in.Amount.IsPositive() {
		return shared.NewValidationError("Amount must be positive")
	}
	if in.TransactionDate.IsZero() {
		return shared.NewValidationError("Transaction date is required")
	}
	return nil
}

// Record appends an entry: previous = current total, new = previous ± amount.
// Must run while the caller holds the account row lock.
func (a *LedgerAccount) Record(in EntryInput) (*LedgerTransaction, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	amount := valueobject.RoundMoney(in.Amount)
	previous := a.TotalBalance

	entry := &LedgerTransaction{
		BaseEntity:      shared.NewBaseEntity(),
		AccountID:       a.ID,
		Sequence:        a.LastSequence + 1,
		Type:            in.Type,
		Amount:          amount,
		PreviousBalance: previous,
		NewBalance:      in.Type.Apply(previous, amount),
		Reference:       strings.TrimSpace(in.Reference),
		Description:     in.Description,
		TransactionDate: in.TransactionDate,
		Author:          in.Author,
	}

	a.TotalBalance = entry.NewBalance
	a.LastSequence = entry.Sequence
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	a.AddDomainEvent(NewLedgerEntryRecordedEvent(a, entry))

	return entry, nil
}

// SettleBalance sets the cached balance after a recompute. closing is the
// NewBalance of the last remaining entry, or zero when none remain.
func (a *LedgerAccount) SettleBalance(closing decimal.Decimal) {
	old := a.TotalBalance
	a.TotalBalance = closing
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	if !old.Equal(closing) {
		a.AddDomainEvent(NewLedgerBalanceRecomputedEvent(a, old))
	}
}
