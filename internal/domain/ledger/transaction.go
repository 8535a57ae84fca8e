package ledger

import (
	"strings"
	"time"

	"github.com/erp/tradecore/internal/domain/shared"
	"github.com/erp/tradecore/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType is the direction of a ledger entry
type TransactionType string

const (
	// TransactionTypeDebit means the counterparty owes more
	TransactionTypeDebit TransactionType = "DEBIT"
	// TransactionTypeCredit means the counterparty owes less
	TransactionTypeCredit TransactionType = "CREDIT"
)

// String returns the string representation of TransactionType
func (t TransactionType) String() string {
	return string(t)
}

// IsValid returns true if the transaction type is valid
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeDebit || t == TransactionTypeCredit
}

// Apply returns previous + amount for a debit and previous - amount for a credit
func (t TransactionType) Apply(previous, amount decimal.Decimal) decimal.Decimal {
	if t == TransactionTypeCredit {
		return previous.Sub(amount)
	}
	return previous.Add(amount)
}

// ParseTransactionType accepts any letter case
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", shared.NewValidationError("Unknown transaction type %q", s)
	}
	return t, nil
}

// LedgerTransaction is one entry on an account. Sequence orders entries by
// creation; TransactionDate is informational and may be backdated.
type LedgerTransaction struct {
	shared.BaseEntity
	AccountID       uuid.UUID
	Sequence        int64
	Type            TransactionType
	Amount          decimal.Decimal
	PreviousBalance decimal.Decimal
	NewBalance      decimal.Decimal
	Reference       string
	Description     string
	TransactionDate time.Time
	Author          string
}

// Consistent reports whether NewBalance follows from PreviousBalance
func (t *LedgerTransaction) Consistent() bool {
	return t.NewBalance.Equal(t.Type.Apply(t.PreviousBalance, t.Amount))
}

// EntryChanges lists the editable fields; nil leaves a field unchanged
type EntryChanges struct {
	Type            *TransactionType
	Amount          *decimal.Decimal
	Reference       *string
	Description     *string
	TransactionDate *time.Time
}

// Amend applies changes to the entry. Balances are left for Recompute.
func (t *LedgerTransaction) Amend(c EntryChanges) error {
	if c.Type != nil {
		if !c.Type.IsValid() {
			return shared.NewValidationError("Unknown transaction type %q", *c.Type)
		}
		t.Type = *c.Type
	}
	if c.Amount != nil {
		if !c.Amount.IsPositive() {
			return shared.NewValidationError("Amount must be positive")
		}
		t.Amount = valueobject.RoundMoney(*c.Amount)
	}
	if c.Reference != nil {
		t.Reference = strings.TrimSpace(*c.Reference)
	}
	if c.Description != nil {
		t.Description = *c.Description
	}
	if c.TransactionDate != nil {
		if c.TransactionDate.IsZero() {
			return shared.NewValidationError("Transaction date is required")
		}
		t.TransactionDate = *c.TransactionDate
	}
	t.UpdatedAt = time.Now()
	return nil
}

// Recompute re-runs the running balance over entries, which must be ordered
// by Sequence, starting from opening. It rewrites PreviousBalance and
// NewBalance in place and returns the closing balance together with the
// indexes of entries whose balances changed.
func Recompute(opening decimal.Decimal, entries []LedgerTransaction) (closing decimal.Decimal, changed []int) {
	balance := opening
	for i := range entries {
		e := &entries[i]
		next := e.Type.Apply(balance, e.Amount)
		if !e.PreviousBalance.Equal(balance) || !e.NewBalance.Equal(next) {
			e.PreviousBalance = balance
			e.NewBalance = next
			changed = append(changed, i)
		}
		balance = next
	}
	return balance, changed
}
