package ledger

import (
	"github.com/erp/tradecore/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AggregateTypeLedgerAccount is the aggregate type for ledger events
const AggregateTypeLedgerAccount = "LedgerAccount"

// Event type constants
const (
	EventTypeLedgerEntryRecorded     = "LedgerEntryRecorded"
	EventTypeLedgerBalanceRecomputed = "LedgerBalanceRecomputed"
)

// LedgerEntryRecordedEvent is raised when a new entry is appended
type LedgerEntryRecordedEvent struct {
	shared.BaseDomainEvent
	AccountID       uuid.UUID       `json:"account_id"`
	TransactionID   uuid.UUID       `json:"transaction_id"`
	Type            TransactionType `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	PreviousBalance decimal.Decimal `json:"previous_balance"`
	NewBalance      decimal.Decimal `json:"new_balance"`
}

// NewLedgerEntryRecordedEvent creates a new LedgerEntryRecordedEvent
func NewLedgerEntryRecordedEvent(a *LedgerAccount, t *LedgerTransaction) *LedgerEntryRecordedEvent {
	return &LedgerEntryRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLedgerEntryRecorded, AggregateTypeLedgerAccount, a.ID),
		AccountID:       a.ID,
		TransactionID:   t.ID,
		Type:            t.Type,
		Amount:          t.Amount,
		PreviousBalance: t.PreviousBalance,
		NewBalance:      t.NewBalance,
	}
}

// LedgerBalanceRecomputedEvent is raised when an edit or delete moves the cached balance
type LedgerBalanceRecomputedEvent struct {
	shared.BaseDomainEvent
	AccountID  uuid.UUID       `json:"account_id"`
	OldBalance decimal.Decimal `json:"old_balance"`
	NewBalance decimal.Decimal `json:"new_balance"`
}

// NewLedgerBalanceRecomputedEvent creates a new LedgerBalanceRecomputedEvent
func NewLedgerBalanceRecomputedEvent(a *LedgerAccount, old decimal.Decimal) *LedgerBalanceRecomputedEvent {
	return &LedgerBalanceRecomputedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLedgerBalanceRecomputed, AggregateTypeLedgerAccount, a.ID),
		AccountID:       a.ID,
		OldBalance:      old,
		NewBalance:      a.TotalBalance,
	}
}
