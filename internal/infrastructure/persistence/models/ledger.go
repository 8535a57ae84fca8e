package models

import (
	"time"

	"github.com/erp/tradecore/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerAccountModel is the persistence model for the LedgerAccount aggregate root.
type LedgerAccountModel struct {
	AggregateModel
	Name         string          `gorm:"type:varchar(200);not null;index"`
	Phone        string          `gorm:"type:varchar(50)"`
	Address      string          `gorm:"type:varchar(500)"`
	Remark       string          `gorm:"type:varchar(500)"`
	TotalBalance decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	LastSequence int64           `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (LedgerAccountModel) TableName() string {
	return "ledger_accounts"
}

// ToDomain converts the persistence model to a domain LedgerAccount.
func (m *LedgerAccountModel) ToDomain() *ledger.LedgerAccount {
	return &ledger.LedgerAccount{
		BaseAggregateRoot: m.AggregateModel.root(),
		Name:              m.Name,
		Phone:             m.Phone,
		Address:           m.Address,
		Remark:            m.Remark,
		TotalBalance:      m.TotalBalance,
		LastSequence:      m.LastSequence,
	}
}

// LedgerAccountModelFromDomain creates a persistence model from a domain LedgerAccount.
func LedgerAccountModelFromDomain(a *ledger.LedgerAccount) *LedgerAccountModel {
	m := &LedgerAccountModel{
		Name:         a.Name,
		Phone:        a.Phone,
		Address:      a.Address,
		Remark:       a.Remark,
		TotalBalance: a.TotalBalance,
		LastSequence: a.LastSequence,
	}
	m.AggregateModel = aggregateModelOf(a.BaseAggregateRoot)
	return m
}

// LedgerTransactionModel is the persistence model for a ledger entry.
// (account_id, sequence) is unique.
type LedgerTransactionModel struct {
	BaseModel
	AccountID       uuid.UUID              `gorm:"type:uuid;not null;uniqueIndex:idx_ledger_tx_account_seq,priority:1"`
	Sequence        int64                  `gorm:"not null;uniqueIndex:idx_ledger_tx_account_seq,priority:2"`
	Type            ledger.TransactionType `gorm:"type:varchar(10);not null"`
	Amount          decimal.Decimal        `gorm:"type:decimal(18,2);not null"`
	PreviousBalance decimal.Decimal        `gorm:"type:decimal(18,2);not null"`
	NewBalance      decimal.Decimal        `gorm:"type:decimal(18,2);not null"`
	Reference       string                 `gorm:"type:varchar(100)"`
	Description     string                 `gorm:"type:varchar(500)"`
	TransactionDate time.Time              `gorm:"not null"`
	Author          string                 `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (LedgerTransactionModel) TableName() string {
	return "ledger_transactions"
}

// ToDomain converts the persistence model to a domain LedgerTransaction.
func (m *LedgerTransactionModel) ToDomain() ledger.LedgerTransaction {
	return ledger.LedgerTransaction{
		BaseEntity:      m.BaseModel.entity(),
		AccountID:       m.AccountID,
		Sequence:        m.Sequence,
		Type:            m.Type,
		Amount:          m.Amount,
		PreviousBalance: m.PreviousBalance,
		NewBalance:      m.NewBalance,
		Reference:       m.Reference,
		Description:     m.Description,
		TransactionDate: m.TransactionDate,
		Author:          m.Author,
	}
}

// LedgerTransactionModelFromDomain creates a persistence model from a domain LedgerTransaction.
func LedgerTransactionModelFromDomain(t *ledger.LedgerTransaction) *LedgerTransactionModel {
	m := &LedgerTransactionModel{
		AccountID:       t.AccountID,
		Sequence:        t.Sequence,
		Type:            t.Type,
		Amount:          t.Amount,
		PreviousBalance: t.PreviousBalance,
		NewBalance:      t.NewBalance,
		Reference:       t.Reference,
		Description:     t.Description,
		TransactionDate: t.TransactionDate,
		Author:          t.Author,
	}
	m.BaseModel = baseModelOf(t.BaseEntity)
	return m
}
