package ledger

import (
	"time"

	"github.com/erp/tradecore/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest represents a request to open a ledger account
type CreateAccountRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Phone   string `json:"phone" binding:"max=50"`
	Address string `json:"address" binding:"max=500"`
	Remark  string `json:"remark" binding:"max=500"`
}

// UpdateAccountRequest represents a request to change account contact details
type UpdateAccountRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Phone   string `json:"phone" binding:"max=50"`
	Address string `json:"address" binding:"max=500"`
	Remark  string `json:"remark" binding:"max=500"`
}

// AccountListFilter represents filter options for the account list
type AccountListFilter struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search"`
}

// RecordEntryRequest represents a request to append a ledger entry
type RecordEntryRequest struct {
	Type            string          `json:"type" binding:"required,oneof=DEBIT CREDIT debit credit"`
	Amount          decimal.Decimal `json:"amount" binding:"decimal_gt0"`
	Reference       string          `json:"reference" binding:"max=100"`
	Description     string          `json:"description" binding:"max=500"`
	TransactionDate *time.Time      `json:"transaction_date"`
	Author          string          `json:"author" binding:"max=100"`
}

// EditEntryRequest represents a partial update of a ledger entry; nil fields are kept
type EditEntryRequest struct {
	Type            *string          `json:"type" binding:"omitempty,oneof=DEBIT CREDIT debit credit"`
	Amount          *decimal.Decimal `json:"amount"`
	Reference       *string          `json:"reference" binding:"omitempty,max=100"`
	Description     *string          `json:"description" binding:"omitempty,max=500"`
	TransactionDate *time.Time       `json:"transaction_date"`
}

// TransactionListFilter represents pagination for an account's entries
type TransactionListFilter struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// AccountResponse represents a ledger account
type AccountResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Phone        string          `json:"phone,omitempty"`
	Address      string          `json:"address,omitempty"`
	Remark       string          `json:"remark,omitempty"`
	TotalBalance decimal.Decimal `json:"total_balance"`
	Version      int             `json:"version"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// TransactionResponse represents one ledger entry
type TransactionResponse struct {
	ID              uuid.UUID       `json:"id"`
	AccountID       uuid.UUID       `json:"account_id"`
	Sequence        int64           `json:"sequence"`
	Type            string          `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	PreviousBalance decimal.Decimal `json:"previous_balance"`
	NewBalance      decimal.Decimal `json:"new_balance"`
	Reference       string          `json:"reference,omitempty"`
	Description     string          `json:"description,omitempty"`
	TransactionDate time.Time       `json:"transaction_date"`
	Author          string          `json:"author,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// EntryResult is returned by writes: the touched entry and the account balance after commit
type EntryResult struct {
	Transaction    *TransactionResponse `json:"transaction,omitempty"`
	AccountBalance decimal.Decimal      `json:"account_balance"`
	// Recomputed counts later entries whose balances were rewritten
	Recomputed int `json:"recomputed"`
}

// ToAccountResponse converts a domain account to a response DTO
func ToAccountResponse(a *ledger.LedgerAccount) AccountResponse {
	return AccountResponse{
		ID:           a.ID,
		Name:         a.Name,
		Phone:        a.Phone,
		Address:      a.Address,
		Remark:       a.Remark,
		TotalBalance: a.TotalBalance,
		Version:      a.Version,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

// ToTransactionResponse converts a domain entry to a response DTO
func ToTransactionResponse(t *ledger.LedgerTransaction) TransactionResponse {
	return TransactionResponse{
		ID:              t.ID,
		AccountID:       t.AccountID,
		Sequence:        t.Sequence,
		Type:            t.Type.String(),
		Amount:          t.Amount,
		PreviousBalance: t.PreviousBalance,
		NewBalance:      t.NewBalance,
		Reference:       t.Reference,
		Description:     t.Description,
		TransactionDate: t.TransactionDate,
		Author:          t.Author,
		CreatedAt:       t.CreatedAt,
	}
}
