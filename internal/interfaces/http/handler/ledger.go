package handler

import (
	ledgerapp "github.com/erp/tradecore/internal/application/ledger"
	"github.com/gin-gonic/gin"
)

// LedgerHandler exposes accounts and their running-balance entries
type LedgerHandler struct {
	BaseHandler
	ledgerService LedgerService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(ledgerService LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// CreateAccount godoc
// @ID           createLedgerAccount
// @Summary      Open a ledger account
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        request body ledgerapp.CreateAccountRequest true "Account"
// @Success      201 {object} APIResponse[ledgerapp.AccountResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /ledger/accounts [post]
func (h *LedgerHandler) CreateAccount(c *gin.Context) {
	var req ledgerapp.CreateAccountRequest
	if !bindJSON(c, &req) {
		return
	}

	account, err := h.ledgerService.CreateAccount(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, account)
}

// UpdateAccount godoc
// @ID           updateLedgerAccount
// @Summary      Update account contact details
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        id path string true "Account ID" format(uuid)
// @Param        request body ledgerapp.UpdateAccountRequest true "Account"
// @Success      200 {object} APIResponse[ledgerapp.AccountResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /ledger/accounts/{id} [put]
func (h *LedgerHandler) UpdateAccount(c *gin.Context) {
	accountID, ok := h.pathUUID(c, "id", "account")
	if !ok {
		return
	}
	var req ledgerapp.UpdateAccountRequest
	if !bindJSON(c, &req) {
		return
	}

	account, err := h.ledgerService.UpdateAccount(c.Request.Context(), accountID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, account)
}

// GetAccount godoc
// @ID           getLedgerAccount
// @Summary      Get an account and its balance
// @Tags         ledger
// @Produce      json
// @Param        id path string true "Account ID" format(uuid)
// @Success      200 {object} APIResponse[ledgerapp.AccountResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /ledger/accounts/{id} [get]
func (h *LedgerHandler) GetAccount(c *gin.Context) {
	accountID, ok := h.pathUUID(c, "id", "account")
	if !ok {
		return
	}

	account, err := h.ledgerService.GetAccount(c.Request.Context(), accountID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, account)
}

// ListAccounts godoc
// @ID           listLedgerAccounts
// @Summary      List ledger accounts
// @Tags         ledger
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Param        search query string false "Name contains"
// @Success      200 {object} ListResponse[ledgerapp.AccountResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /ledger/accounts [get]
func (h *LedgerHandler) ListAccounts(c *gin.Context) {
	var filter ledgerapp.AccountListFilter
	if !bindQuery(c, &filter) {
		return
	}
	filter.Page, filter.PageSize = pageOf(filter.Page, filter.PageSize)

	accounts, total, err := h.ledgerService.ListAccounts(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, accounts, total, filter.Page, filter.PageSize)
}

// RecordEntry godoc
// @ID           recordLedgerEntry
// @Summary      Append a debit or credit to an account
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Makes the request safe to resend"
// @Param        id path string true "Account ID" format(uuid)
// @Param        request body ledgerapp.RecordEntryRequest true "Entry"
// @Success      201 {object} APIResponse[ledgerapp.EntryResult]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /ledger/accounts/{id}/transactions [post]
func (h *LedgerHandler) RecordEntry(c *gin.Context) {
	accountID, ok := h.pathUUID(c, "id", "account")
	if !ok {
		return
	}
	var req ledgerapp.RecordEntryRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.ledgerService.Record(c.Request.Context(), accountID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// ListTransactions godoc
// @ID           listLedgerTransactions
// @Summary      List an account's entries in sequence order
// @Tags         ledger
// @Produce      json
// @Param        id path string true "Account ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} ListResponse[ledgerapp.TransactionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /ledger/accounts/{id}/transactions [get]
func (h *LedgerHandler) ListTransactions(c *gin.Context) {
	accountID, ok := h.pathUUID(c, "id", "account")
	if !ok {
		return
	}
	var filter ledgerapp.TransactionListFilter
	if !bindQuery(c, &filter) {
		return
	}
	filter.Page, filter.PageSize = pageOf(filter.Page, filter.PageSize)

	entries, total, err := h.ledgerService.ListTransactions(c.Request.Context(), accountID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, entries, total, filter.Page, filter.PageSize)
}

// EditEntry godoc
// @ID           editLedgerEntry
// @Summary      Edit an entry and recompute every later balance
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        id path string true "Transaction ID" format(uuid)
// @Param        request body ledgerapp.EditEntryRequest true "Changed fields"
// @Success      200 {object} APIResponse[ledgerapp.EntryResult]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /ledger/transactions/{id} [put]
func (h *LedgerHandler) EditEntry(c *gin.Context) {
	transactionID, ok := h.pathUUID(c, "id", "transaction")
	if !ok {
		return
	}
	var req ledgerapp.EditEntryRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.ledgerService.Edit(c.Request.Context(), transactionID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// DeleteEntry godoc
// @ID           deleteLedgerEntry
// @Summary      Delete an entry and recompute every later balance
// @Tags         ledger
// @Produce      json
// @Param        id path string true "Transaction ID" format(uuid)
// @Success      200 {object} APIResponse[ledgerapp.EntryResult]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /ledger/transactions/{id} [delete]
func (h *LedgerHandler) DeleteEntry(c *gin.Context) {
	transactionID, ok := h.pathUUID(c, "id", "transaction")
	if !ok {
		return
	}

	result, err := h.ledgerService.Delete(c.Request.Context(), transactionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// RebuildBalance godoc
// @ID           rebuildLedgerBalance
// @Summary      Recompute every balance of an account from zero
// @Tags         ledger
// @Produce      json
// @Param        id path string true "Account ID" format(uuid)
// @Success      200 {object} APIResponse[ledgerapp.EntryResult]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /ledger/accounts/{id}/rebuild [post]
func (h *LedgerHandler) RebuildBalance(c *gin.Context) {
	accountID, ok := h.pathUUID(c, "id", "account")
	if !ok {
		return
	}

	result, err := h.ledgerService.RebuildBalance(c.Request.Context(), accountID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
