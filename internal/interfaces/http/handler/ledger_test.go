package handler

import (
	"net/http"
	"testing"

	ledgerapp "github.com/erp/tradecore/internal/application/ledger"
	"github.com/erp/tradecore/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupLedgerRouter(svc *MockLedgerService) *gin.Engine {
	engine := newTestEngine()
	h := NewLedgerHandler(svc)
	engine.POST("/ledger/accounts", h.CreateAccount)
	engine.GET("/ledger/accounts", h.ListAccounts)
	engine.GET("/ledger/accounts/:id", h.GetAccount)
	engine.PUT("/ledger/accounts/:id", h.UpdateAccount)
	engine.POST("/ledger/accounts/:id/transactions", h.RecordEntry)
	engine.GET("/ledger/accounts/:id/transactions", h.ListTransactions)
	engine.POST("/ledger/accounts/:id/rebuild", h.RebuildBalance)
	engine.PUT("/ledger/transactions/:id", h.EditEntry)
	engine.DELETE("/ledger/transactions/:id", h.DeleteEntry)
	return engine
}

func TestLedgerHandler_CreateAccount(t *testing.T) {
	svc := new(MockLedgerService)
	engine := setupLedgerRouter(svc)
	svc.On("CreateAccount", mock.Anything, ledgerapp.CreateAccountRequest{Name: "Acme"}).
		Return(&ledgerapp.AccountResponse{ID: uuid.New(), Name: "Acme"}, nil)

	w := doJSON(engine, http.MethodPost, "/ledger/accounts", map[string]string{"name": "Acme"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(engine, http.MethodPost, "/ledger/accounts", map[string]string{"phone": "123"})
	assertErrorCode(t, w, http.StatusBadRequest, shared.CodeValidation)

	svc.AssertExpectations(t)
}

func TestLedgerHandler_RecordEntry(t *testing.T) {
	accountID := uuid.New()

	t.Run("records", func(t *testing.T) {
		svc := new(MockLedgerService)
		engine := setupLedgerRouter(svc)
		svc.On("Record", mock.Anything, accountID, mock.MatchedBy(func(req ledgerapp.RecordEntryRequest) bool {
			return req.Type == "DEBIT" && req.Amount.Equal(decimal.NewFromInt(100))
		})).Return(&ledgerapp.EntryResult{
			Transaction:    &ledgerapp.TransactionResponse{AccountID: accountID, Sequence: 1, NewBalance: decimal.NewFromInt(100)},
			AccountBalance: decimal.NewFromInt(100),
		}, nil)

		w := doJSON(engine, http.MethodPost, "/ledger/accounts/"+accountID.String()+"/transactions", map[string]any{
			"type": "DEBIT", "amount": "100",
		})

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var got ledgerapp.EntryResult
		decodeResponse(t, w, &got)
		assert.True(t, got.AccountBalance.Equal(decimal.NewFromInt(100)))
		require.NotNil(t, got.Transaction)
		assert.Equal(t, int64(1), got.Transaction.Sequence)
		svc.AssertExpectations(t)
	})

	tests := []struct {
		name string
		body map[string]any
	}{
		{"zero amount", map[string]any{"type": "DEBIT", "amount": "0"}},
		{"negative amount", map[string]any{"type": "CREDIT", "amount": "-5"}},
		{"unknown type", map[string]any{"type": "REFUND", "amount": "5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockLedgerService)
			engine := setupLedgerRouter(svc)

			w := doJSON(engine, http.MethodPost, "/ledger/accounts/"+accountID.String()+"/transactions", tt.body)

			assertErrorCode(t, w, http.StatusBadRequest, shared.CodeValidation)
			svc.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything)
		})
	}

	t.Run("unknown account", func(t *testing.T) {
		svc := new(MockLedgerService)
		engine := setupLedgerRouter(svc)
		svc.On("Record", mock.Anything, accountID, mock.Anything).
			Return(nil, shared.NewNotFoundError("Ledger account", accountID))

		w := doJSON(engine, http.MethodPost, "/ledger/accounts/"+accountID.String()+"/transactions", map[string]any{
			"type": "CREDIT", "amount": "5",
		})

		assertErrorCode(t, w, http.StatusNotFound, shared.CodeNotFound)
	})
}

func TestLedgerHandler_EditEntry(t *testing.T) {
	svc := new(MockLedgerService)
	engine := setupLedgerRouter(svc)
	txID := uuid.New()
	svc.On("Edit", mock.Anything, txID, mock.MatchedBy(func(req ledgerapp.EditEntryRequest) bool {
		return req.Amount != nil && req.Amount.Equal(decimal.NewFromInt(80)) && req.Type == nil
	})).Return(&ledgerapp.EntryResult{AccountBalance: decimal.NewFromInt(80), Recomputed: 3}, nil)

	w := doJSON(engine, http.MethodPut, "/ledger/transactions/"+txID.String(), map[string]any{"amount": "80"})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var got ledgerapp.EntryResult
	decodeResponse(t, w, &got)
	assert.Equal(t, 3, got.Recomputed)
	svc.AssertExpectations(t)
}

func TestLedgerHandler_DeleteEntry(t *testing.T) {
	svc := new(MockLedgerService)
	engine := setupLedgerRouter(svc)
	txID := uuid.New()
	svc.On("Delete", mock.Anything, txID).Return(&ledgerapp.EntryResult{AccountBalance: decimal.Zero, Recomputed: 1}, nil)

	w := doJSON(engine, http.MethodDelete, "/ledger/transactions/"+txID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(engine, http.MethodDelete, "/ledger/transactions/abc", nil)
	assertErrorCode(t, w, http.StatusBadRequest, "BAD_REQUEST")

	svc.AssertExpectations(t)
}

func TestLedgerHandler_RebuildBalance(t *testing.T) {
	svc := new(MockLedgerService)
	engine := setupLedgerRouter(svc)
	accountID := uuid.New()
	svc.On("RebuildBalance", mock.Anything, accountID).
		Return(&ledgerapp.EntryResult{AccountBalance: decimal.NewFromInt(70), Recomputed: 4}, nil)

	w := doJSON(engine, http.MethodPost, "/ledger/accounts/"+accountID.String()+"/rebuild", nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var got ledgerapp.EntryResult
	decodeResponse(t, w, &got)
	assert.True(t, got.AccountBalance.Equal(decimal.NewFromInt(70)))
	assert.Nil(t, got.Transaction)
}

func TestLedgerHandler_ListTransactions(t *testing.T) {
	svc := new(MockLedgerService)
	engine := setupLedgerRouter(svc)
	accountID := uuid.New()
	svc.On("ListTransactions", mock.Anything, accountID, ledgerapp.TransactionListFilter{Page: 2, PageSize: 10}).
		Return([]ledgerapp.TransactionResponse{{Sequence: 11}}, int64(11), nil)

	w := doJSON(engine, http.MethodGet, "/ledger/accounts/"+accountID.String()+"/transactions?page=2&page_size=10", nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decodeResponse(t, w, nil)
	assert.Equal(t, 2, resp.Meta.TotalPages)
	svc.AssertExpectations(t)
}

func TestLedgerHandler_AccountReads(t *testing.T) {
	svc := new(MockLedgerService)
	engine := setupLedgerRouter(svc)
	id := uuid.New()
	svc.On("GetAccount", mock.Anything, id).Return(&ledgerapp.AccountResponse{ID: id, TotalBalance: decimal.NewFromInt(5)}, nil)
	svc.On("ListAccounts", mock.Anything, ledgerapp.AccountListFilter{Page: 1, PageSize: 20, Search: "ac"}).
		Return([]ledgerapp.AccountResponse{{ID: id}}, int64(1), nil)
	svc.On("UpdateAccount", mock.Anything, id, ledgerapp.UpdateAccountRequest{Name: "Acme Ltd"}).
		Return(&ledgerapp.AccountResponse{ID: id, Name: "Acme Ltd"}, nil)

	w := doJSON(engine, http.MethodGet, "/ledger/accounts/"+id.String(), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(engine, http.MethodGet, "/ledger/accounts?search=ac", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(engine, http.MethodPut, "/ledger/accounts/"+id.String(), map[string]string{"name": "Acme Ltd"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	svc.AssertExpectations(t)
}
