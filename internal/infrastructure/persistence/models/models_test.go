package models

import (
	"testing"
	"time"

	"github.com/erp/tradecore/internal/domain/ledger"
	"github.com/erp/tradecore/internal/domain/shared/strategy"
	"github.com/erp/tradecore/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderModel_KeepsSnapshotAndLineOrder(t *testing.T) {
	snapA, _ := trade.NewProductSnapshot(uuid.New(), "A", "Apple")
	snapB, _ := trade.NewProductSnapshot(uuid.New(), "B", "Banana")
	l1, err := trade.NewOrderLine(1, snapA, decimal.NewFromInt(2), decimal.NewFromInt(3), strategy.PriceKindTier, decimal.Zero)
	require.NoError(t, err)
	l2, err := trade.NewOrderLine(2, snapB, decimal.NewFromInt(1), decimal.NewFromInt(5), strategy.PriceKindBase, decimal.Zero)
	require.NoError(t, err)
	order, err := trade.NewOrderTransaction("c", time.Now(), "cash", decimal.Zero, []trade.OrderLine{*l1, *l2})
	require.NoError(t, err)

	m := OrderModelFromDomain(order)
	require.Len(t, m.Lines, 2)
	assert.Equal(t, order.ID, m.Lines[0].OrderID)
	assert.Equal(t, "Apple", m.Lines[0].ProductName)

	back := m.ToDomain()
	assert.Equal(t, order.OrderNumber, back.OrderNumber)
	assert.Equal(t, order.Version, back.Version)
	assert.Equal(t, strategy.PriceKindTier, back.Lines[0].PriceKind)
	assert.Equal(t, "B", back.Lines[1].Product.ProductCode)
	assert.True(t, back.TotalsConsistent())
}

func TestLedgerModels_CarryBalancesAndSequence(t *testing.T) {
	account, err := ledger.NewLedgerAccount("Acme", "1", "", "")
	require.NoError(t, err)
	entry, err := account.Record(ledger.EntryInput{
		Type:            ledger.TransactionTypeDebit,
		Amount:          decimal.NewFromInt(40),
		TransactionDate: time.Now(),
	})
	require.NoError(t, err)

	am := LedgerAccountModelFromDomain(account)
	assert.Equal(t, int64(1), am.LastSequence)
	assert.True(t, am.ToDomain().TotalBalance.Equal(decimal.NewFromInt(40)))

	tm := LedgerTransactionModelFromDomain(entry)
	got := tm.ToDomain()
	assert.Equal(t, entry.ID, got.ID)
	assert.Equal(t, int64(1), got.Sequence)
	assert.True(t, got.Consistent())
}
