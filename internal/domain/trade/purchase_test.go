package trade

import (
	"errors"
	"testing"

	"github.com/erp/tradecore/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func purchaseLine(t *testing.T, snap ProductSnapshot, qty, price string) PurchaseLine {
	t.Helper()
	l, err := NewPurchaseLine(1, snap, d(qty), d(price))
	require.NoError(t, err)
	return *l
}

func TestNewPurchaseTransaction(t *testing.T) {
	a, b := snapshot(t, "A"), snapshot(t, "B")

	t.Run("grand total is sum of qty times price", func(t *testing.T) {
		p, err := NewPurchaseTransaction("Acme", orderDate, "PO-9", "credit", []PurchaseLine{
			purchaseLine(t, a, "10", "4.50"),
			purchaseLine(t, b, "2.5", "2"),
		})
		require.NoError(t, err)
		assert.True(t, p.GrandTotal.Equal(d("50")))
		assert.Equal(t, p.ID, p.Lines[0].PurchaseID)
		assert.Equal(t, 2, p.Lines[1].LineNo)
		require.Len(t, p.GetDomainEvents(), 1)
		assert.Equal(t, EventTypePurchaseRecorded, p.GetDomainEvents()[0].EventType())
	})

	t.Run("last line wins for buying price", func(t *testing.T) {
		p, err := NewPurchaseTransaction("Acme", orderDate, "", "", []PurchaseLine{
			purchaseLine(t, a, "1", "4"),
			purchaseLine(t, a, "1", "5"),
		})
		require.NoError(t, err)
		assert.True(t, p.LastPriceByProduct()[a.ProductID].Equal(d("5")))
		qs := p.QuantitiesByProduct()
		require.Len(t, qs, 1)
		assert.True(t, qs[0].Quantity.Equal(d("2")))
	})

	t.Run("rejects empty cart", func(t *testing.T) {
		_, err := NewPurchaseTransaction("Acme", orderDate, "", "", nil)
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})

	t.Run("rejects missing supplier", func(t *testing.T) {
		_, err := NewPurchaseTransaction("", orderDate, "", "", []PurchaseLine{purchaseLine(t, a, "1", "1")})
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})
}
