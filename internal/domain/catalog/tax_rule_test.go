package catalog

import (
	"errors"
	"testing"

	"github.com/erp/tradecore/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaxRule_Calculate(t *testing.T) {
	tests := []struct {
		name      string
		rule      *TaxRule
		unitPrice string
		quantity  string
		want      string
	}{
		{"fixed is per unit", &TaxRule{Rate: decimal.NewFromInt(2), Type: TaxTypeFixed}, "50", "3", "6"},
		{"percentage of line value", &TaxRule{Rate: decimal.NewFromInt(10), Type: TaxTypePercentage}, "50", "3", "15"},
		{"nil rule", nil, "50", "3", "0"},
		{"zero rate", &TaxRule{Rate: decimal.Zero, Type: TaxTypePercentage}, "50", "3", "0"},
		{"fractional quantity keeps precision", &TaxRule{Rate: decimal.RequireFromString("7.5"), Type: TaxTypePercentage}, "9.99", "1.5", "1.1238750"},
		{"unknown type yields zero", &TaxRule{Rate: decimal.NewFromInt(5), Type: TaxType("VAT")}, "10", "1", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.rule.Calculate(decimal.RequireFromString(tt.unitPrice), decimal.RequireFromString(tt.quantity))
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestNewTaxRule(t *testing.T) {
	t.Run("normalizes type case", func(t *testing.T) {
		rule, err := NewTaxRule("GST", decimal.NewFromInt(17), "percentage")
		require.NoError(t, err)
		assert.Equal(t, TaxTypePercentage, rule.Type)
		assert.NotEmpty(t, rule.ID)
	})

	t.Run("rejects negative rate", func(t *testing.T) {
		_, err := NewTaxRule("GST", decimal.NewFromInt(-1), TaxTypeFixed)
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := NewTaxRule("GST", decimal.NewFromInt(1), "COMPOUND")
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})

	t.Run("rejects empty title", func(t *testing.T) {
		_, err := NewTaxRule(" ", decimal.NewFromInt(1), TaxTypeFixed)
		assert.Error(t, err)
	})
}
