package catalog

import (
	"strings"

	"github.com/erp/tradecore/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TaxType selects how a tax rule's rate is applied
type TaxType string

const (
	// TaxTypePercentage charges rate% of price × quantity
	TaxTypePercentage TaxType = "PERCENTAGE"
	// TaxTypeFixed charges rate per unit
	TaxTypeFixed TaxType = "FIXED"
)

// IsValid returns true if the tax type is known
func (t TaxType) IsValid() bool {
	switch t {
	case TaxTypePercentage, TaxTypeFixed:
		return true
	default:
		return false
	}
}

var hundred = decimal.NewFromInt(100)

// TaxRule is a named tax rate
type TaxRule struct {
	shared.BaseEntity
	Title string          `gorm:"type:varchar(100);not null"`
	Rate  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Type  TaxType         `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (TaxRule) TableName() string {
	return "tax_rules"
}

// NewTaxRule creates a new tax rule
func NewTaxRule(title string, rate decimal.Decimal, taxType TaxType) (*TaxRule, error) {
	if strings.TrimSpace(title) == "" {
		return nil, shared.NewValidationError("Tax rule title cannot be empty")
	}
	if rate.IsNegative() {
		return nil, shared.NewValidationError("Tax rate cannot be negative")
	}
	taxType = TaxType(strings.ToUpper(string(taxType)))
	if !taxType.IsValid() {
		return nil, shared.NewValidationError("Unknown tax type %q", taxType)
	}
	return &TaxRule{
		BaseEntity: shared.NewBaseEntity(),
		Title:      title,
		Rate:       rate,
		Type:       taxType,
	}, nil
}

// Calculate returns the tax for a line at full precision.
// A nil rule or a zero rate yields zero. Callers round when persisting.
func (r *TaxRule) Calculate(unitPrice, quantity decimal.Decimal) decimal.Decimal {
	if r == nil || r.Rate.IsZero() {
		return decimal.Zero
	}
	switch r.Type {
	case TaxTypePercentage:
		return unitPrice.Mul(quantity).Mul(r.Rate).Div(hundred)
	case TaxTypeFixed:
		return r.Rate.Mul(quantity)
	default:
		return decimal.Zero
	}
}
