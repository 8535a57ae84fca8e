package trade

import (
	"strings"
	"time"

	"github.com/erp/tradecore/internal/domain/shared"
	"github.com/erp/tradecore/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseLine is one received product on a purchase
type PurchaseLine struct {
	ID         uuid.UUID
	PurchaseID uuid.UUID
	LineNo     int
	Product    ProductSnapshot
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal
	Subtotal   decimal.Decimal
}

// NewPurchaseLine builds a purchase line with subtotal = quantity × unitPrice
func NewPurchaseLine(lineNo int, product ProductSnapshot, quantity, unitPrice decimal.Decimal) (*PurchaseLine, error) {
	if err := valueobject.ValidateQuantity(quantity); err != nil {
		return nil, shared.NewValidationError("Line %d: %v", lineNo, err)
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewValidationError("Line %d: unit price cannot be negative", lineNo)
	}
	return &PurchaseLine{
		ID:        uuid.New(),
		LineNo:    lineNo,
		Product:   product,
		Quantity:  quantity,
		UnitPrice: valueobject.RoundMoney(unitPrice),
		Subtotal:  valueobject.RoundMoney(quantity.Mul(unitPrice)),
	}, nil
}

// PurchaseTransaction is stock bought from a supplier
type PurchaseTransaction struct {
	shared.BaseAggregateRoot
	SupplierRef   string
	PurchaseDate  time.Time
	Reference     string
	PaymentMethod string
	GrandTotal    decimal.Decimal
	Lines         []PurchaseLine
}

// NewPurchaseTransaction validates the header and computes grand total = Σ subtotal
func NewPurchaseTransaction(supplierRef string, purchaseDate time.Time, reference, paymentMethod string, lines []PurchaseLine) (*PurchaseTransaction, error) {
	if strings.TrimSpace(supplierRef) == "" {
		return nil, shared.NewValidationError("Supplier reference is required")
	}
	if len(lines) == 0 {
		return nil, shared.NewValidationError("Purchase must have at least one line")
	}
	if purchaseDate.IsZero() {
		return nil, shared.NewValidationError("Purchase date is required")
	}

	p := &PurchaseTransaction{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SupplierRef:       strings.TrimSpace(supplierRef),
		PurchaseDate:      purchaseDate,
		Reference:         strings.TrimSpace(reference),
		PaymentMethod:     strings.TrimSpace(paymentMethod),
		Lines:             make([]PurchaseLine, len(lines)),
	}
	total := decimal.Zero
	for i, line := range lines {
		line.PurchaseID = p.ID
		line.LineNo = i + 1
		p.Lines[i] = line
		total = total.Add(line.Subtotal)
	}
	p.GrandTotal = valueobject.RoundMoney(total)

	p.AddDomainEvent(NewPurchaseRecordedEvent(p))
	return p, nil
}

// QuantitiesByProduct sums quantities per product in first-appearance order
func (p *PurchaseTransaction) QuantitiesByProduct() []ProductQuantity {
	return sumByProduct(len(p.Lines), func(i int) (ProductSnapshot, decimal.Decimal) {
		return p.Lines[i].Product, p.Lines[i].Quantity
	})
}

// LastPriceByProduct returns, per product, the unit price of its last line
func (p *PurchaseTransaction) LastPriceByProduct() map[uuid.UUID]decimal.Decimal {
	prices := make(map[uuid.UUID]decimal.Decimal, len(p.Lines))
	for _, line := range p.Lines {
		prices[line.Product.ProductID] = line.UnitPrice
	}
	return prices
}
