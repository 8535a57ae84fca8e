package trade

import (
	"fmt"
	"strings"
	"time"

	"github.com/erp/tradecore/internal/domain/shared"
	"github.com/erp/tradecore/internal/domain/shared/strategy"
	"github.com/erp/tradecore/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of an order transaction
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// PaymentMethodPending marks an order that has not been settled yet
const PaymentMethodPending = "pending"

// DefaultSettledPaymentMethod is written when a pending order is confirmed
const DefaultSettledPaymentMethod = "cash"

// orderTransitions is the complete set of allowed status changes
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending: {OrderStatusConfirmed, OrderStatusCancelled},
}

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is possible
func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// ParseOrderStatus accepts any letter case
func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", shared.NewValidationError("Unknown order status %q", s)
	}
	return status, nil
}

// IsPendingPayment reports whether the payment method leaves the order pending
func IsPendingPayment(method string) bool {
	return strings.EqualFold(strings.TrimSpace(method), PaymentMethodPending)
}

// OrderLine is one priced, taxed line of an order
type OrderLine struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	LineNo    int
	Product   ProductSnapshot
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	PriceKind strategy.PriceKind
	TaxAmount decimal.Decimal
	Subtotal  decimal.Decimal
}

// NewOrderLine builds a line. tax is taken at full precision and rounded here;
// subtotal = quantity × unitPrice + tax, rounded to cents.
func NewOrderLine(lineNo int, product ProductSnapshot, quantity, unitPrice decimal.Decimal, kind strategy.PriceKind, tax decimal.Decimal) (*OrderLine, error) {
	if err := valueobject.ValidateQuantity(quantity); err != nil {
		return nil, shared.NewValidationError("Line %d: %v", lineNo, err)
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewValidationError("Line %d: unit price cannot be negative", lineNo)
	}
	if tax.IsNegative() {
		return nil, shared.NewValidationError("Line %d: tax cannot be negative", lineNo)
	}
	if !kind.IsValid() {
		kind = strategy.PriceKindBase
	}
	taxAmount := valueobject.RoundMoney(tax)
	return &OrderLine{
		ID:        uuid.New(),
		LineNo:    lineNo,
		Product:   product,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		PriceKind: kind,
		TaxAmount: taxAmount,
		Subtotal:  valueobject.RoundMoney(quantity.Mul(unitPrice).Add(taxAmount)),
	}, nil
}

// OrderTransaction is a customer sale: header plus ordered lines
type OrderTransaction struct {
	shared.BaseAggregateRoot
	OrderNumber   string
	CustomerRef   string
	OrderDate     time.Time
	PaymentMethod string
	Discount      decimal.Decimal
	GrandTotal    decimal.Decimal
	Status        OrderStatus
	Remark        string
	Lines         []OrderLine
	ConfirmedAt   *time.Time
	CancelledAt   *time.Time
}

// NewOrderTransaction validates the header, attaches lines and computes the grand total.
// The order starts PENDING when paymentMethod is "pending" and CONFIRMED otherwise.
func NewOrderTransaction(customerRef string, orderDate time.Time, paymentMethod string, discount decimal.Decimal, lines []OrderLine) (*OrderTransaction, error) {
	if strings.TrimSpace(customerRef) == "" {
		return nil, shared.NewValidationError("Customer reference is required")
	}
	if strings.TrimSpace(paymentMethod) == "" {
		return nil, shared.NewValidationError("Payment method is required")
	}
	if len(lines) == 0 {
		return nil, shared.NewValidationError("Order must have at least one line")
	}
	if discount.IsNegative() {
		return nil, shared.NewValidationError("Discount cannot be negative")
	}
	if orderDate.IsZero() {
		return nil, shared.NewValidationError("Order date is required")
	}

	order := &OrderTransaction{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerRef:       strings.TrimSpace(customerRef),
		OrderDate:         orderDate,
		PaymentMethod:     strings.TrimSpace(paymentMethod),
		Discount:          valueobject.RoundMoney(discount),
		Status:            OrderStatusConfirmed,
		Lines:             make([]OrderLine, len(lines)),
	}
	if IsPendingPayment(paymentMethod) {
		order.Status = OrderStatusPending
		order.PaymentMethod = PaymentMethodPending
	} else {
		now := time.Now()
		order.ConfirmedAt = &now
	}
	order.OrderNumber = GenerateOrderNumber(orderDate, order.ID)

	for i, line := range lines {
		line.OrderID = order.ID
		line.LineNo = i + 1
		order.Lines[i] = line
	}

	if order.Discount.GreaterThan(order.LinesTotal()) {
		return nil, shared.NewValidationError("Discount %s exceeds order total %s", order.Discount, order.LinesTotal())
	}
	order.recalculateTotals()

	order.AddDomainEvent(NewOrderPlacedEvent(order))
	return order, nil
}

// GenerateOrderNumber derives a readable number from the order date and ID
func GenerateOrderNumber(date time.Time, id uuid.UUID) string {
	return fmt.Sprintf("SO-%s-%s", date.Format("20060102"), strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:10]))
}

// LinesTotal returns Σ line subtotal
func (o *OrderTransaction) LinesTotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.Lines {
		total = total.Add(line.Subtotal)
	}
	return total
}

// TaxTotal returns Σ line tax
func (o *OrderTransaction) TaxTotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.Lines {
		total = total.Add(line.TaxAmount)
	}
	return total
}

func (o *OrderTransaction) recalculateTotals() {
	o.GrandTotal = valueobject.RoundMoney(o.LinesTotal().Sub(o.Discount))
}

// TotalsConsistent reports whether grand_total = Σ subtotal − discount within a cent
func (o *OrderTransaction) TotalsConsistent() bool {
	return valueobject.WithinTolerance(o.GrandTotal, o.LinesTotal().Sub(o.Discount))
}

// QuantitiesByProduct sums quantities per product in first-appearance order
func (o *OrderTransaction) QuantitiesByProduct() []ProductQuantity {
	return sumByProduct(len(o.Lines), func(i int) (ProductSnapshot, decimal.Decimal) {
		return o.Lines[i].Product, o.Lines[i].Quantity
	})
}

// RequiresInvoice reports whether the order has been settled
func (o *OrderTransaction) RequiresInvoice() bool {
	return o.Status == OrderStatusConfirmed
}

// Confirm settles a pending order. settledMethod replaces the "pending" payment method.
func (o *OrderTransaction) Confirm(settledMethod string) error {
	if err := o.transitionTo(OrderStatusConfirmed); err != nil {
		return err
	}
	if strings.TrimSpace(settledMethod) == "" || IsPendingPayment(settledMethod) {
		settledMethod = DefaultSettledPaymentMethod
	}
	now := time.Now()
	o.PaymentMethod = settledMethod
	o.ConfirmedAt = &now
	o.AddDomainEvent(NewOrderConfirmedEvent(o))
	return nil
}

// Cancel voids a pending order. The caller restocks every line.
func (o *OrderTransaction) Cancel() error {
	if err := o.transitionTo(OrderStatusCancelled); err != nil {
		return err
	}
	now := time.Now()
	o.CancelledAt = &now
	o.AddDomainEvent(NewOrderCancelledEvent(o))
	return nil
}

func (o *OrderTransaction) transitionTo(target OrderStatus) error {
	if !o.Status.CanTransitionTo(target) {
		return shared.NewInvalidStateTransitionError("order", string(o.Status), string(target))
	}
	o.Status = target
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}
