package ordering

import (
	"fmt"
	"time"

	"github.com/azurestore/backend/internal/domain/shared"
	"github.com/azurestore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents the payment state recorded on an order
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// IsValid returns true if the status is a known value
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed:
		return true
	}
	return false
}

// String returns the string representation of the status
func (s PaymentStatus) String() string {
	return string(s)
}

// Shipping rule: orders strictly above the threshold ship free,
// everything else pays the flat fee. An order of exactly 100.00 pays.
var (
	freeShippingThreshold = decimal.NewFromInt(100)
	standardShippingFee   = decimal.NewFromInt(15)
)

// CalculateShippingFee returns the shipping fee for a subtotal
func CalculateShippingFee(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(freeShippingThreshold) {
		return decimal.Zero
	}
	return standardShippingFee
}

// OrderItem is a frozen snapshot of a purchased product.
// Name and Price are copied from the catalog at purchase time and never
// change afterwards, even if the product is edited or deleted.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Name      string          `gorm:"type:varchar(200);not null"`
	Price     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Quantity  int             `gorm:"not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,2);not null"` // Price * Quantity
	Position  int             `gorm:"not null;default:0"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrderItem creates an order item snapshot
func NewOrderItem(productID uuid.UUID, name string, price valueobject.Money, quantity int) (OrderItem, error) {
	if productID == uuid.Nil {
		return OrderItem{}, shared.NewDomainError("INVALID_PRODUCT_ID", "Product ID cannot be empty")
	}
	if name == "" {
		return OrderItem{}, shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	if price.IsNegative() {
		return OrderItem{}, shared.NewDomainError("INVALID_PRICE", "Item price cannot be negative")
	}
	if quantity < 1 {
		return OrderItem{}, shared.NewDomainError("INVALID_QUANTITY", "Item quantity must be at least 1")
	}

	return OrderItem{
		ID:        uuid.New(),
		ProductID: productID,
		Name:      name,
		Price:     price.Amount(),
		Quantity:  quantity,
		Amount:    price.Amount().Mul(decimal.NewFromInt(int64(quantity))),
		CreatedAt: time.Now(),
	}, nil
}

// Order is the aggregate root for a placed order.
// Orders are append-only: once payment completes nothing on the record
// changes again. Totals are always recomputed from the item snapshots,
// never taken from client input.
type Order struct {
	shared.BaseAggregateRoot
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Items           []OrderItem     `gorm:"-"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	ShippingFee     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PaymentStatus   PaymentStatus   `gorm:"type:varchar(20);not null"`
	ShippingAddress string          `gorm:"type:varchar(700);not null"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates an order for a user from item snapshots and a
// complete shipping address. The order starts with payment pending;
// the checkout engine marks it completed after a successful charge.
func NewOrder(userID uuid.UUID, items []OrderItem, address valueobject.Address) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER_ID", "User ID cannot be empty")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("EMPTY_CART", "Cannot create an order without items")
	}
	if !address.IsComplete() {
		return nil, shared.NewDomainError("INCOMPLETE_SHIPPING_INFO", "Shipping address requires street, city and postal code")
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Items:             make([]OrderItem, len(items)),
		PaymentStatus:     PaymentStatusPending,
		ShippingAddress:   address.FormatLine(),
	}

	for i, item := range items {
		item.OrderID = order.ID
		item.Position = i
		order.Items[i] = item
	}

	order.recalculateTotals()
	order.AddDomainEvent(NewOrderCreatedEvent(order))

	return order, nil
}

// recalculateTotals recomputes subtotal, shipping fee and total from items
func (o *Order) recalculateTotals() {
	subtotal := decimal.Zero
	for _, item := range o.Items {
		subtotal = subtotal.Add(item.Amount)
	}

	o.Subtotal = subtotal
	o.ShippingFee = CalculateShippingFee(subtotal)
	o.TotalAmount = subtotal.Add(o.ShippingFee)
}

// CompletePayment marks the order as paid. Only pending orders can
// complete; a paid order never changes again.
func (o *Order) CompletePayment() error {
	if o.PaymentStatus != PaymentStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot complete payment in %s status", o.PaymentStatus))
	}

	o.PaymentStatus = PaymentStatusCompleted
	o.UpdatedAt = time.Now()

	o.AddDomainEvent(NewOrderPaymentCompletedEvent(o))

	return nil
}

// FailPayment records a failed charge on a pending order
func (o *Order) FailPayment() error {
	if o.PaymentStatus != PaymentStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot fail payment in %s status", o.PaymentStatus))
	}

	o.PaymentStatus = PaymentStatusFailed
	o.UpdatedAt = time.Now()

	return nil
}

// IsPaid returns true once payment completed
func (o *Order) IsPaid() bool {
	return o.PaymentStatus == PaymentStatusCompleted
}

// ItemCount returns the number of distinct lines on the order
func (o *Order) ItemCount() int {
	return len(o.Items)
}

// GetTotalMoney returns the order total as a Money value object
func (o *Order) GetTotalMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.TotalAmount)
}

// GetSubtotalMoney returns the subtotal as a Money value object
func (o *Order) GetSubtotalMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.Subtotal)
}
