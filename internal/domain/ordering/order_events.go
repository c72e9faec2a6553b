package ordering

import (
	"github.com/azurestore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeOrderCreated          = "OrderCreated"
	EventTypeOrderPaymentCompleted = "OrderPaymentCompleted"
)

// OrderCreatedEvent is published when an order is assembled from a cart
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID       `json:"order_id"`
	UserID      uuid.UUID       `json:"user_id"`
	ItemCount   int             `json:"item_count"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	ShippingFee decimal.Decimal `json:"shipping_fee"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(order *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		UserID:          order.UserID,
		ItemCount:       len(order.Items),
		Subtotal:        order.Subtotal,
		ShippingFee:     order.ShippingFee,
		TotalAmount:     order.TotalAmount,
	}
}

// OrderPaymentCompletedEvent is published when the charge succeeds
type OrderPaymentCompletedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID       `json:"order_id"`
	UserID      uuid.UUID       `json:"user_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// NewOrderPaymentCompletedEvent creates a new OrderPaymentCompletedEvent
func NewOrderPaymentCompletedEvent(order *Order) *OrderPaymentCompletedEvent {
	return &OrderPaymentCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPaymentCompleted, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		UserID:          order.UserID,
		TotalAmount:     order.TotalAmount,
	}
}
