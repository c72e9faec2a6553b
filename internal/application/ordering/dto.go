package ordering

import (
	"github.com/azurestore/backend/internal/domain/ordering"
	"github.com/google/uuid"
)

// PlaceOrderInput contains everything needed to turn a cart into an order
type PlaceOrderInput struct {
	UserID        uuid.UUID
	Street        string
	City          string
	PostalCode    string
	PaymentMethod ordering.PaymentMethod
}

// PlaceOrderResult contains the placed order and the gateway reference
type PlaceOrderResult struct {
	Order            *ordering.Order
	PaymentReference string
	// DroppedLines counts cart lines whose product left the catalog
	// between adding and checking out; they are excluded from the order.
	DroppedLines int
}

// ListOrdersResult contains a user's order history, newest first
type ListOrdersResult struct {
	Orders []ordering.Order
	Total  int64
}
