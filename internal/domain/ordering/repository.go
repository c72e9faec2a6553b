package ordering

import (
	"context"

	"github.com/azurestore/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order by ID, items included
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByUser finds a user's orders, newest first
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Order, error)

	// CountByUser counts a user's orders
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// CreateAndClearCart appends the order and persists the user's
	// cleared cart in a single transaction, guarded by the version the
	// user aggregate was loaded at. Either the order exists and the cart
	// is empty, or neither change happened; a concurrent cart write makes
	// the whole transaction fail with shared.ErrConcurrencyConflict.
	CreateAndClearCart(ctx context.Context, order *Order, user *identity.User, expectedVersion int) error
}
