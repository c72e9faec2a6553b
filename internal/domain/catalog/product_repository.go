package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductFilter holds the optional filters for listing products
type ProductFilter struct {
	// Search matches against product name (case-insensitive substring)
	Search string
	// Category filters by exact category
	Category string
	// Status filters by product status; empty means all
	Status ProductStatus
	// Limit and Offset control pagination; Limit <= 0 means no limit
	Limit  int
	Offset int
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByIDs finds multiple products by their IDs.
	// Missing IDs are silently omitted from the result.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// FindAll finds all products matching the filter
	FindAll(ctx context.Context, filter ProductFilter) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Delete deletes a product.
	// Carts and orders referencing the product keep their lines; carts
	// resolve against the live catalog, orders hold frozen snapshots.
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts products matching the filter
	Count(ctx context.Context, filter ProductFilter) (int64, error)
}
