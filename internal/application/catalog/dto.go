package catalog

import (
	"github.com/azurestore/backend/internal/domain/catalog"
)

// ListProductsInput contains filters for listing the catalog
type ListProductsInput struct {
	Search   string
	Category string
	Status   catalog.ProductStatus
	Page     int
	PageSize int
}

// ListProductsResult contains a catalog page and pagination info
type ListProductsResult struct {
	Products []catalog.Product
	Total    int64
	Page     int
	PageSize int
}

// CreateProductInput contains input for creating a product
type CreateProductInput struct {
	Name        string
	Description string
	Category    string
	Price       string
	ImageURL    string
	Stock       int
}

// UpdateProductInput contains input for updating a product.
// Price, ImageURL and Stock are pointers so a request can change only
// the fields it names.
type UpdateProductInput struct {
	Name        string
	Description string
	Category    string
	Price       *string
	ImageURL    *string
	Stock       *int
}
