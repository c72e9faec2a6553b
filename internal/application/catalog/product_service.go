package catalog

import (
	"context"
	"errors"

	"github.com/azurestore/backend/internal/domain/catalog"
	"github.com/azurestore/backend/internal/domain/shared"
	"github.com/azurestore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ProductService handles catalog operations
type ProductService struct {
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(productRepo catalog.ProductRepository, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		logger:      logger,
	}
}

// List returns a page of the catalog matching the filters
func (s *ProductService) List(ctx context.Context, input ListProductsInput) (*ListProductsResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	pageSize := input.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	filter := catalog.ProductFilter{
		Search:   input.Search,
		Category: input.Category,
		Status:   input.Status,
		Limit:    pageSize,
		Offset:   (page - 1) * pageSize,
	}

	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list products", zap.Error(err))
		return nil, err
	}

	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to count products", zap.Error(err))
		return nil, err
	}

	return &ListProductsResult{
		Products: products,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// GetByID returns a single product
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
		}
		s.logger.Error("Failed to find product", zap.String("product_id", id.String()), zap.Error(err))
		return nil, err
	}
	return product, nil
}

// Create adds a product to the catalog
func (s *ProductService) Create(ctx context.Context, input CreateProductInput) (*catalog.Product, error) {
	price, err := valueobject.NewMoneyUSDFromString(input.Price)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price must be a valid decimal number")
	}

	product, err := catalog.NewProduct(input.Name, input.Description, input.Category, price, input.Stock)
	if err != nil {
		return nil, err
	}
	if input.ImageURL != "" {
		if err := product.SetImageURL(input.ImageURL); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		s.logger.Error("Failed to save product", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name),
	)
	return product, nil
}

// Update edits a product's details
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*catalog.Product, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.Update(input.Name, input.Description, input.Category); err != nil {
		return nil, err
	}
	if input.Price != nil {
		price, err := valueobject.NewMoneyUSDFromString(*input.Price)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_PRICE", "Price must be a valid decimal number")
		}
		if err := product.SetPrice(price); err != nil {
			return nil, err
		}
	}
	if input.ImageURL != nil {
		if err := product.SetImageURL(*input.ImageURL); err != nil {
			return nil, err
		}
	}
	if input.Stock != nil {
		if err := product.SetStock(*input.Stock); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		s.logger.Error("Failed to update product", zap.String("product_id", id.String()), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Product updated", zap.String("product_id", product.ID.String()))
	return product, nil
}

// Delete removes a product from the catalog.
// Existing carts keep their lines and resolve against the live catalog;
// placed orders keep their frozen snapshots either way.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Product not found")
		}
		s.logger.Error("Failed to delete product", zap.String("product_id", id.String()), zap.Error(err))
		return err
	}

	s.logger.Info("Product deleted", zap.String("product_id", id.String()))
	return nil
}
