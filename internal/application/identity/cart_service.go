package identity

import (
	"context"
	"errors"

	"github.com/azurestore/backend/internal/domain/catalog"
	"github.com/azurestore/backend/internal/domain/identity"
	"github.com/azurestore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CartService handles cart and wishlist operations.
// Writes go through the user aggregate with optimistic locking; two
// concurrent changes to the same cart cannot overwrite each other.
type CartService struct {
	userRepo    identity.UserRepository
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewCartService creates a new cart service
func NewCartService(
	userRepo identity.UserRepository,
	productRepo catalog.ProductRepository,
	logger *zap.Logger,
) *CartService {
	return &CartService{
		userRepo:    userRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// GetCart resolves the cart against the live catalog. Lines whose
// product was deleted stay in the cart flagged unavailable; the
// subtotal counts available lines only.
func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*CartResult, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	productIDs := make([]uuid.UUID, 0, len(user.Cart))
	for _, line := range user.Cart {
		productIDs = append(productIDs, line.ProductID)
	}

	products, err := s.productRepo.FindByIDs(ctx, productIDs)
	if err != nil {
		s.logger.Error("Failed to resolve cart products", zap.Error(err))
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	result := &CartResult{
		Items:    make([]CartItem, 0, len(user.Cart)),
		Subtotal: decimal.Zero,
	}
	for _, line := range user.Cart {
		product, ok := byID[line.ProductID]
		if !ok {
			result.Items = append(result.Items, CartItem{
				ProductID:   line.ProductID,
				Quantity:    line.Quantity,
				Unavailable: true,
			})
			continue
		}

		amount := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		result.Items = append(result.Items, CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			ImageURL:  product.ImageURL,
			Quantity:  line.Quantity,
			Amount:    amount,
		})
		result.Subtotal = result.Subtotal.Add(amount)
	}

	return result, nil
}

// AddToCart puts a product in the cart, merging quantities when the
// product is already there
func (s *CartService) AddToCart(ctx context.Context, input AddToCartInput) (*CartResult, error) {
	if _, err := s.productRepo.FindByID(ctx, input.ProductID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
		}
		return nil, err
	}

	user, err := s.loadUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	expectedVersion := user.GetVersion()
	if err := user.AddToCart(input.ProductID, input.Quantity); err != nil {
		return nil, err
	}

	if err := s.saveUser(ctx, user, expectedVersion); err != nil {
		return nil, err
	}

	s.logger.Info("Cart item added",
		zap.String("user_id", input.UserID.String()),
		zap.String("product_id", input.ProductID.String()),
	)
	return s.GetCart(ctx, input.UserID)
}

// UpdateQuantity applies a signed delta to a cart line. The quantity
// floors at 1; shrinking a line never removes it.
func (s *CartService) UpdateQuantity(ctx context.Context, input UpdateCartQuantityInput) (*CartResult, error) {
	user, err := s.loadUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	expectedVersion := user.GetVersion()
	user.UpdateCartQuantity(input.ProductID, input.Delta)

	// unknown product leaves the aggregate untouched; skip the write
	if user.GetVersion() != expectedVersion {
		if err := s.saveUser(ctx, user, expectedVersion); err != nil {
			return nil, err
		}
	}

	return s.GetCart(ctx, input.UserID)
}

// RemoveFromCart drops a product's line from the cart
func (s *CartService) RemoveFromCart(ctx context.Context, userID, productID uuid.UUID) (*CartResult, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	expectedVersion := user.GetVersion()
	user.RemoveFromCart(productID)

	if user.GetVersion() != expectedVersion {
		if err := s.saveUser(ctx, user, expectedVersion); err != nil {
			return nil, err
		}
		s.logger.Info("Cart item removed",
			zap.String("user_id", userID.String()),
			zap.String("product_id", productID.String()),
		)
	}

	return s.GetCart(ctx, userID)
}

// ToggleWishlist flips a product's wishlist membership and returns
// whether the product is wishlisted after the call
func (s *CartService) ToggleWishlist(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return false, shared.NewDomainError("NOT_FOUND", "Product not found")
		}
		return false, err
	}

	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return false, err
	}

	expectedVersion := user.GetVersion()
	wishlisted := user.ToggleWishlist(productID)

	if err := s.saveUser(ctx, user, expectedVersion); err != nil {
		return false, err
	}

	s.logger.Info("Wishlist toggled",
		zap.String("user_id", userID.String()),
		zap.String("product_id", productID.String()),
		zap.Bool("wishlisted", wishlisted),
	)
	return wishlisted, nil
}

// GetWishlist returns the user's wishlisted product IDs
func (s *CartService) GetWishlist(ctx context.Context, userID uuid.UUID) (*WishlistResult, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &WishlistResult{ProductIDs: user.Wishlist}, nil
}

func (s *CartService) loadUser(ctx context.Context, userID uuid.UUID) (*identity.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Account not found")
		}
		s.logger.Error("Failed to load user", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (s *CartService) saveUser(ctx context.Context, user *identity.User, expectedVersion int) error {
	if err := s.userRepo.SaveWithLock(ctx, user, expectedVersion); err != nil {
		if errors.Is(err, shared.ErrConcurrencyConflict) {
			return shared.NewDomainError("CONCURRENCY_CONFLICT", "The cart changed underneath this request. Retry with fresh state")
		}
		s.logger.Error("Failed to save user", zap.String("user_id", user.ID.String()), zap.Error(err))
		return err
	}
	return nil
}
