package ordering

import (
	"context"
	"errors"

	"github.com/azurestore/backend/internal/domain/catalog"
	"github.com/azurestore/backend/internal/domain/identity"
	"github.com/azurestore/backend/internal/domain/ordering"
	"github.com/azurestore/backend/internal/domain/shared"
	"github.com/azurestore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CheckoutService turns carts into orders.
// Placing an order charges the gateway first and persists afterwards:
// a declined or failed charge leaves the cart and order history exactly
// as they were.
type CheckoutService struct {
	userRepo    identity.UserRepository
	productRepo catalog.ProductRepository
	orderRepo   ordering.OrderRepository
	gateway     ordering.PaymentGateway
	logger      *zap.Logger
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	userRepo identity.UserRepository,
	productRepo catalog.ProductRepository,
	orderRepo ordering.OrderRepository,
	gateway ordering.PaymentGateway,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		userRepo:    userRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		gateway:     gateway,
		logger:      logger,
	}
}

// PlaceOrder runs the whole checkout: it walks the checkout state
// machine, snapshots the cart against the live catalog, charges the
// gateway and then writes the order and the cleared cart atomically.
func (s *CheckoutService) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*PlaceOrderResult, error) {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Account not found")
		}
		return nil, err
	}

	address, err := valueobject.NewAddress(input.Street, input.City, input.PostalCode)
	if err != nil {
		return nil, shared.NewDomainError("INCOMPLETE_SHIPPING_INFO", "Shipping address requires street, city and postal code")
	}

	checkout := ordering.NewCheckout()
	if err := checkout.ProceedToShipping(len(user.Cart)); err != nil {
		return nil, err
	}
	if err := checkout.SetShippingAddress(address); err != nil {
		return nil, err
	}
	if err := checkout.ProceedToPayment(); err != nil {
		return nil, err
	}
	if err := checkout.BeginProcessing(input.PaymentMethod); err != nil {
		return nil, err
	}

	items, dropped, err := s.snapshotCart(ctx, user)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		s.logger.Warn("Every cart line vanished from the catalog before checkout",
			zap.String("user_id", user.ID.String()),
			zap.Int("dropped_lines", dropped),
		)
		return nil, shared.NewDomainError("EMPTY_CART", "None of the cart items are available anymore")
	}

	order, err := ordering.NewOrder(user.ID, items, address)
	if err != nil {
		return nil, err
	}

	result, err := s.gateway.ProcessPayment(ctx, order.GetTotalMoney(), input.PaymentMethod)
	if err != nil {
		_ = checkout.Fail()
		s.logger.Error("Payment gateway failure",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return nil, shared.NewDomainError("PAYMENT_GATEWAY", "Payment could not be processed. The cart is untouched")
	}
	if !result.IsCompleted() {
		_ = checkout.Fail()
		s.logger.Warn("Charge declined",
			zap.String("user_id", user.ID.String()),
			zap.String("reason", result.Reason),
		)
		return nil, shared.NewDomainError("PAYMENT_DECLINED", "The charge was declined. The cart is untouched")
	}

	if err := order.CompletePayment(); err != nil {
		return nil, err
	}

	expectedVersion := user.GetVersion()
	user.ClearCart()
	if err := s.orderRepo.CreateAndClearCart(ctx, order, user, expectedVersion); err != nil {
		// the transaction rolled back; the stored cart still holds its lines
		if errors.Is(err, shared.ErrConcurrencyConflict) {
			s.logger.Warn("Cart changed while the order was being placed",
				zap.String("user_id", user.ID.String()),
			)
			return nil, shared.NewDomainError("CONCURRENCY_CONFLICT", "The cart changed while the order was being placed. Review it and try again")
		}
		s.logger.Error("Failed to persist order",
			zap.String("user_id", user.ID.String()),
			zap.String("order_id", order.ID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	if err := checkout.Complete(); err != nil {
		return nil, err
	}

	s.logger.Info("Order placed",
		zap.String("user_id", user.ID.String()),
		zap.String("order_id", order.ID.String()),
		zap.String("total", order.TotalAmount.StringFixed(2)),
		zap.String("payment_reference", result.Reference),
		zap.Int("dropped_lines", dropped),
	)

	return &PlaceOrderResult{
		Order:            order,
		PaymentReference: result.Reference,
		DroppedLines:     dropped,
	}, nil
}

// GetOrder returns an order visible to the requester: owners see their
// own orders, admins see all of them
func (s *CheckoutService) GetOrder(ctx context.Context, orderID, requesterID uuid.UUID, isAdmin bool) (*ordering.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Order not found")
		}
		return nil, err
	}

	if order.UserID != requesterID && !isAdmin {
		// hide the order's existence from strangers
		return nil, shared.NewDomainError("NOT_FOUND", "Order not found")
	}
	return order, nil
}

// ListUserOrders returns a user's order history, newest first
func (s *CheckoutService) ListUserOrders(ctx context.Context, userID uuid.UUID) (*ListOrdersResult, error) {
	orders, err := s.orderRepo.FindByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list orders", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, err
	}

	total, err := s.orderRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &ListOrdersResult{Orders: orders, Total: total}, nil
}

// snapshotCart freezes the cart lines against the live catalog.
// Lines whose product was deleted are dropped from the order with a
// warning; name and price come from the catalog at this moment, never
// from the client.
func (s *CheckoutService) snapshotCart(ctx context.Context, user *identity.User) ([]ordering.OrderItem, int, error) {
	productIDs := make([]uuid.UUID, 0, len(user.Cart))
	for _, line := range user.Cart {
		productIDs = append(productIDs, line.ProductID)
	}

	products, err := s.productRepo.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, 0, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	items := make([]ordering.OrderItem, 0, len(user.Cart))
	dropped := 0
	for _, line := range user.Cart {
		product, ok := byID[line.ProductID]
		if !ok {
			dropped++
			s.logger.Warn("Dropping vanished product from checkout",
				zap.String("user_id", user.ID.String()),
				zap.String("product_id", line.ProductID.String()),
			)
			continue
		}

		item, err := ordering.NewOrderItem(product.ID, product.Name, product.GetPriceMoney(), line.Quantity)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}

	return items, dropped, nil
}
