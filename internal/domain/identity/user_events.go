package identity

import (
	"github.com/azurestore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeUser = "User"

// Event type constants
const (
	EventTypeUserRegistered  = "UserRegistered"
	EventTypeCartItemAdded   = "CartItemAdded"
	EventTypeCartItemRemoved = "CartItemRemoved"
	EventTypeCartCleared     = "CartCleared"
	EventTypeWishlistToggled = "WishlistToggled"
)

// UserRegisteredEvent is published when a new account is created
type UserRegisteredEvent struct {
	shared.BaseDomainEvent
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Role   Role      `json:"role"`
}

// NewUserRegisteredEvent creates a new UserRegisteredEvent
func NewUserRegisteredEvent(user *User) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserRegistered, AggregateTypeUser, user.ID),
		UserID:          user.ID,
		Email:           user.Email,
		Role:            user.Role,
	}
}

// CartItemAddedEvent is published when a product is added to the cart
type CartItemAddedEvent struct {
	shared.BaseDomainEvent
	UserID    uuid.UUID `json:"user_id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"` // quantity after the merge
}

// NewCartItemAddedEvent creates a new CartItemAddedEvent
func NewCartItemAddedEvent(user *User, productID uuid.UUID, quantity int) *CartItemAddedEvent {
	return &CartItemAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCartItemAdded, AggregateTypeUser, user.ID),
		UserID:          user.ID,
		ProductID:       productID,
		Quantity:        quantity,
	}
}

// CartItemRemovedEvent is published when a line is removed from the cart
type CartItemRemovedEvent struct {
	shared.BaseDomainEvent
	UserID    uuid.UUID `json:"user_id"`
	ProductID uuid.UUID `json:"product_id"`
}

// NewCartItemRemovedEvent creates a new CartItemRemovedEvent
func NewCartItemRemovedEvent(user *User, productID uuid.UUID) *CartItemRemovedEvent {
	return &CartItemRemovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCartItemRemoved, AggregateTypeUser, user.ID),
		UserID:          user.ID,
		ProductID:       productID,
	}
}

// CartClearedEvent is published when the cart is emptied
type CartClearedEvent struct {
	shared.BaseDomainEvent
	UserID uuid.UUID `json:"user_id"`
}

// NewCartClearedEvent creates a new CartClearedEvent
func NewCartClearedEvent(user *User) *CartClearedEvent {
	return &CartClearedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCartCleared, AggregateTypeUser, user.ID),
		UserID:          user.ID,
	}
}

// WishlistToggledEvent is published when a wishlist entry flips
type WishlistToggledEvent struct {
	shared.BaseDomainEvent
	UserID     uuid.UUID `json:"user_id"`
	ProductID  uuid.UUID `json:"product_id"`
	Wishlisted bool      `json:"wishlisted"`
}

// NewWishlistToggledEvent creates a new WishlistToggledEvent
func NewWishlistToggledEvent(user *User, productID uuid.UUID, wishlisted bool) *WishlistToggledEvent {
	return &WishlistToggledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeWishlistToggled, AggregateTypeUser, user.ID),
		UserID:          user.ID,
		ProductID:       productID,
		Wishlisted:      wishlisted,
	}
}
