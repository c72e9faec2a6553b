package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RegisterInput contains input for account registration
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput contains input for login
type LoginInput struct {
	Email    string
	Password string
}

// RefreshTokenInput contains input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// UserInfo is the account projection returned to clients
type UserInfo struct {
	ID    uuid.UUID
	Name  string
	Email string
	Role  string
}

// AuthResult contains tokens and account info after register or login
type AuthResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	User                  UserInfo
}

// AddToCartInput contains input for adding a product to the cart
type AddToCartInput struct {
	UserID    uuid.UUID
	ProductID uuid.UUID
	Quantity  int
}

// UpdateCartQuantityInput contains a signed quantity delta for a cart line
type UpdateCartQuantityInput struct {
	UserID    uuid.UUID
	ProductID uuid.UUID
	Delta     int
}

// CartItem is one resolved cart line. Lines whose product has left the
// catalog are flagged unavailable instead of being dropped silently.
type CartItem struct {
	ProductID   uuid.UUID
	Name        string
	Price       decimal.Decimal
	ImageURL    string
	Quantity    int
	Amount      decimal.Decimal
	Unavailable bool
}

// CartResult is the resolved cart with totals over available lines
type CartResult struct {
	Items    []CartItem
	Subtotal decimal.Decimal
}

// WishlistResult is the resolved wishlist
type WishlistResult struct {
	ProductIDs []uuid.UUID
}
