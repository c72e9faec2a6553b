package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/azurestore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Password cost for bcrypt
const bcryptCost = 12

// CartLine represents one product entry in a user's cart.
// A cart holds at most one line per product; adding the same product
// again merges into the existing line.
type CartLine struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Quantity  int       `gorm:"not null"`
	Position  int       `gorm:"not null;default:0"` // preserves insertion order
}

// TableName returns the table name for GORM
func (CartLine) TableName() string {
	return "cart_lines"
}

// WishlistEntry represents a product saved to a user's wishlist
type WishlistEntry struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (WishlistEntry) TableName() string {
	return "wishlist_entries"
}

// User represents a shopper or admin account.
// It is the aggregate root for identity, cart and wishlist operations:
// cart and wishlist are owned state and only change through the methods here.
type User struct {
	shared.BaseAggregateRoot
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Cart         []CartLine  `gorm:"-"`
	Wishlist     []uuid.UUID `gorm:"-"`
}

// NewUser creates a new shopper account
func NewUser(name, email, password string) (*User, error) {
	return newUserWithRole(name, email, password, RoleShopper)
}

// NewAdminUser creates a new admin account
func NewAdminUser(name, email, password string) (*User, error) {
	return newUserWithRole(name, email, password, RoleAdmin)
}

func newUserWithRole(name, email, password string, role Role) (*User, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	user := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             strings.ToLower(strings.TrimSpace(email)),
		PasswordHash:      passwordHash,
		Role:              role,
		Cart:              make([]CartLine, 0),
		Wishlist:          make([]uuid.UUID, 0),
	}

	user.AddDomainEvent(NewUserRegisteredEvent(user))

	return user, nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// SetPassword sets a new password
func (u *User) SetPassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// IsAdmin returns true if the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role.IsAdmin()
}

// AddToCart adds a product to the cart. If the product is already in the
// cart the quantities merge into the existing line; otherwise a new line
// is appended at the end. Quantity defaults to 1 when non-positive.
func (u *User) AddToCart(productID uuid.UUID, quantity int) error {
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT_ID", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		quantity = 1
	}

	for i := range u.Cart {
		if u.Cart[i].ProductID == productID {
			u.Cart[i].Quantity += quantity
			u.touchCart()
			u.AddDomainEvent(NewCartItemAddedEvent(u, productID, u.Cart[i].Quantity))
			return nil
		}
	}

	u.Cart = append(u.Cart, CartLine{
		UserID:    u.ID,
		ProductID: productID,
		Quantity:  quantity,
		Position:  len(u.Cart),
	})
	u.touchCart()
	u.AddDomainEvent(NewCartItemAddedEvent(u, productID, quantity))

	return nil
}

// UpdateCartQuantity applies a signed delta to a cart line's quantity.
// The resulting quantity never drops below 1; removing a line requires
// an explicit RemoveFromCart. Unknown products are a no-op.
func (u *User) UpdateCartQuantity(productID uuid.UUID, delta int) {
	for i := range u.Cart {
		if u.Cart[i].ProductID == productID {
			qty := u.Cart[i].Quantity + delta
			if qty < 1 {
				qty = 1
			}
			u.Cart[i].Quantity = qty
			u.touchCart()
			return
		}
	}
}

// RemoveFromCart removes a product's line from the cart.
// Removing a product that is not in the cart is a no-op.
func (u *User) RemoveFromCart(productID uuid.UUID) {
	for i := range u.Cart {
		if u.Cart[i].ProductID == productID {
			u.Cart = append(u.Cart[:i], u.Cart[i+1:]...)
			for j := range u.Cart {
				u.Cart[j].Position = j
			}
			u.touchCart()
			u.AddDomainEvent(NewCartItemRemovedEvent(u, productID))
			return
		}
	}
}

// ClearCart empties the cart. Only checkout completion clears carts.
func (u *User) ClearCart() {
	if len(u.Cart) == 0 {
		return
	}
	u.Cart = make([]CartLine, 0)
	u.touchCart()
	u.AddDomainEvent(NewCartClearedEvent(u))
}

// CartLineFor returns the cart line for a product, if present
func (u *User) CartLineFor(productID uuid.UUID) (CartLine, bool) {
	for _, line := range u.Cart {
		if line.ProductID == productID {
			return line, true
		}
	}
	return CartLine{}, false
}

// CartIsEmpty returns true if the cart has no lines
func (u *User) CartIsEmpty() bool {
	return len(u.Cart) == 0
}

// ToggleWishlist flips a product's wishlist membership.
// Returns true if the product is in the wishlist after the call.
func (u *User) ToggleWishlist(productID uuid.UUID) bool {
	for i, id := range u.Wishlist {
		if id == productID {
			u.Wishlist = append(u.Wishlist[:i], u.Wishlist[i+1:]...)
			u.touchCart()
			u.AddDomainEvent(NewWishlistToggledEvent(u, productID, false))
			return false
		}
	}
	u.Wishlist = append(u.Wishlist, productID)
	u.touchCart()
	u.AddDomainEvent(NewWishlistToggledEvent(u, productID, true))
	return true
}

// HasInWishlist returns true if the product is wishlisted
func (u *User) HasInWishlist(productID uuid.UUID) bool {
	for _, id := range u.Wishlist {
		if id == productID {
			return true
		}
	}
	return false
}

func (u *User) touchCart() {
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// Validation functions

func validateName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 200 characters")
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 128 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 128 characters")
	}
	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}

	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}

	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
