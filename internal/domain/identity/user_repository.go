package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence.
// Implementations load the cart and wishlist together with the user record.
type UserRepository interface {
	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by email (case-insensitive)
	FindByEmail(ctx context.Context, email string) (*User, error)

	// ExistsByEmail checks whether an account with the email already exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Create persists a new user.
	// Returns shared.ErrAlreadyExists when the email is taken; the
	// uniqueness check and insert happen in one transaction so a
	// duplicate registration can never create a second account.
	Create(ctx context.Context, user *User) error

	// Save persists user changes including cart and wishlist state
	Save(ctx context.Context, user *User) error

	// SaveWithLock persists the user only if the stored version matches
	// the version the aggregate was loaded at. Returns
	// shared.ErrConcurrencyConflict when another writer got there first.
	SaveWithLock(ctx context.Context, user *User, expectedVersion int) error
}
