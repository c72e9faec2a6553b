package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/azurestore/backend/internal/domain/identity"
	"github.com/azurestore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormUserRepository implements identity.UserRepository using GORM.
// The cart and wishlist live in child tables and are loaded and saved
// together with the user row so the aggregate is always complete.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByID finds a user by ID with cart and wishlist loaded
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if err := loadUserAssociations(r.db.WithContext(ctx), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email (case-insensitive)
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).
		First(&user, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if err := loadUserAssociations(r.db.WithContext(ctx), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByEmail checks whether an account with the email already exists
func (r *GormUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&identity.User{}).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create persists a new user. The uniqueness check and insert run in one
// transaction so a duplicate registration can never create a second account.
// Recorded domain events are drained once the aggregate is stored; the
// repositories are the publication boundary and there is no event bus.
func (r *GormUserRepository) Create(ctx context.Context, user *identity.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&identity.User{}).
			Where("email = ?", user.Email).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return shared.ErrAlreadyExists
		}
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return replaceUserAssociations(tx, user)
	})
	if err != nil {
		return err
	}
	user.ClearDomainEvents()
	return nil
}

// Save persists user changes including cart and wishlist state
func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(user).Error; err != nil {
			return err
		}
		return replaceUserAssociations(tx, user)
	})
	if err != nil {
		return err
	}
	user.ClearDomainEvents()
	return nil
}

// SaveWithLock persists the user only if the stored version matches the
// version the aggregate was loaded at. Returns shared.ErrConcurrencyConflict
// when another writer got there first.
func (r *GormUserRepository) SaveWithLock(ctx context.Context, user *identity.User, expectedVersion int) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&identity.User{}).
			Where("id = ? AND version = ?", user.ID, expectedVersion).
			Updates(map[string]any{
				"name":          user.Name,
				"email":         user.Email,
				"password_hash": user.PasswordHash,
				"role":          user.Role,
				"version":       user.GetVersion(),
				"updated_at":    user.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&identity.User{}).
				Where("id = ?", user.ID).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return shared.ErrNotFound
			}
			return shared.ErrConcurrencyConflict
		}
		return replaceUserAssociations(tx, user)
	})
	if err != nil {
		return err
	}
	user.ClearDomainEvents()
	return nil
}

// loadUserAssociations fills the cart and wishlist slices from their tables
func loadUserAssociations(db *gorm.DB, user *identity.User) error {
	var lines []identity.CartLine
	if err := db.
		Where("user_id = ?", user.ID).
		Order("position ASC").
		Find(&lines).Error; err != nil {
		return err
	}
	user.Cart = lines

	var entries []identity.WishlistEntry
	if err := db.
		Where("user_id = ?", user.ID).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return err
	}
	user.Wishlist = make([]uuid.UUID, 0, len(entries))
	for _, entry := range entries {
		user.Wishlist = append(user.Wishlist, entry.ProductID)
	}
	return nil
}

// replaceUserAssociations rewrites the cart and wishlist child rows to
// match the aggregate's in-memory state
func replaceUserAssociations(tx *gorm.DB, user *identity.User) error {
	if err := tx.Where("user_id = ?", user.ID).Delete(&identity.CartLine{}).Error; err != nil {
		return err
	}
	if len(user.Cart) > 0 {
		lines := make([]identity.CartLine, len(user.Cart))
		copy(lines, user.Cart)
		for i := range lines {
			lines[i].UserID = user.ID
		}
		if err := tx.Create(&lines).Error; err != nil {
			return err
		}
	}

	if err := tx.Where("user_id = ?", user.ID).Delete(&identity.WishlistEntry{}).Error; err != nil {
		return err
	}
	if len(user.Wishlist) > 0 {
		now := time.Now()
		entries := make([]identity.WishlistEntry, 0, len(user.Wishlist))
		for i, productID := range user.Wishlist {
			entries = append(entries, identity.WishlistEntry{
				UserID:    user.ID,
				ProductID: productID,
				// spread the timestamps so load order matches toggle order
				CreatedAt: now.Add(time.Duration(i) * time.Microsecond),
			})
		}
		if err := tx.Create(&entries).Error; err != nil {
			return err
		}
	}
	return nil
}

// Ensure GormUserRepository implements UserRepository
var _ identity.UserRepository = (*GormUserRepository)(nil)
