package persistence

import (
	"context"
	"errors"

	"github.com/azurestore/backend/internal/domain/identity"
	"github.com/azurestore/backend/internal/domain/ordering"
	"github.com/azurestore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements ordering.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by ID, items included
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	var order ordering.Order
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Where("order_id = ?", order.ID).
		Order("position ASC").
		Find(&order.Items).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByUser finds a user's orders, newest first
func (r *GormOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]ordering.Order, error) {
	var orders []ordering.Order
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	orderIDs := make([]uuid.UUID, len(orders))
	for i, order := range orders {
		orderIDs[i] = order.ID
	}

	var items []ordering.OrderItem
	if err := r.db.WithContext(ctx).
		Where("order_id IN ?", orderIDs).
		Order("position ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}

	byOrder := make(map[uuid.UUID][]ordering.OrderItem, len(orders))
	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}
	for i := range orders {
		orders[i].Items = byOrder[orders[i].ID]
	}
	return orders, nil
}

// CountByUser counts a user's orders
func (r *GormOrderRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&ordering.Order{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CreateAndClearCart appends the order and persists the user's cleared
// cart in a single transaction. The user row carries the same optimistic
// lock as SaveWithLock: a cart line added by a concurrent writer after
// the checkout loaded the aggregate rolls the whole transaction back
// instead of being silently wiped.
func (r *GormOrderRepository) CreateAndClearCart(ctx context.Context, order *ordering.Order, user *identity.User, expectedVersion int) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		if len(order.Items) > 0 {
			if err := tx.Create(&order.Items).Error; err != nil {
				return err
			}
		}

		result := tx.Model(&identity.User{}).
			Where("id = ? AND version = ?", user.ID, expectedVersion).
			Updates(map[string]any{
				"version":    user.GetVersion(),
				"updated_at": user.UpdatedAt,
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

	// the repository is the publication boundary; without an event bus the
	// recorded events are drained once the transaction commits
	order.ClearDomainEvents()
	user.ClearDomainEvents()
	return nil
}

// Ensure GormOrderRepository implements OrderRepository
var _ ordering.OrderRepository = (*GormOrderRepository)(nil)
