package identity

import (
	"context"
	"strings"

	"github.com/azurestore/backend/internal/domain/catalog"
	"github.com/azurestore/backend/internal/domain/identity"
	"github.com/azurestore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// fakeUserRepo is an in-memory identity.UserRepository with the same
// optimistic-locking behaviour as the real one
type fakeUserRepo struct {
	users map[uuid.UUID]*identity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*identity.User)}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := *user
	clone.Cart = append([]identity.CartLine(nil), user.Cart...)
	clone.Wishlist = append([]uuid.UUID(nil), user.Wishlist...)
	return &clone, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*identity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			clone.Cart = append([]identity.CartLine(nil), user.Cart...)
			clone.Wishlist = append([]uuid.UUID(nil), user.Wishlist...)
			return &clone, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	return false, nil
}

func (r *fakeUserRepo) Create(ctx context.Context, user *identity.User) error {
	if exists, _ := r.ExistsByEmail(ctx, user.Email); exists {
		return shared.ErrAlreadyExists
	}
	r.store(user)
	return nil
}

func (r *fakeUserRepo) Save(_ context.Context, user *identity.User) error {
	r.store(user)
	return nil
}

func (r *fakeUserRepo) SaveWithLock(_ context.Context, user *identity.User, expectedVersion int) error {
	stored, ok := r.users[user.ID]
	if !ok {
		return shared.ErrNotFound
	}
	if stored.GetVersion() != expectedVersion {
		return shared.ErrConcurrencyConflict
	}
	r.store(user)
	return nil
}

func (r *fakeUserRepo) store(user *identity.User) {
	clone := *user
	clone.Cart = append([]identity.CartLine(nil), user.Cart...)
	clone.Wishlist = append([]uuid.UUID(nil), user.Wishlist...)
	r.users[user.ID] = &clone
}

var _ identity.UserRepository = (*fakeUserRepo)(nil)

// fakeProductRepo is a minimal in-memory catalog.ProductRepository
type fakeProductRepo struct {
	products map[uuid.UUID]*catalog.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*catalog.Product)}
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return product, nil
}

func (r *fakeProductRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	found := make([]catalog.Product, 0, len(ids))
	for _, id := range ids {
		if product, ok := r.products[id]; ok {
			found = append(found, *product)
		}
	}
	return found, nil
}

func (r *fakeProductRepo) FindAll(_ context.Context, _ catalog.ProductFilter) ([]catalog.Product, error) {
	all := make([]catalog.Product, 0, len(r.products))
	for _, product := range r.products {
		all = append(all, *product)
	}
	return all, nil
}

func (r *fakeProductRepo) Save(_ context.Context, product *catalog.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.products[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) Count(_ context.Context, _ catalog.ProductFilter) (int64, error) {
	return int64(len(r.products)), nil
}

var _ catalog.ProductRepository = (*fakeProductRepo)(nil)
