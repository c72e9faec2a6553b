package ordering

import (
	"context"
	"sort"

	"github.com/azurestore/backend/internal/domain/catalog"
	"github.com/azurestore/backend/internal/domain/identity"
	"github.com/azurestore/backend/internal/domain/ordering"
	"github.com/azurestore/backend/internal/domain/shared"
	"github.com/azurestore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// fakeUserRepo is an in-memory identity.UserRepository. Reads hand out
// clones so mutations on a loaded user never leak into the store until
// an explicit save, the same contract the real repository gives.
type fakeUserRepo struct {
	users map[uuid.UUID]*identity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*identity.User)}
}

func cloneUser(user *identity.User) *identity.User {
	clone := *user
	clone.Cart = append([]identity.CartLine(nil), user.Cart...)
	clone.Wishlist = append([]uuid.UUID(nil), user.Wishlist...)
	return &clone
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return cloneUser(user), nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*identity.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return cloneUser(user), nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *identity.User) error {
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *fakeUserRepo) Save(_ context.Context, user *identity.User) error {
	r.users[user.ID] = cloneUser(user)
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
	r.users[user.ID] = cloneUser(user)
	return nil
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
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) Count(_ context.Context, _ catalog.ProductFilter) (int64, error) {
	return int64(len(r.products)), nil
}

var _ catalog.ProductRepository = (*fakeProductRepo)(nil)

// fakeOrderRepo is an in-memory ordering.OrderRepository whose
// CreateAndClearCart mimics the real transaction: both writes land or
// neither does.
type fakeOrderRepo struct {
	orders    map[uuid.UUID]*ordering.Order
	userRepo  *fakeUserRepo
	createErr error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*ordering.Order)}
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*ordering.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return order, nil
}

func (r *fakeOrderRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]ordering.Order, error) {
	matched := make([]ordering.Order, 0)
	for _, order := range r.orders {
		if order.UserID == userID {
			matched = append(matched, *order)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, nil
}

func (r *fakeOrderRepo) CountByUser(_ context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	for _, order := range r.orders {
		if order.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *fakeOrderRepo) CreateAndClearCart(ctx context.Context, order *ordering.Order, user *identity.User, expectedVersion int) error {
	if r.createErr != nil {
		return r.createErr
	}
	stored, ok := r.userRepo.users[user.ID]
	if !ok {
		return shared.ErrNotFound
	}
	if stored.GetVersion() != expectedVersion {
		return shared.ErrConcurrencyConflict
	}
	r.orders[order.ID] = order
	return r.userRepo.Save(ctx, user)
}

var _ ordering.OrderRepository = (*fakeOrderRepo)(nil)

// fakeGateway returns a canned result or error
type fakeGateway struct {
	result *ordering.PaymentResult
	err    error
	calls  int
}

func (g *fakeGateway) ProcessPayment(_ context.Context, _ valueobject.Money, _ ordering.PaymentMethod) (*ordering.PaymentResult, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return g.result, nil
}

var _ ordering.PaymentGateway = (*fakeGateway)(nil)
