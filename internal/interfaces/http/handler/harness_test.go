package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	catalogapp "github.com/azurestore/backend/internal/application/catalog"
	identityapp "github.com/azurestore/backend/internal/application/identity"
	orderingapp "github.com/azurestore/backend/internal/application/ordering"
	"github.com/azurestore/backend/internal/domain/catalog"
	"github.com/azurestore/backend/internal/domain/identity"
	"github.com/azurestore/backend/internal/domain/ordering"
	"github.com/azurestore/backend/internal/domain/shared"
	"github.com/azurestore/backend/internal/domain/shared/valueobject"
	"github.com/azurestore/backend/internal/infrastructure/auth"
	"github.com/azurestore/backend/internal/infrastructure/config"
	"github.com/azurestore/backend/internal/infrastructure/payment"
	"github.com/azurestore/backend/internal/interfaces/http/dto"
	"github.com/azurestore/backend/internal/interfaces/http/middleware"
	"github.com/azurestore/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// testServer wires the real services over in-memory repositories and a
// simulated gateway, behind the real router and middleware stack.
type testServer struct {
	engine      *gin.Engine
	userRepo    *fakeUserRepo
	productRepo *fakeProductRepo
	orderRepo   *fakeOrderRepo
	jwtService  *auth.JWTService
	authService *identityapp.AuthService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	userRepo := newFakeUserRepo()
	productRepo := newFakeProductRepo()
	orderRepo := newFakeOrderRepo(userRepo)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-test-secret-test-secret",
		AccessTokenExpiration:  time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "azurestore-test",
		MaxRefreshCount:        3,
	})
	blacklist := auth.NewInMemoryTokenBlacklist()
	log := zap.NewNop()

	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	cartService := identityapp.NewCartService(userRepo, productRepo, log)
	productService := catalogapp.NewProductService(productRepo, log)
	gateway := payment.NewSimulatedGateway(config.PaymentConfig{MaxLatency: time.Millisecond}, log)
	checkoutService := orderingapp.NewCheckoutService(userRepo, productRepo, orderRepo, gateway, log)

	requireAuth := middleware.RequireAuth(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		Logger:         log,
	})
	requireAdmin := middleware.RequireAdmin()

	engine := gin.New()
	engine.Use(middleware.RequestID())

	router.NewRouter(engine).
		Register(NewSystemHandler("azurestore-test")).
		Register(NewAuthHandler(authService, requireAuth)).
		Register(NewProductHandler(productService, requireAuth, requireAdmin)).
		Register(NewCartHandler(cartService, requireAuth)).
		Register(NewOrderHandler(checkoutService, requireAuth)).
		Setup()

	return &testServer{
		engine:      engine,
		userRepo:    userRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		jwtService:  jwtService,
		authService: authService,
	}
}

// do performs a JSON request against the test server
func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

// decode unmarshals the response envelope's data into out
func decode(t *testing.T, w *httptest.ResponseRecorder, out any) dto.Response {
	t.Helper()

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   *dto.ErrorInfo  `json:"error"`
		Meta    *dto.Meta       `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	if out != nil && len(envelope.Data) > 0 {
		require.NoError(t, json.Unmarshal(envelope.Data, out))
	}
	return dto.Response{Success: envelope.Success, Error: envelope.Error, Meta: envelope.Meta}
}

// signUp registers a shopper and returns its access token and ID
func (s *testServer) signUp(t *testing.T, name, email string) (string, uuid.UUID) {
	t.Helper()

	result, err := s.authService.Register(context.Background(), identityapp.RegisterInput{
		Name:     name,
		Email:    email,
		Password: "password1",
	})
	require.NoError(t, err)
	return result.AccessToken, result.User.ID
}

// adminToken promotes a fresh account to admin and returns its token
func (s *testServer) adminToken(t *testing.T) string {
	t.Helper()

	_, userID := s.signUp(t, "Store Admin", "admin@example.com")
	stored := s.userRepo.users[userID]
	stored.Role = identity.RoleAdmin

	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: userID,
		Email:  stored.Email,
		Role:   stored.Role.String(),
	})
	require.NoError(t, err)
	return pair.AccessToken
}

func (s *testServer) seedProduct(t *testing.T, name, price string) *catalog.Product {
	t.Helper()

	money, err := valueobject.NewMoneyUSDFromString(price)
	require.NoError(t, err)
	product, err := catalog.NewProduct(name, "desc", "Decor", money, 10)
	require.NoError(t, err)
	require.NoError(t, s.productRepo.Save(context.Background(), product))
	return product
}

// in-memory repositories

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

func (r *fakeUserRepo) Create(ctx context.Context, user *identity.User) error {
	if exists, _ := r.ExistsByEmail(ctx, user.Email); exists {
		return shared.ErrAlreadyExists
	}
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

type fakeProductRepo struct {
	products map[uuid.UUID]*catalog.Product
	order    []uuid.UUID
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
	for _, id := range r.order {
		if product, ok := r.products[id]; ok {
			all = append(all, *product)
		}
	}
	return all, nil
}

func (r *fakeProductRepo) Save(_ context.Context, product *catalog.Product) error {
	if _, ok := r.products[product.ID]; !ok {
		r.order = append(r.order, product.ID)
	}
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

type fakeOrderRepo struct {
	orders   map[uuid.UUID]*ordering.Order
	userRepo *fakeUserRepo
}

func newFakeOrderRepo(userRepo *fakeUserRepo) *fakeOrderRepo {
	return &fakeOrderRepo{
		orders:   make(map[uuid.UUID]*ordering.Order),
		userRepo: userRepo,
	}
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

// helper referenced by several tests
func requireErrorCode(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
	resp := decode(t, w, nil)
	require.NotNil(t, resp.Error)
	require.Equal(t, code, resp.Error.Code)
}
