package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartRequiresAuth(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/me/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCartAddAndMerge(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.signUp(t, "Ava Jones", "ava@example.com")
	vase := s.seedProduct(t, "Sapphire Ceramic Vase", "45.00")

	w := s.do(t, http.MethodPost, "/api/v1/me/cart/items", token, gin.H{
		"product_id": vase.ID,
		"quantity":   2,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var cart CartResponse
	decode(t, w, &cart)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.True(t, cart.Subtotal.Equal(decimal.NewFromInt(90)))
	assert.True(t, cart.ShippingFee.Equal(decimal.NewFromInt(15)), "small order pays shipping")

	t.Run("same product merges", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/v1/me/cart/items", token, gin.H{
			"product_id": vase.ID,
			"quantity":   1,
		})
		require.Equal(t, http.StatusOK, w.Code)

		var cart CartResponse
		decode(t, w, &cart)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, 3, cart.Items[0].Quantity)
		assert.True(t, cart.ShippingFee.IsZero(), "135.00 ships free")
	})

	t.Run("unknown product", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/v1/me/cart/items", token, gin.H{
			"product_id": uuid.New(),
			"quantity":   1,
		})
		requireErrorCode(t, w, http.StatusNotFound, "NOT_FOUND")
	})
}

func TestCartQuantityFloorsAtOne(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.signUp(t, "Ava Jones", "ava@example.com")
	vase := s.seedProduct(t, "Sapphire Ceramic Vase", "45.00")

	w := s.do(t, http.MethodPost, "/api/v1/me/cart/items", token, gin.H{
		"product_id": vase.ID,
		"quantity":   2,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPatch, "/api/v1/me/cart/items/"+vase.ID.String(), token, gin.H{
		"delta": -100,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var cart CartResponse
	decode(t, w, &cart)
	require.Len(t, cart.Items, 1, "the line survives")
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestCartRemoveItem(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.signUp(t, "Ava Jones", "ava@example.com")
	vase := s.seedProduct(t, "Sapphire Ceramic Vase", "45.00")

	w := s.do(t, http.MethodPost, "/api/v1/me/cart/items", token, gin.H{
		"product_id": vase.ID,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodDelete, "/api/v1/me/cart/items/"+vase.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var cart CartResponse
	decode(t, w, &cart)
	assert.Empty(t, cart.Items)
	assert.True(t, cart.Subtotal.IsZero())
}

func TestCartFlagsUnavailableLines(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.signUp(t, "Ava Jones", "ava@example.com")
	vase := s.seedProduct(t, "Sapphire Ceramic Vase", "45.00")
	watch := s.seedProduct(t, "Cloud Watch Pro", "299.99")

	for _, id := range []uuid.UUID{vase.ID, watch.ID} {
		w := s.do(t, http.MethodPost, "/api/v1/me/cart/items", token, gin.H{"product_id": id})
		require.Equal(t, http.StatusOK, w.Code)
	}

	// the vase is pulled from the catalog
	delete(s.productRepo.products, vase.ID)

	w := s.do(t, http.MethodGet, "/api/v1/me/cart", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var cart CartResponse
	decode(t, w, &cart)
	require.Len(t, cart.Items, 2)
	assert.True(t, cart.Items[0].Unavailable)
	assert.False(t, cart.Items[1].Unavailable)
	assert.True(t, cart.Subtotal.Equal(decimal.NewFromFloat(299.99)))
}

func TestWishlistToggle(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.signUp(t, "Ava Jones", "ava@example.com")
	vase := s.seedProduct(t, "Sapphire Ceramic Vase", "45.00")

	togglePath := "/api/v1/me/wishlist/" + vase.ID.String() + "/toggle"

	w := s.do(t, http.MethodPost, togglePath, token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var toggled ToggleWishlistResponse
	decode(t, w, &toggled)
	assert.True(t, toggled.Wishlisted)

	w = s.do(t, http.MethodGet, "/api/v1/me/wishlist", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var wishlist WishlistResponse
	decode(t, w, &wishlist)
	assert.Equal(t, []uuid.UUID{vase.ID}, wishlist.ProductIDs)

	t.Run("second toggle removes", func(t *testing.T) {
		w := s.do(t, http.MethodPost, togglePath, token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var toggled ToggleWishlistResponse
		decode(t, w, &toggled)
		assert.False(t, toggled.Wishlisted)
	})
}
