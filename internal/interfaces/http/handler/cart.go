package handler

import (
	identityapp "github.com/azurestore/backend/internal/application/identity"
	"github.com/azurestore/backend/internal/domain/ordering"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartHandler handles the authenticated shopper's cart and wishlist
type CartHandler struct {
	BaseHandler
	cartService *identityapp.CartService
	requireAuth gin.HandlerFunc
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *identityapp.CartService, requireAuth gin.HandlerFunc) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		requireAuth: requireAuth,
	}
}

// RegisterRoutes registers cart and wishlist routes on the API group
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	me := rg.Group("/me", h.requireAuth)
	{
		me.GET("/cart", h.GetCart)
		me.POST("/cart/items", h.AddItem)
		me.PATCH("/cart/items/:productId", h.UpdateItem)
		me.DELETE("/cart/items/:productId", h.RemoveItem)
		me.GET("/wishlist", h.GetWishlist)
		me.POST("/wishlist/:productId/toggle", h.ToggleWishlist)
	}
}

// AddCartItemRequest is the request body for adding a product to the cart
type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"omitempty,min=1"`
}

// UpdateCartItemRequest carries a signed quantity delta for a cart line
type UpdateCartItemRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// CartItemResponse is one resolved cart line
type CartItemResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	Name        string          `json:"name,omitempty"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url,omitempty"`
	Quantity    int             `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
	Unavailable bool            `json:"unavailable,omitempty"`
}

// CartResponse is the resolved cart with checkout totals previewed from
// the current catalog prices
type CartResponse struct {
	Items       []CartItemResponse `json:"items"`
	Subtotal    decimal.Decimal    `json:"subtotal"`
	ShippingFee decimal.Decimal    `json:"shipping_fee"`
	Total       decimal.Decimal    `json:"total"`
}

// WishlistResponse is the resolved wishlist
type WishlistResponse struct {
	ProductIDs []uuid.UUID `json:"product_ids"`
}

// ToggleWishlistResponse reports the post-toggle membership
type ToggleWishlistResponse struct {
	ProductID  uuid.UUID `json:"product_id"`
	Wishlisted bool      `json:"wishlisted"`
}

func toCartResponse(cart *identityapp.CartResult) CartResponse {
	items := make([]CartItemResponse, len(cart.Items))
	for i, item := range cart.Items {
		items[i] = CartItemResponse{
			ProductID:   item.ProductID,
			Name:        item.Name,
			Price:       item.Price,
			ImageURL:    item.ImageURL,
			Quantity:    item.Quantity,
			Amount:      item.Amount,
			Unavailable: item.Unavailable,
		}
	}

	shippingFee := ordering.CalculateShippingFee(cart.Subtotal)
	return CartResponse{
		Items:       items,
		Subtotal:    cart.Subtotal,
		ShippingFee: shippingFee,
		Total:       cart.Subtotal.Add(shippingFee),
	}
}

// GetCart returns the shopper's cart resolved against the live catalog
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	cart, err := h.cartService.GetCart(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toCartResponse(cart))
}

// AddItem puts a product in the cart, merging with an existing line
func (h *CartHandler) AddItem(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	cart, err := h.cartService.AddToCart(c.Request.Context(), identityapp.AddToCartInput{
		UserID:    userID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toCartResponse(cart))
}

// UpdateItem applies a signed quantity delta to a cart line
func (h *CartHandler) UpdateItem(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	cart, err := h.cartService.UpdateQuantity(c.Request.Context(), identityapp.UpdateCartQuantityInput{
		UserID:    userID,
		ProductID: productID,
		Delta:     req.Delta,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toCartResponse(cart))
}

// RemoveItem drops a product's line from the cart
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	cart, err := h.cartService.RemoveFromCart(c.Request.Context(), userID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toCartResponse(cart))
}

// GetWishlist returns the shopper's wishlist
func (h *CartHandler) GetWishlist(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	wishlist, err := h.cartService.GetWishlist(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, WishlistResponse{ProductIDs: wishlist.ProductIDs})
}

// ToggleWishlist flips a product's wishlist membership
func (h *CartHandler) ToggleWishlist(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	wishlisted, err := h.cartService.ToggleWishlist(c.Request.Context(), userID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ToggleWishlistResponse{ProductID: productID, Wishlisted: wishlisted})
}
