package handler

import (
	"time"

	orderingapp "github.com/azurestore/backend/internal/application/ordering"
	"github.com/azurestore/backend/internal/domain/ordering"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderHandler handles checkout and order history endpoints
type OrderHandler struct {
	BaseHandler
	checkoutService *orderingapp.CheckoutService
	requireAuth     gin.HandlerFunc
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(checkoutService *orderingapp.CheckoutService, requireAuth gin.HandlerFunc) *OrderHandler {
	return &OrderHandler{
		checkoutService: checkoutService,
		requireAuth:     requireAuth,
	}
}

// RegisterRoutes registers order routes on the API group
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders", h.requireAuth)
	{
		orders.POST("", h.Create)
		orders.GET("", h.List)
		orders.GET("/:id", h.Get)
	}
}

// PlaceOrderRequest is the request body for checkout. The order is
// always placed for the authenticated user; totals are computed
// server-side from the catalog, never taken from the client.
type PlaceOrderRequest struct {
	Street        string `json:"street" binding:"required,max=200"`
	City          string `json:"city" binding:"required,max=100"`
	PostalCode    string `json:"postal_code" binding:"required,max=20"`
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// OrderItemResponse is a frozen order line
type OrderItemResponse struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Amount    decimal.Decimal `json:"amount"`
}

// OrderResponse is the order projection returned to clients
type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	Items           []OrderItemResponse `json:"items"`
	Subtotal        decimal.Decimal     `json:"subtotal"`
	ShippingFee     decimal.Decimal     `json:"shipping_fee"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	PaymentStatus   string              `json:"payment_status"`
	ShippingAddress string              `json:"shipping_address"`
	CreatedAt       time.Time           `json:"created_at"`
}

// PlaceOrderResponse is the checkout result
type PlaceOrderResponse struct {
	Order            OrderResponse `json:"order"`
	PaymentReference string        `json:"payment_reference"`
	DroppedLines     int           `json:"dropped_lines,omitempty"`
}

func toOrderResponse(order *ordering.Order) OrderResponse {
	items := make([]OrderItemResponse, len(order.Items))
	for i, item := range order.Items {
		items[i] = OrderItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Amount:    item.Amount,
		}
	}
	return OrderResponse{
		ID:              order.ID,
		Items:           items,
		Subtotal:        order.Subtotal,
		ShippingFee:     order.ShippingFee,
		TotalAmount:     order.TotalAmount,
		PaymentStatus:   order.PaymentStatus.String(),
		ShippingAddress: order.ShippingAddress,
		CreatedAt:       order.CreatedAt,
	}
}

// Create places an order from the shopper's cart
func (h *OrderHandler) Create(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.checkoutService.PlaceOrder(c.Request.Context(), orderingapp.PlaceOrderInput{
		UserID:        userID,
		Street:        req.Street,
		City:          req.City,
		PostalCode:    req.PostalCode,
		PaymentMethod: ordering.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, PlaceOrderResponse{
		Order:            toOrderResponse(result.Order),
		PaymentReference: result.PaymentReference,
		DroppedLines:     result.DroppedLines,
	})
}

// List returns the shopper's order history, newest first
func (h *OrderHandler) List(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.checkoutService.ListUserOrders(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]OrderResponse, len(result.Orders))
	for i := range result.Orders {
		responses[i] = toOrderResponse(&result.Orders[i])
	}

	h.SuccessWithMeta(c, responses, result.Total, 1, len(responses))
}

// Get returns one order. Owners see their own orders; admins see all.
func (h *OrderHandler) Get(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.checkoutService.GetOrder(c.Request.Context(), orderID, userID, isAdmin(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toOrderResponse(order))
}
