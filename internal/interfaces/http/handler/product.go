package handler

import (
	"time"

	catalogapp "github.com/azurestore/backend/internal/application/catalog"
	"github.com/azurestore/backend/internal/domain/catalog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductHandler handles catalog endpoints. Browsing is public;
// mutations are admin-only.
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
	requireAuth    gin.HandlerFunc
	requireAdmin   gin.HandlerFunc
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *catalogapp.ProductService, requireAuth, requireAdmin gin.HandlerFunc) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		requireAuth:    requireAuth,
		requireAdmin:   requireAdmin,
	}
}

// RegisterRoutes registers product routes on the API group
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.GET("", h.List)
		products.GET("/:id", h.Get)
		products.POST("", h.requireAuth, h.requireAdmin, h.Create)
		products.PUT("/:id", h.requireAuth, h.requireAdmin, h.Update)
		products.DELETE("/:id", h.requireAuth, h.requireAdmin, h.Delete)
	}
}

// ListProductsRequest holds catalog browsing query parameters
type ListProductsRequest struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size" binding:"omitempty,max=100"`
}

// CreateProductRequest is the request body for creating a product
type CreateProductRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"max=2000"`
	Category    string `json:"category" binding:"max=100"`
	Price       string `json:"price" binding:"required"`
	ImageURL    string `json:"image_url" binding:"omitempty,url,max=500"`
	Stock       int    `json:"stock" binding:"min=0"`
}

// UpdateProductRequest is the request body for updating a product.
// Price, image URL and stock are optional; omitted fields keep their
// current values.
type UpdateProductRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=200"`
	Description string  `json:"description" binding:"max=2000"`
	Category    string  `json:"category" binding:"max=100"`
	Price       *string `json:"price"`
	ImageURL    *string `json:"image_url" binding:"omitempty,max=500"`
	Stock       *int    `json:"stock" binding:"omitempty,min=0"`
}

// ProductResponse is the catalog projection returned to clients
type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	Stock       int             `json:"stock"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func toProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		Stock:       p.Stock,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// List returns the catalog, filtered and paginated
func (h *ProductHandler) List(c *gin.Context) {
	var req ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.productService.List(c.Request.Context(), catalogapp.ListProductsInput{
		Search:   req.Search,
		Category: req.Category,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]ProductResponse, len(result.Products))
	for i := range result.Products {
		responses[i] = toProductResponse(&result.Products[i])
	}

	h.SuccessWithMeta(c, responses, result.Total, result.Page, result.PageSize)
}

// Get returns a single product
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toProductResponse(product))
}

// Create adds a product to the catalog
func (h *ProductHandler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	product, err := h.productService.Create(c.Request.Context(), catalogapp.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Stock:       req.Stock,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toProductResponse(product))
}

// Update edits a product
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, catalogapp.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Stock:       req.Stock,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toProductResponse(product))
}

// Delete removes a product from the catalog. Order snapshots keep their
// copies; carts that reference it surface the line as unavailable.
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
