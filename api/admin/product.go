// Package admin holds the routers of the admin service.
package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/quochao170402/ecommerce-platform/api"
	"github.com/quochao170402/ecommerce-platform/internal/cache"
	"github.com/quochao170402/ecommerce-platform/internal/domain"
	"github.com/quochao170402/ecommerce-platform/internal/repository"
	"github.com/quochao170402/ecommerce-platform/middleware"
)

type ProductRequest struct {
	Image       string  `json:"image"`
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category" binding:"required"`
	Brand       string  `json:"brand" binding:"required"`
	Price       float64 `json:"price" binding:"gte=0"`
	SalePrice   float64 `json:"salePrice" binding:"gte=0"`
	TotalStock  int     `json:"totalStock" binding:"gte=0"`
}

func (r ProductRequest) fields() bson.M {
	return bson.M{
		"image":       r.Image,
		"title":       r.Title,
		"description": r.Description,
		"category":    r.Category,
		"brand":       r.Brand,
		"price":       r.Price,
		"salePrice":   r.SalePrice,
		"totalStock":  r.TotalStock,
	}
}

type ProductHandler struct {
	repo        repository.ProductRepository
	searchCache cache.Cache
}

// NewProductHandler evicts cached shop search results after every product
// write. A nil cache disables eviction.
func NewProductHandler(repo repository.ProductRepository, searchCache cache.Cache) *ProductHandler {
	if searchCache == nil {
		searchCache = cache.Noop{}
	}
	return &ProductHandler{repo: repo, searchCache: searchCache}
}

func RegisterProductRoutes(rg *gin.RouterGroup, repo repository.ProductRepository, searchCache cache.Cache) {
	handler := NewProductHandler(repo, searchCache)

	rg.GET("", handler.GetAll)
	rg.POST("", handler.AddProduct)
	rg.GET("/:id", middleware.ObjectIDParamMiddleware("id"), handler.GetProductByID)
	rg.PUT("/:id", middleware.ObjectIDParamMiddleware("id"), handler.UpdateProduct)
	rg.DELETE("/:id", middleware.ObjectIDParamMiddleware("id"), handler.DeleteProduct)
}

func (h *ProductHandler) GetAll(c *gin.Context) {
	products, err := h.repo.Find(c.Request.Context(), bson.M{}, repository.FindOptions{
		Sort: bson.D{{Key: "createdAt", Value: -1}},
	})
	if err != nil {
		api.InternalError(c, err, "Error retrieving products")
		return
	}
	c.JSON(http.StatusOK, api.BaseResponse{Success: true, Data: products})
}

func (h *ProductHandler) AddProduct(c *gin.Context) {
	var request ProductRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		api.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	product := domain.Product{
		Image:       request.Image,
		Title:       request.Title,
		Description: request.Description,
		Category:    request.Category,
		Brand:       request.Brand,
		Price:       request.Price,
		SalePrice:   request.SalePrice,
		TotalStock:  request.TotalStock,
	}

	if err := h.repo.Save(c.Request.Context(), &product); err != nil {
		api.InternalError(c, err, "Failed to save product")
		return
	}
	h.evictSearchResults(c)

	c.JSON(http.StatusCreated, api.BaseResponse{Success: true, Message: "Product created successfully", Data: product})
}

func (h *ProductHandler) GetProductByID(c *gin.Context) {
	product, err := h.repo.FindByID(c.Request.Context(), middleware.ObjectID(c, "id"))
	if err != nil {
		api.InternalError(c, err, "Error retrieving product")
		return
	}
	if product == nil {
		api.Fail(c, http.StatusNotFound, "Product not found")
		return
	}

	c.JSON(http.StatusOK, api.BaseResponse{Success: true, Data: product})
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var request ProductRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		api.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.repo.UpdateByID(c.Request.Context(), middleware.ObjectID(c, "id"), request.fields())
	if err != nil {
		api.InternalError(c, err, "Failed to update product")
		return
	}
	if updated == nil {
		api.Fail(c, http.StatusNotFound, "Product not found")
		return
	}
	h.evictSearchResults(c)

	c.JSON(http.StatusOK, api.BaseResponse{Success: true, Message: "Product updated successfully", Data: updated})
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	deleted, err := h.repo.DeleteByID(c.Request.Context(), middleware.ObjectID(c, "id"))
	if err != nil {
		api.InternalError(c, err, "Failed to delete product")
		return
	}
	if !deleted {
		api.Fail(c, http.StatusNotFound, "Product not found")
		return
	}
	h.evictSearchResults(c)

	c.JSON(http.StatusOK, api.BaseResponse{Success: true, Message: "Product deleted successfully"})
}

// evictSearchResults records cache failures without failing the write.
func (h *ProductHandler) evictSearchResults(c *gin.Context) {
	if _, err := h.searchCache.DeletePrefix(c.Request.Context(), cache.SearchPrefix); err != nil {
		_ = c.Error(err)
	}
}
