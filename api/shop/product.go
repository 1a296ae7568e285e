// Package shop holds the routers of the shop service.
package shop

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quochao170402/ecommerce-platform/api"
	"github.com/quochao170402/ecommerce-platform/internal/repository"
	"github.com/quochao170402/ecommerce-platform/middleware"
)

type ProductHandler struct {
	repo repository.ProductRepository
}

func NewProductHandler(repo repository.ProductRepository) *ProductHandler {
	return &ProductHandler{repo: repo}
}

func RegisterProductRoutes(rg *gin.RouterGroup, repo repository.ProductRepository) {
	handler := NewProductHandler(repo)

	rg.GET("", handler.GetFilteredProducts)
	rg.GET("/:id", middleware.ObjectIDParamMiddleware("id"), handler.GetProductDetails)
}

// GetFilteredProducts accepts comma separated category and brand lists and
// a sort of price-asc, price-desc or newest.
func (h *ProductHandler) GetFilteredProducts(c *gin.Context) {
	filter := repository.ProductFilter{
		Categories: api.SplitList(c.Query("category")),
		Brands:     api.SplitList(c.Query("brand")),
		Sort:       c.DefaultQuery("sort", repository.SortPriceAsc),
	}

	switch filter.Sort {
	case repository.SortPriceAsc, repository.SortPriceDesc, repository.SortNewest:
	default:
		api.Fail(c, http.StatusBadRequest, "Invalid sort option")
		return
	}

	products, err := h.repo.List(c.Request.Context(), filter)
	if err != nil {
		api.InternalError(c, err, "Error retrieving products")
		return
	}
	c.JSON(http.StatusOK, api.BaseResponse{Success: true, Data: products})
}

func (h *ProductHandler) GetProductDetails(c *gin.Context) {
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
