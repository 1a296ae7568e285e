package shop

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"github.com/quochao170402/ecommerce-platform/api"
	"github.com/quochao170402/ecommerce-platform/internal/cache"
	"github.com/quochao170402/ecommerce-platform/internal/domain"
	"github.com/quochao170402/ecommerce-platform/internal/repository"
)

type SearchHandler struct {
	repo  repository.ProductRepository
	cache cache.Cache
}

// NewSearchHandler falls back to no caching when c is nil.
func NewSearchHandler(repo repository.ProductRepository, c cache.Cache) *SearchHandler {
	if c == nil {
		c = cache.Noop{}
	}
	return &SearchHandler{repo: repo, cache: c}
}

func RegisterSearchRoutes(rg *gin.RouterGroup, repo repository.ProductRepository, c cache.Cache) {
	handler := NewSearchHandler(repo, c)

	rg.GET("/:keyword", handler.SearchProducts)
}

// SearchProducts serves cached results when available. Cache failures are
// recorded and the search falls through to the database.
func (h *SearchHandler) SearchProducts(c *gin.Context) {
	keyword := strings.TrimSpace(c.Param("keyword"))
	if keyword == "" {
		api.Fail(c, http.StatusBadRequest, "Keyword is required and must be in string format")
		return
	}

	ctx := c.Request.Context()
	key := cache.SearchPrefix + keyword

	raw, hit, err := h.cache.Get(ctx, key)
	if err != nil {
		_ = c.Error(err)
	}
	if hit {
		var cached []domain.Product
		if err := json.Unmarshal(raw, &cached); err == nil {
			c.Header("X-Cache", "HIT")
			c.JSON(http.StatusOK, api.BaseResponse{Success: true, Data: cached})
			return
		}
	}

	products, err := h.repo.Search(ctx, keyword)
	if err != nil {
		api.InternalError(c, err, "Error searching products")
		return
	}

	if encoded, err := json.Marshal(products); err == nil {
		if err := h.cache.Set(ctx, key, encoded); err != nil {
			_ = c.Error(err)
		}
	}

	c.Header("X-Cache", "MISS")
	c.JSON(http.StatusOK, api.BaseResponse{Success: true, Data: products})
}
