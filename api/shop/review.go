package shop

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/quochao170402/ecommerce-platform/api"
	"github.com/quochao170402/ecommerce-platform/internal/domain"
	"github.com/quochao170402/ecommerce-platform/internal/repository"
	"github.com/quochao170402/ecommerce-platform/middleware"
)

type ReviewRequest struct {
	ProductID     string `json:"productId" binding:"required"`
	UserID        string `json:"userId" binding:"required"`
	UserName      string `json:"userName" binding:"required"`
	ReviewMessage string `json:"reviewMessage"`
	ReviewValue   int    `json:"reviewValue" binding:"required,min=1,max=5"`
}

type ReviewHandler struct {
	reviews  repository.ReviewRepository
	products repository.ProductRepository
}

func NewReviewHandler(reviews repository.ReviewRepository, products repository.ProductRepository) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, products: products}
}

func RegisterReviewRoutes(rg *gin.RouterGroup, reviews repository.ReviewRepository, products repository.ProductRepository) {
	handler := NewReviewHandler(reviews, products)

	rg.POST("", handler.AddProductReview)
	rg.GET("/:productId", middleware.ObjectIDParamMiddleware("productId"), handler.GetProductReviews)
}

// AddProductReview stores one review per user and product and refreshes the
// product's average rating.
func (h *ReviewHandler) AddProductReview(c *gin.Context) {
	var request ReviewRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		api.Fail(c, http.StatusBadRequest, "Invalid data provided")
		return
	}
	productID, err := bson.ObjectIDFromHex(request.ProductID)
	if err != nil {
		api.Fail(c, http.StatusBadRequest, "Invalid productId")
		return
	}

	ctx := c.Request.Context()
	product, err := h.products.FindByID(ctx, productID)
	if err != nil {
		api.InternalError(c, err, "Error adding review")
		return
	}
	if product == nil {
		api.Fail(c, http.StatusNotFound, "Product not found")
		return
	}

	reviewed, err := h.reviews.HasReviewed(ctx, productID, request.UserID)
	if err != nil {
		api.InternalError(c, err, "Error adding review")
		return
	}
	if reviewed {
		api.Fail(c, http.StatusBadRequest, "You already reviewed this product")
		return
	}

	review := domain.Review{
		ProductID:     productID,
		UserID:        request.UserID,
		UserName:      request.UserName,
		ReviewMessage: request.ReviewMessage,
		ReviewValue:   request.ReviewValue,
	}
	if err := h.reviews.Save(ctx, &review); err != nil {
		api.InternalError(c, err, "Error adding review")
		return
	}

	average, err := h.reviews.AverageRating(ctx, productID)
	if err == nil {
		_, err = h.products.UpdateByID(ctx, productID, bson.M{"averageReview": average})
	}
	if err != nil {
		_ = c.Error(err)
	}

	c.JSON(http.StatusCreated, api.BaseResponse{Success: true, Data: review})
}

func (h *ReviewHandler) GetProductReviews(c *gin.Context) {
	reviews, err := h.reviews.FindByProduct(c.Request.Context(), middleware.ObjectID(c, "productId"))
	if err != nil {
		api.InternalError(c, err, "Error fetching reviews")
		return
	}
	c.JSON(http.StatusOK, api.BaseResponse{Success: true, Data: reviews})
}
