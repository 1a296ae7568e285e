package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quochao170402/ecommerce-platform/api"
	"github.com/quochao170402/ecommerce-platform/internal/domain"
	"github.com/quochao170402/ecommerce-platform/internal/repository"
	"github.com/quochao170402/ecommerce-platform/middleware"
)

type OrderStatusRequest struct {
	OrderStatus string `json:"orderStatus" binding:"required"`
}

type OrderHandler struct {
	repo repository.OrderRepository
}

func NewOrderHandler(repo repository.OrderRepository) *OrderHandler {
	return &OrderHandler{repo: repo}
}

func RegisterOrderRoutes(rg *gin.RouterGroup, repo repository.OrderRepository) {
	handler := NewOrderHandler(repo)

	rg.GET("", handler.GetAll)
	rg.GET("/:id", middleware.ObjectIDParamMiddleware("id"), handler.GetOrderByID)
	rg.PUT("/:id/status", middleware.ObjectIDParamMiddleware("id"), handler.UpdateOrderStatus)
}

func (h *OrderHandler) GetAll(c *gin.Context) {
	orders, err := h.repo.FindAll(c.Request.Context())
	if err != nil {
		api.InternalError(c, err, "Error retrieving orders")
		return
	}
	c.JSON(http.StatusOK, api.BaseResponse{Success: true, Data: orders})
}

func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	order, err := h.repo.FindByID(c.Request.Context(), middleware.ObjectID(c, "id"))
	if err != nil {
		api.InternalError(c, err, "Error retrieving order")
		return
	}
	if order == nil {
		api.Fail(c, http.StatusNotFound, "Order not found")
		return
	}
	c.JSON(http.StatusOK, api.BaseResponse{Success: true, Data: order})
}

func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var request OrderStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		api.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !domain.ValidOrderStatus(request.OrderStatus) {
		api.Fail(c, http.StatusBadRequest, "Invalid order status")
		return
	}

	order, err := h.repo.UpdateStatus(c.Request.Context(), middleware.ObjectID(c, "id"), request.OrderStatus)
	if err != nil {
		api.InternalError(c, err, "Failed to update order status")
		return
	}
	if order == nil {
		api.Fail(c, http.StatusNotFound, "Order not found")
		return
	}

	c.JSON(http.StatusOK, api.BaseResponse{Success: true, Message: "Order status updated successfully", Data: order})
}
