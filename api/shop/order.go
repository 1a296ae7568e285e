package shop

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/quochao170402/ecommerce-platform/api"
	"github.com/quochao170402/ecommerce-platform/internal/domain"
	"github.com/quochao170402/ecommerce-platform/internal/repository"
	"github.com/quochao170402/ecommerce-platform/middleware"
)

const paymentStatusPending = "pending"

type OrderItemRequest struct {
	ProductID string  `json:"productId" binding:"required"`
	Title     string  `json:"title"`
	Image     string  `json:"image"`
	Price     float64 `json:"price" binding:"gte=0"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
}

type OrderRequest struct {
	UserID        string             `json:"userId" binding:"required"`
	CartID        string             `json:"cartId"`
	CartItems     []OrderItemRequest `json:"cartItems" binding:"required,min=1,dive"`
	AddressInfo   domain.AddressInfo `json:"addressInfo"`
	PaymentMethod string             `json:"paymentMethod" binding:"required"`
}

type OrderHandler struct {
	repo repository.OrderRepository
}

func NewOrderHandler(repo repository.OrderRepository) *OrderHandler {
	return &OrderHandler{repo: repo}
}

func RegisterOrderRoutes(rg *gin.RouterGroup, repo repository.OrderRepository) {
	handler := NewOrderHandler(repo)

	rg.POST("", handler.CreateOrder)
	rg.GET("/list/:userId", handler.GetAllOrdersByUser)
	rg.GET("/details/:id", middleware.ObjectIDParamMiddleware("id"), handler.GetOrderDetails)
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var request OrderRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		api.Fail(c, http.StatusBadRequest, "Invalid data provided")
		return
	}

	items := make([]domain.OrderItem, 0, len(request.CartItems))
	for _, item := range request.CartItems {
		productID, err := bson.ObjectIDFromHex(item.ProductID)
		if err != nil {
			api.Fail(c, http.StatusBadRequest, "Invalid productId")
			return
		}
		items = append(items, domain.OrderItem{
			ProductID: productID,
			Title:     item.Title,
			Image:     item.Image,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	now := time.Now().UTC()
	order := domain.Order{
		UserID:          request.UserID,
		CartID:          request.CartID,
		CartItems:       items,
		AddressInfo:     request.AddressInfo,
		OrderStatus:     domain.OrderStatusPending,
		PaymentMethod:   request.PaymentMethod,
		PaymentStatus:   paymentStatusPending,
		OrderDate:       now,
		OrderUpdateDate: now,
	}
	order.TotalAmount = order.Total()

	if err := h.repo.Save(c.Request.Context(), &order); err != nil {
		api.InternalError(c, err, "Error creating order")
		return
	}

	c.JSON(http.StatusCreated, api.BaseResponse{Success: true, Message: "Order created successfully", Data: order})
}

func (h *OrderHandler) GetAllOrdersByUser(c *gin.Context) {
	orders, err := h.repo.FindByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		api.InternalError(c, err, "Error fetching orders")
		return
	}
	if len(orders) == 0 {
		api.Fail(c, http.StatusNotFound, "No orders found")
		return
	}
	c.JSON(http.StatusOK, api.BaseResponse{Success: true, Data: orders})
}

func (h *OrderHandler) GetOrderDetails(c *gin.Context) {
	order, err := h.repo.FindByID(c.Request.Context(), middleware.ObjectID(c, "id"))
	if err != nil {
		api.InternalError(c, err, "Error fetching order")
		return
	}
	if order == nil {
		api.Fail(c, http.StatusNotFound, "Order not found")
		return
	}
	c.JSON(http.StatusOK, api.BaseResponse{Success: true, Data: order})
}
