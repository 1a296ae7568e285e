package shop

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/quochao170402/ecommerce-platform/api"
	"github.com/quochao170402/ecommerce-platform/internal/domain"
	"github.com/quochao170402/ecommerce-platform/internal/repository"
	"github.com/quochao170402/ecommerce-platform/middleware"
)

type CartItemRequest struct {
	UserID    string `json:"userId" binding:"required"`
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// CartItemView is a cart line joined with the current product details.
type CartItemView struct {
	ProductID bson.ObjectID `json:"productId"`
	Image     string        `json:"image"`
	Title     string        `json:"title"`
	Price     float64       `json:"price"`
	SalePrice float64       `json:"salePrice"`
	Quantity  int           `json:"quantity"`
}

type CartView struct {
	ID     bson.ObjectID  `json:"_id"`
	UserID string         `json:"userId"`
	Items  []CartItemView `json:"items"`
}

type CartHandler struct {
	carts    repository.CartRepository
	products repository.ProductRepository
}

func NewCartHandler(carts repository.CartRepository, products repository.ProductRepository) *CartHandler {
	return &CartHandler{carts: carts, products: products}
}

func RegisterCartRoutes(rg *gin.RouterGroup, carts repository.CartRepository, products repository.ProductRepository) {
	handler := NewCartHandler(carts, products)

	rg.POST("", handler.AddToCart)
	rg.GET("/:userId", handler.FetchCartItems)
	rg.PUT("", handler.UpdateCartItemQuantity)
	rg.DELETE("/:userId/:productId", middleware.ObjectIDParamMiddleware("productId"), handler.DeleteCartItem)
}

func (h *CartHandler) AddToCart(c *gin.Context) {
	var request CartItemRequest
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
		api.InternalError(c, err, "Error adding to cart")
		return
	}
	if product == nil {
		api.Fail(c, http.StatusNotFound, "Product not found")
		return
	}

	cart, err := h.carts.FindByUser(ctx, request.UserID)
	if err != nil {
		api.InternalError(c, err, "Error adding to cart")
		return
	}

	if cart == nil {
		cart = &domain.Cart{
			UserID: request.UserID,
			Items:  []domain.CartItem{{ProductID: productID, Quantity: request.Quantity}},
		}
		if err := h.carts.Save(ctx, cart); err != nil {
			api.InternalError(c, err, "Error adding to cart")
			return
		}
	} else {
		items := append([]domain.CartItem(nil), cart.Items...)
		if i := cart.ItemIndex(productID); i >= 0 {
			items[i].Quantity += request.Quantity
		} else {
			items = append(items, domain.CartItem{ProductID: productID, Quantity: request.Quantity})
		}
		if cart, err = h.carts.SetItems(ctx, cart.ID, items); err != nil {
			api.InternalError(c, err, "Error adding to cart")
			return
		}
		if cart == nil {
			api.Fail(c, http.StatusNotFound, "Cart not found")
			return
		}
	}

	h.respond(c, http.StatusOK, cart)
}

func (h *CartHandler) FetchCartItems(c *gin.Context) {
	cart, err := h.carts.FindByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		api.InternalError(c, err, "Error fetching cart")
		return
	}
	if cart == nil {
		api.Fail(c, http.StatusNotFound, "Cart not found")
		return
	}
	h.respond(c, http.StatusOK, cart)
}

func (h *CartHandler) UpdateCartItemQuantity(c *gin.Context) {
	var request CartItemRequest
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
	cart, err := h.carts.FindByUser(ctx, request.UserID)
	if err != nil {
		api.InternalError(c, err, "Error updating cart")
		return
	}
	if cart == nil {
		api.Fail(c, http.StatusNotFound, "Cart not found")
		return
	}

	i := cart.ItemIndex(productID)
	if i < 0 {
		api.Fail(c, http.StatusNotFound, "Cart item not present")
		return
	}
	items := append([]domain.CartItem(nil), cart.Items...)
	items[i].Quantity = request.Quantity

	h.saveItems(c, cart.ID, items, "Error updating cart")
}

func (h *CartHandler) DeleteCartItem(c *gin.Context) {
	productID := middleware.ObjectID(c, "productId")

	ctx := c.Request.Context()
	cart, err := h.carts.FindByUser(ctx, c.Param("userId"))
	if err != nil {
		api.InternalError(c, err, "Error deleting cart item")
		return
	}
	if cart == nil {
		api.Fail(c, http.StatusNotFound, "Cart not found")
		return
	}

	i := cart.ItemIndex(productID)
	if i < 0 {
		api.Fail(c, http.StatusNotFound, "Cart item not present")
		return
	}
	items := make([]domain.CartItem, 0, len(cart.Items)-1)
	items = append(items, cart.Items[:i]...)
	items = append(items, cart.Items[i+1:]...)

	h.saveItems(c, cart.ID, items, "Error deleting cart item")
}

func (h *CartHandler) saveItems(c *gin.Context, cartID bson.ObjectID, items []domain.CartItem, failure string) {
	cart, err := h.carts.SetItems(c.Request.Context(), cartID, items)
	if err != nil {
		api.InternalError(c, err, failure)
		return
	}
	if cart == nil {
		api.Fail(c, http.StatusNotFound, "Cart not found")
		return
	}
	h.respond(c, http.StatusOK, cart)
}

func (h *CartHandler) respond(c *gin.Context, status int, cart *domain.Cart) {
	view, err := h.populate(c.Request.Context(), cart)
	if err != nil {
		api.InternalError(c, err, "Error fetching cart")
		return
	}
	c.JSON(status, api.BaseResponse{Success: true, Data: view})
}

// populate joins cart lines with their products. Lines whose product no
// longer exists are left out.
func (h *CartHandler) populate(ctx context.Context, cart *domain.Cart) (CartView, error) {
	view := CartView{ID: cart.ID, UserID: cart.UserID, Items: []CartItemView{}}
	if len(cart.Items) == 0 {
		return view, nil
	}

	ids := make([]bson.ObjectID, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}
	products, err := h.products.FindByIDs(ctx, ids)
	if err != nil {
		return view, err
	}

	byID := make(map[bson.ObjectID]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	for _, item := range cart.Items {
		p, ok := byID[item.ProductID]
		if !ok {
			continue
		}
		view.Items = append(view.Items, CartItemView{
			ProductID: item.ProductID,
			Image:     p.Image,
			Title:     p.Title,
			Price:     p.Price,
			SalePrice: p.SalePrice,
			Quantity:  item.Quantity,
		})
	}
	return view, nil
}
