package domain

import (
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Order statuses accepted by the admin service.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

var orderStatuses = []string{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// ValidOrderStatus reports whether status is one of the known statuses.
func ValidOrderStatus(status string) bool {
	return slices.Contains(orderStatuses, status)
}

type OrderItem struct {
	ProductID bson.ObjectID `bson:"productId" json:"productId"`
	Title     string        `bson:"title" json:"title"`
	Image     string        `bson:"image" json:"image"`
	Price     float64       `bson:"price" json:"price"`
	Quantity  int           `bson:"quantity" json:"quantity"`
}

type AddressInfo struct {
	AddressID string `bson:"addressId" json:"addressId"`
	Address   string `bson:"address" json:"address"`
	City      string `bson:"city" json:"city"`
	Pincode   string `bson:"pincode" json:"pincode"`
	Phone     string `bson:"phone" json:"phone"`
	Notes     string `bson:"notes" json:"notes"`
}

type Order struct {
	Model           `bson:",inline"`
	UserID          string      `bson:"userId" json:"userId"`
	CartID          string      `bson:"cartId,omitempty" json:"cartId,omitempty"`
	CartItems       []OrderItem `bson:"cartItems" json:"cartItems"`
	AddressInfo     AddressInfo `bson:"addressInfo" json:"addressInfo"`
	OrderStatus     string      `bson:"orderStatus" json:"orderStatus"`
	PaymentMethod   string      `bson:"paymentMethod" json:"paymentMethod"`
	PaymentStatus   string      `bson:"paymentStatus" json:"paymentStatus"`
	TotalAmount     float64     `bson:"totalAmount" json:"totalAmount"`
	OrderDate       time.Time   `bson:"orderDate" json:"orderDate"`
	OrderUpdateDate time.Time   `bson:"orderUpdateDate" json:"orderUpdateDate"`
}

func (Order) CollectionName() string {
	return "orders"
}

// Total sums price times quantity over the items.
func (o Order) Total() float64 {
	var total float64
	for _, item := range o.CartItems {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
