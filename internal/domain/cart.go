package domain

import "go.mongodb.org/mongo-driver/v2/bson"

type CartItem struct {
	ProductID bson.ObjectID `bson:"productId" json:"productId"`
	Quantity  int           `bson:"quantity" json:"quantity"`
}

// Cart holds one user's items. There is at most one cart per user.
type Cart struct {
	Model  `bson:",inline"`
	UserID string     `bson:"userId" json:"userId"`
	Items  []CartItem `bson:"items" json:"items"`
}

func (Cart) CollectionName() string {
	return "carts"
}

// ItemIndex returns the position of productID in the cart, or -1.
func (c *Cart) ItemIndex(productID bson.ObjectID) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}
