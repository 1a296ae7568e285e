package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/quochao170402/ecommerce-platform/internal/domain"
)

type CartRepository interface {
	BaseRepository[domain.Cart]

	FindByUser(ctx context.Context, userID string) (*domain.Cart, error)
	SetItems(ctx context.Context, id bson.ObjectID, items []domain.CartItem) (*domain.Cart, error)
}

type cartRepository struct {
	*baseRepository[domain.Cart]
}

func NewCartRepository(db *mongo.Database) CartRepository {
	return &cartRepository{baseRepository: newBaseRepository[domain.Cart](db)}
}

func (c *cartRepository) FindByUser(ctx context.Context, userID string) (*domain.Cart, error) {
	return c.FindOne(ctx, bson.M{"userId": userID})
}

func (c *cartRepository) SetItems(ctx context.Context, id bson.ObjectID, items []domain.CartItem) (*domain.Cart, error) {
	if items == nil {
		items = []domain.CartItem{}
	}
	return c.UpdateByID(ctx, id, bson.M{"items": items})
}
