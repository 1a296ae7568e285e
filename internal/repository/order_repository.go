package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/quochao170402/ecommerce-platform/internal/domain"
)

type OrderRepository interface {
	BaseRepository[domain.Order]

	FindAll(ctx context.Context) ([]domain.Order, error)
	FindByUser(ctx context.Context, userID string) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id bson.ObjectID, status string) (*domain.Order, error)
}

type orderRepository struct {
	*baseRepository[domain.Order]
}

func NewOrderRepository(db *mongo.Database) OrderRepository {
	return &orderRepository{baseRepository: newBaseRepository[domain.Order](db)}
}

var newestOrderFirst = bson.D{{Key: "orderDate", Value: -1}}

func (o *orderRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	return o.Find(ctx, bson.M{}, FindOptions{Sort: newestOrderFirst})
}

func (o *orderRepository) FindByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return o.Find(ctx, bson.M{"userId": userID}, FindOptions{Sort: newestOrderFirst})
}

func (o *orderRepository) UpdateStatus(ctx context.Context, id bson.ObjectID, status string) (*domain.Order, error) {
	return o.UpdateByID(ctx, id, bson.M{
		"orderStatus":     status,
		"orderUpdateDate": time.Now().UTC(),
	})
}
