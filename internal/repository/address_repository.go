package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/quochao170402/ecommerce-platform/internal/domain"
)

// AddressRepository scopes every lookup to the owning user.
type AddressRepository interface {
	BaseRepository[domain.Address]

	FindByUser(ctx context.Context, userID string) ([]domain.Address, error)
	UpdateForUser(ctx context.Context, userID string, id bson.ObjectID, fields bson.M) (*domain.Address, error)
	DeleteForUser(ctx context.Context, userID string, id bson.ObjectID) (bool, error)
}

type addressRepository struct {
	*baseRepository[domain.Address]
}

func NewAddressRepository(db *mongo.Database) AddressRepository {
	return &addressRepository{baseRepository: newBaseRepository[domain.Address](db)}
}

func (a *addressRepository) FindByUser(ctx context.Context, userID string) ([]domain.Address, error) {
	return a.Find(ctx, bson.M{"userId": userID}, FindOptions{Sort: bson.D{{Key: "createdAt", Value: 1}}})
}

func (a *addressRepository) UpdateForUser(ctx context.Context, userID string, id bson.ObjectID, fields bson.M) (*domain.Address, error) {
	return a.UpdateOne(ctx, bson.M{"_id": id, "userId": userID}, fields)
}

func (a *addressRepository) DeleteForUser(ctx context.Context, userID string, id bson.ObjectID) (bool, error) {
	return a.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
}
