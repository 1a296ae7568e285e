package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/quochao170402/ecommerce-platform/internal/domain"
)

type ReviewRepository interface {
	BaseRepository[domain.Review]

	FindByProduct(ctx context.Context, productID bson.ObjectID) ([]domain.Review, error)
	HasReviewed(ctx context.Context, productID bson.ObjectID, userID string) (bool, error)
	AverageRating(ctx context.Context, productID bson.ObjectID) (float64, error)
}

type reviewRepository struct {
	*baseRepository[domain.Review]
}

func NewReviewRepository(db *mongo.Database) ReviewRepository {
	return &reviewRepository{baseRepository: newBaseRepository[domain.Review](db)}
}

func (r *reviewRepository) FindByProduct(ctx context.Context, productID bson.ObjectID) ([]domain.Review, error) {
	return r.Find(ctx, bson.M{"productId": productID}, FindOptions{Sort: bson.D{{Key: "createdAt", Value: -1}}})
}

func (r *reviewRepository) HasReviewed(ctx context.Context, productID bson.ObjectID, userID string) (bool, error) {
	return r.Exists(ctx, bson.M{"productId": productID, "userId": userID})
}

// AverageRating returns 0 for a product without reviews.
func (r *reviewRepository) AverageRating(ctx context.Context, productID bson.ObjectID) (float64, error) {
	cursor, err := r.collection.Aggregate(ctx, averageRatingPipeline(productID))
	if err != nil {
		return 0, fmt.Errorf("aggregate reviews: %w", err)
	}

	var rows []struct {
		Average float64 `bson:"average"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, fmt.Errorf("decode review average: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Average, nil
}

func averageRatingPipeline(productID bson.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "productId", Value: productID}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$productId"},
			{Key: "average", Value: bson.D{{Key: "$avg", Value: "$reviewValue"}}},
		}}},
	}
}
