// Package repository provides MongoDB persistence for the domain entities.
package repository

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/quochao170402/ecommerce-platform/internal/domain"
)

// FindOptions controls ordering and size of a Find.
type FindOptions struct {
	Sort  bson.D
	Limit int64
}

// BaseRepository defines the common operations for all entities.
// Lookups that match nothing return a nil entity and a nil error.
type BaseRepository[T domain.Entity] interface {
	Save(ctx context.Context, entity *T) error
	FindByID(ctx context.Context, id bson.ObjectID) (*T, error)
	FindOne(ctx context.Context, filter bson.M) (*T, error)
	Find(ctx context.Context, filter bson.M, opts FindOptions) ([]T, error)
	UpdateByID(ctx context.Context, id bson.ObjectID, fields bson.M) (*T, error)
	UpdateOne(ctx context.Context, filter bson.M, fields bson.M) (*T, error)
	DeleteByID(ctx context.Context, id bson.ObjectID) (bool, error)
	DeleteOne(ctx context.Context, filter bson.M) (bool, error)
	Exists(ctx context.Context, filter bson.M) (bool, error)
}

type baseRepository[T domain.Entity] struct {
	collection *mongo.Collection
}

// NewBaseRepository binds a repository to the entity's collection.
func NewBaseRepository[T domain.Entity](db *mongo.Database) BaseRepository[T] {
	return newBaseRepository[T](db)
}

func newBaseRepository[T domain.Entity](db *mongo.Database) *baseRepository[T] {
	var zero T
	return &baseRepository[T]{collection: db.Collection(zero.CollectionName())}
}

// Save inserts an entity, assigning an id and timestamps when supported.
func (r *baseRepository[T]) Save(ctx context.Context, entity *T) error {
	if identifiable, ok := any(entity).(domain.IdentifiableEntity); ok && identifiable.GetID().IsZero() {
		identifiable.SetID(bson.NewObjectID())
	}

	if timestamped, ok := any(entity).(domain.TimestampedEntity); ok {
		now := time.Now().UTC()
		timestamped.SetCreatedAt(now)
		timestamped.SetUpdatedAt(now)
	}

	if _, err := r.collection.InsertOne(ctx, entity); err != nil {
		return fmt.Errorf("insert into %s: %w", r.collection.Name(), err)
	}
	return nil
}

func (r *baseRepository[T]) FindByID(ctx context.Context, id bson.ObjectID) (*T, error) {
	return r.FindOne(ctx, bson.M{"_id": id})
}

func (r *baseRepository[T]) FindOne(ctx context.Context, filter bson.M) (*T, error) {
	var entity T
	err := r.collection.FindOne(ctx, filter).Decode(&entity)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", r.collection.Name(), err)
	}
	return &entity, nil
}

func (r *baseRepository[T]) Find(ctx context.Context, filter bson.M, opts FindOptions) ([]T, error) {
	if filter == nil {
		filter = bson.M{}
	}

	findOpts := options.Find()
	if len(opts.Sort) > 0 {
		findOpts.SetSort(opts.Sort)
	}
	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}

	cursor, err := r.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", r.collection.Name(), err)
	}

	results := make([]T, 0)
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.collection.Name(), err)
	}
	return results, nil
}

func (r *baseRepository[T]) UpdateByID(ctx context.Context, id bson.ObjectID, fields bson.M) (*T, error) {
	return r.UpdateOne(ctx, bson.M{"_id": id}, fields)
}

// UpdateOne sets fields on the first match and returns the updated entity.
func (r *baseRepository[T]) UpdateOne(ctx context.Context, filter bson.M, fields bson.M) (*T, error) {
	set := maps.Clone(fields)
	if set == nil {
		set = bson.M{}
	}
	var zero T
	if _, ok := any(&zero).(domain.TimestampedEntity); ok {
		set["updatedAt"] = time.Now().UTC()
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var entity T
	err := r.collection.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&entity)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update in %s: %w", r.collection.Name(), err)
	}
	return &entity, nil
}

func (r *baseRepository[T]) DeleteByID(ctx context.Context, id bson.ObjectID) (bool, error) {
	return r.DeleteOne(ctx, bson.M{"_id": id})
}

func (r *baseRepository[T]) DeleteOne(ctx context.Context, filter bson.M) (bool, error) {
	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("delete from %s: %w", r.collection.Name(), err)
	}
	return result.DeletedCount > 0, nil
}

func (r *baseRepository[T]) Exists(ctx context.Context, filter bson.M) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count in %s: %w", r.collection.Name(), err)
	}
	return count > 0, nil
}
