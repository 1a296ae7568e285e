// Package mocks provides testify mocks of the repository interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/quochao170402/ecommerce-platform/internal/domain"
	"github.com/quochao170402/ecommerce-platform/internal/repository"
)

var (
	_ repository.ProductRepository = (*ProductRepository)(nil)
	_ repository.OrderRepository   = (*OrderRepository)(nil)
	_ repository.CartRepository    = (*CartRepository)(nil)
	_ repository.AddressRepository = (*AddressRepository)(nil)
	_ repository.ReviewRepository  = (*ReviewRepository)(nil)
)

// BaseRepository mocks repository.BaseRepository.
type BaseRepository[T domain.Entity] struct {
	mock.Mock
}

func one[T any](v any) *T {
	entity, _ := v.(*T)
	return entity
}

func many[T any](v any) []T {
	entities, _ := v.([]T)
	return entities
}

func (m *BaseRepository[T]) Save(ctx context.Context, entity *T) error {
	return m.Called(ctx, entity).Error(0)
}

func (m *BaseRepository[T]) FindByID(ctx context.Context, id bson.ObjectID) (*T, error) {
	args := m.Called(ctx, id)
	return one[T](args.Get(0)), args.Error(1)
}

func (m *BaseRepository[T]) FindOne(ctx context.Context, filter bson.M) (*T, error) {
	args := m.Called(ctx, filter)
	return one[T](args.Get(0)), args.Error(1)
}

func (m *BaseRepository[T]) Find(ctx context.Context, filter bson.M, opts repository.FindOptions) ([]T, error) {
	args := m.Called(ctx, filter, opts)
	return many[T](args.Get(0)), args.Error(1)
}

func (m *BaseRepository[T]) UpdateByID(ctx context.Context, id bson.ObjectID, fields bson.M) (*T, error) {
	args := m.Called(ctx, id, fields)
	return one[T](args.Get(0)), args.Error(1)
}

func (m *BaseRepository[T]) UpdateOne(ctx context.Context, filter bson.M, fields bson.M) (*T, error) {
	args := m.Called(ctx, filter, fields)
	return one[T](args.Get(0)), args.Error(1)
}

func (m *BaseRepository[T]) DeleteByID(ctx context.Context, id bson.ObjectID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *BaseRepository[T]) DeleteOne(ctx context.Context, filter bson.M) (bool, error) {
	args := m.Called(ctx, filter)
	return args.Bool(0), args.Error(1)
}

func (m *BaseRepository[T]) Exists(ctx context.Context, filter bson.M) (bool, error) {
	args := m.Called(ctx, filter)
	return args.Bool(0), args.Error(1)
}

type ProductRepository struct {
	BaseRepository[domain.Product]
}

func (m *ProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	args := m.Called(ctx, filter)
	return many[domain.Product](args.Get(0)), args.Error(1)
}

func (m *ProductRepository) FindByIDs(ctx context.Context, ids []bson.ObjectID) ([]domain.Product, error) {
	args := m.Called(ctx, ids)
	return many[domain.Product](args.Get(0)), args.Error(1)
}

func (m *ProductRepository) Search(ctx context.Context, keyword string) ([]domain.Product, error) {
	args := m.Called(ctx, keyword)
	return many[domain.Product](args.Get(0)), args.Error(1)
}

type OrderRepository struct {
	BaseRepository[domain.Order]
}

func (m *OrderRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	return many[domain.Order](args.Get(0)), args.Error(1)
}

func (m *OrderRepository) FindByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	args := m.Called(ctx, userID)
	return many[domain.Order](args.Get(0)), args.Error(1)
}

func (m *OrderRepository) UpdateStatus(ctx context.Context, id bson.ObjectID, status string) (*domain.Order, error) {
	args := m.Called(ctx, id, status)
	return one[domain.Order](args.Get(0)), args.Error(1)
}

type CartRepository struct {
	BaseRepository[domain.Cart]
}

func (m *CartRepository) FindByUser(ctx context.Context, userID string) (*domain.Cart, error) {
	args := m.Called(ctx, userID)
	return one[domain.Cart](args.Get(0)), args.Error(1)
}

func (m *CartRepository) SetItems(ctx context.Context, id bson.ObjectID, items []domain.CartItem) (*domain.Cart, error) {
	args := m.Called(ctx, id, items)
	return one[domain.Cart](args.Get(0)), args.Error(1)
}

type AddressRepository struct {
	BaseRepository[domain.Address]
}

func (m *AddressRepository) FindByUser(ctx context.Context, userID string) ([]domain.Address, error) {
	args := m.Called(ctx, userID)
	return many[domain.Address](args.Get(0)), args.Error(1)
}

func (m *AddressRepository) UpdateForUser(ctx context.Context, userID string, id bson.ObjectID, fields bson.M) (*domain.Address, error) {
	args := m.Called(ctx, userID, id, fields)
	return one[domain.Address](args.Get(0)), args.Error(1)
}

func (m *AddressRepository) DeleteForUser(ctx context.Context, userID string, id bson.ObjectID) (bool, error) {
	args := m.Called(ctx, userID, id)
	return args.Bool(0), args.Error(1)
}

type ReviewRepository struct {
	BaseRepository[domain.Review]
}

func (m *ReviewRepository) FindByProduct(ctx context.Context, productID bson.ObjectID) ([]domain.Review, error) {
	args := m.Called(ctx, productID)
	return many[domain.Review](args.Get(0)), args.Error(1)
}

func (m *ReviewRepository) HasReviewed(ctx context.Context, productID bson.ObjectID, userID string) (bool, error) {
	args := m.Called(ctx, productID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *ReviewRepository) AverageRating(ctx context.Context, productID bson.ObjectID) (float64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(float64), args.Error(1)
}
