package repository

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/quochao170402/ecommerce-platform/internal/domain"
)

// Product list orderings.
const (
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortNewest    = "newest"
)

// ErrEmptyKeyword is returned by Search for a blank keyword.
var ErrEmptyKeyword = errors.New("search keyword is empty")

// searchLimit caps the number of products a keyword search returns.
const searchLimit = 100

// ProductFilter narrows a product listing. Empty slices match everything.
type ProductFilter struct {
	Categories []string
	Brands     []string
	Sort       string
}

type ProductRepository interface {
	BaseRepository[domain.Product]

	List(ctx context.Context, filter ProductFilter) ([]domain.Product, error)
	FindByIDs(ctx context.Context, ids []bson.ObjectID) ([]domain.Product, error)
	Search(ctx context.Context, keyword string) ([]domain.Product, error)
}

type productRepository struct {
	*baseRepository[domain.Product]
}

func NewProductRepository(db *mongo.Database) ProductRepository {
	return &productRepository{baseRepository: newBaseRepository[domain.Product](db)}
}

func (p *productRepository) List(ctx context.Context, filter ProductFilter) ([]domain.Product, error) {
	return p.Find(ctx, productQuery(filter), FindOptions{Sort: productSort(filter.Sort)})
}

func (p *productRepository) FindByIDs(ctx context.Context, ids []bson.ObjectID) ([]domain.Product, error) {
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}
	return p.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, FindOptions{})
}

// Search matches the keyword case-insensitively against title, description,
// category and brand.
func (p *productRepository) Search(ctx context.Context, keyword string) ([]domain.Product, error) {
	query, err := searchQuery(keyword)
	if err != nil {
		return nil, err
	}
	return p.Find(ctx, query, FindOptions{Limit: searchLimit})
}

func productQuery(filter ProductFilter) bson.M {
	query := bson.M{}
	if len(filter.Categories) > 0 {
		query["category"] = bson.M{"$in": filter.Categories}
	}
	if len(filter.Brands) > 0 {
		query["brand"] = bson.M{"$in": filter.Brands}
	}
	return query
}

func productSort(sort string) bson.D {
	switch sort {
	case SortPriceDesc:
		return bson.D{{Key: "price", Value: -1}}
	case SortNewest:
		return bson.D{{Key: "createdAt", Value: -1}}
	default:
		return bson.D{{Key: "price", Value: 1}}
	}
}

func searchQuery(keyword string) (bson.M, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, ErrEmptyKeyword
	}

	pattern := bson.Regex{Pattern: regexp.QuoteMeta(keyword), Options: "i"}
	return bson.M{"$or": bson.A{
		bson.M{"title": pattern},
		bson.M{"description": pattern},
		bson.M{"category": pattern},
		bson.M{"brand": pattern},
	}}, nil
}
