package configs

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/quochao170402/ecommerce-platform/api/admin"
	"github.com/quochao170402/ecommerce-platform/api/shop"
	"github.com/quochao170402/ecommerce-platform/internal/cache"
	"github.com/quochao170402/ecommerce-platform/internal/repository"
	"github.com/quochao170402/ecommerce-platform/internal/server"
)

// Service namespaces. Every route of a service lives under its namespace.
const (
	AdminNamespace = "/api/admin"
	ShopNamespace  = "/api/shop"
)

// AdminRoutes returns the admin route table in mount order. Product writes
// evict entries from searchCache, which may be nil.
func AdminRoutes(db *mongo.Database, searchCache cache.Cache) []server.Route {
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	return []server.Route{
		{Prefix: "/products", Register: func(rg *gin.RouterGroup) { admin.RegisterProductRoutes(rg, productRepo, searchCache) }},
		{Prefix: "/orders", Register: func(rg *gin.RouterGroup) { admin.RegisterOrderRoutes(rg, orderRepo) }},
	}
}

// ShopRoutes returns the shop route table in mount order. searchCache may be
// nil to disable search caching.
func ShopRoutes(db *mongo.Database, searchCache cache.Cache) []server.Route {
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	addressRepo := repository.NewAddressRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	return []server.Route{
		{Prefix: "/products", Register: func(rg *gin.RouterGroup) { shop.RegisterProductRoutes(rg, productRepo) }},
		{Prefix: "/cart", Register: func(rg *gin.RouterGroup) { shop.RegisterCartRoutes(rg, cartRepo, productRepo) }},
		{Prefix: "/address", Register: func(rg *gin.RouterGroup) { shop.RegisterAddressRoutes(rg, addressRepo) }},
		{Prefix: "/order", Register: func(rg *gin.RouterGroup) { shop.RegisterOrderRoutes(rg, orderRepo) }},
		{Prefix: "/search", Register: func(rg *gin.RouterGroup) { shop.RegisterSearchRoutes(rg, productRepo, searchCache) }},
		{Prefix: "/review", Register: func(rg *gin.RouterGroup) { shop.RegisterReviewRoutes(rg, reviewRepo, productRepo) }},
	}
}
