// Package app wires configuration, logging, the database connector and the
// HTTP server into a runnable service. Admin and Shop are the two instances.
package app

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/quochao170402/ecommerce-platform/configs"
	"github.com/quochao170402/ecommerce-platform/internal/cache"
	"github.com/quochao170402/ecommerce-platform/internal/database"
	"github.com/quochao170402/ecommerce-platform/internal/logger"
	"github.com/quochao170402/ecommerce-platform/internal/metrics"
	"github.com/quochao170402/ecommerce-platform/internal/server"
	"github.com/quochao170402/ecommerce-platform/middleware"
)

const closeTimeout = 10 * time.Second

// Service describes one deployable service.
type Service struct {
	Name      string
	Namespace string
	// CacheNamespace is the Redis key prefix of the search cache. Both
	// services share the shop's namespace so admin writes can evict shop
	// search results. Empty disables the cache.
	CacheNamespace string
	Routes         func(db *mongo.Database, searchCache cache.Cache) []server.Route
}

var Admin = Service{
	Name:           configs.ServiceAdmin,
	Namespace:      configs.AdminNamespace,
	CacheNamespace: configs.ServiceShop,
	Routes:         configs.AdminRoutes,
}

var Shop = Service{
	Name:           configs.ServiceShop,
	Namespace:      configs.ShopNamespace,
	CacheNamespace: configs.ServiceShop,
	Routes:         configs.ShopRoutes,
}

// App is a fully wired service that has not started yet.
type App struct {
	Config    *configs.Config
	Logger    logger.Logger
	Connector *database.Connector
	Metrics   *metrics.Metrics
	Server    *server.Server

	cache cache.Cache
}

// New loads the configuration and builds every component. Configuration
// problems are returned as *configs.ConfigurationError.
func New(svc Service) (*App, error) {
	cfg, err := configs.LoadConfig(svc.Name)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(logger.Config{Level: cfg.Log.Level, File: cfg.Log.File, Service: svc.Name})
	if err != nil {
		return nil, err
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	m := metrics.New(svc.Name)

	conn, err := database.NewConnector(cfg.Database, log)
	if err != nil {
		return nil, err
	}
	conn.OnStateChange(func(s database.State) {
		m.SetDatabaseConnected(s == database.StateConnected)
	})

	searchCache := newSearchCache(svc, cfg.Redis, log)

	srv, err := server.New(server.Options{
		Name:            svc.Name,
		Namespace:       svc.Namespace,
		Port:            cfg.App.Port,
		CORS:            middleware.DefaultCORSConfig(cfg.CORS.ClientOrigin),
		BodyLimit:       cfg.HTTP.BodyLimit,
		Routes:          svc.Routes(conn.Database(), searchCache),
		Database:        conn,
		Metrics:         m,
		ReadTimeout:     cfg.HTTP.ReadTimeout,
		WriteTimeout:    cfg.HTTP.WriteTimeout,
		IdleTimeout:     cfg.HTTP.IdleTimeout,
		ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
	}, log)
	if err != nil {
		_ = searchCache.Close()
		return nil, err
	}

	return &App{
		Config:    cfg,
		Logger:    log,
		Connector: conn,
		Metrics:   m,
		Server:    srv,
		cache:     searchCache,
	}, nil
}

// newSearchCache falls back to no caching when Redis is unset or unreachable.
func newSearchCache(svc Service, cfg configs.RedisConfig, log logger.Logger) cache.Cache {
	if svc.CacheNamespace == "" || cfg.URL == "" {
		return cache.Noop{}
	}
	redisCache, err := cache.NewRedis(cfg.URL, svc.CacheNamespace, cfg.TTL)
	if err != nil {
		log.Warn("Search cache disabled", logger.Error(err))
		return cache.Noop{}
	}
	log.Info("Search cache enabled", logger.Duration("ttl", cfg.TTL))
	return redisCache
}

// Run starts the background database connection, binds the port and serves
// until ctx is cancelled or the process is signalled.
func (a *App) Run(ctx context.Context) error {
	defer a.close()

	a.Connector.Start(ctx)

	err := a.Server.RunWithGracefulShutdown(ctx)
	var bindErr *server.PortBindError
	if errors.As(err, &bindErr) {
		a.Logger.Error("Failed to bind port", logger.Int("port", bindErr.Port), logger.Error(err))
	}
	return err
}

func (a *App) close() {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	if err := a.Connector.Close(ctx); err != nil {
		a.Logger.Warn("Failed to close database connection", logger.Error(err))
	}
	if err := a.cache.Close(); err != nil {
		a.Logger.Warn("Failed to close search cache", logger.Error(err))
	}
	_ = a.Logger.Sync()
}

// Main runs svc and returns the process exit code.
func Main(svc Service) int {
	a, err := New(svc)
	if err != nil {
		boot := logger.Must(logger.Config{Service: svc.Name})
		boot.Error("Failed to start service", logger.Error(err))
		_ = boot.Sync()
		return 1
	}

	if err := a.Run(context.Background()); err != nil {
		a.Logger.Error("Service stopped with error", logger.Error(err))
		return 1
	}
	return 0
}
