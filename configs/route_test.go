package configs_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/quochao170402/ecommerce-platform/configs"
	"github.com/quochao170402/ecommerce-platform/internal/logger"
	"github.com/quochao170402/ecommerce-platform/internal/server"
	"github.com/quochao170402/ecommerce-platform/middleware"
)

// lazyDatabase returns a handle that never dials; routes only need it to
// build repositories.
func lazyDatabase(t *testing.T) *mongo.Database {
	t.Helper()
	client, err := mongo.Connect(options.Client().ApplyURI("mongodb://127.0.0.1:1"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })
	return client.Database("ecommerce")
}

func prefixes(routes []server.Route) []string {
	out := make([]string, 0, len(routes))
	for _, r := range routes {
		out = append(out, r.Prefix)
	}
	return out
}

func TestAdminRoutes(t *testing.T) {
	routes := configs.AdminRoutes(lazyDatabase(t), nil)
	assert.Equal(t, []string{"/products", "/orders"}, prefixes(routes))
}

func TestShopRoutes(t *testing.T) {
	routes := configs.ShopRoutes(lazyDatabase(t), nil)
	assert.Equal(t, []string{"/products", "/cart", "/address", "/order", "/search", "/review"}, prefixes(routes))
}

func TestRouteTablesMountUnderNamespace(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := lazyDatabase(t)

	tests := []struct {
		namespace string
		routes    []server.Route
		want      []string
	}{
		{
			namespace: configs.AdminNamespace,
			routes:    configs.AdminRoutes(db, nil),
			want:      []string{"/api/admin/products", "/api/admin/orders/:id/status", "/api/admin/health"},
		},
		{
			namespace: configs.ShopNamespace,
			routes:    configs.ShopRoutes(db, nil),
			want: []string{
				"/api/shop/products/:id", "/api/shop/cart/:userId/:productId", "/api/shop/address/:userId/:addressId",
				"/api/shop/order/list/:userId", "/api/shop/search/:keyword", "/api/shop/review/:productId",
				"/api/shop/health",
			},
		},
	}

	for _, tt := range tests {
		srv, err := server.New(server.Options{
			Namespace: tt.namespace,
			CORS:      middleware.DefaultCORSConfig("http://localhost:5173"),
			Routes:    tt.routes,
		}, logger.NewNop())
		require.NoError(t, err)

		var paths []string
		for _, info := range srv.Router().Routes() {
			paths = append(paths, info.Path)
		}
		for _, want := range tt.want {
			assert.Contains(t, paths, want)
		}

		w := httptest.NewRecorder()
		srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.namespace+"/health", http.NoBody))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
