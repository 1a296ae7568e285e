package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quochao170402/ecommerce-platform/internal/metrics"
)

func TestMiddleware_CountsByRoute(t *testing.T) {
	t.Parallel()

	m := metrics.New("shop")
	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/api/shop/products/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET(metrics.Path, gin.WrapH(m.Handler()))

	for _, path := range []string{"/api/shop/products/1", "/api/shop/products/2", "/nowhere"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, http.NoBody))
	}

	assert.InDelta(t, 2, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/api/shop/products/:id", "200")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "unmatched", "404")), 0)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, metrics.Path, http.NoBody))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "shop_http_requests_total")
}

func TestSetDatabaseConnected(t *testing.T) {
	t.Parallel()

	m := metrics.New("admin")
	m.SetDatabaseConnected(true)
	assert.InDelta(t, 1, testutil.ToFloat64(m.DatabaseConnected), 0)
	m.SetDatabaseConnected(false)
	assert.InDelta(t, 0, testutil.ToFloat64(m.DatabaseConnected), 0)
}
