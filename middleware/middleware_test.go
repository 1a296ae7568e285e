package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/quochao170402/ecommerce-platform/internal/logger"
	"github.com/quochao170402/ecommerce-platform/middleware"
)

const clientOrigin = "http://localhost:5173"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(mw...)
	return router
}

func TestCORSMiddleware_AllowedOrigin(t *testing.T) {
	t.Parallel()

	router := newRouter(middleware.CORSMiddleware(middleware.DefaultCORSConfig(clientOrigin)))
	router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", http.NoBody)
	req.Header.Set("Origin", clientOrigin)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, clientOrigin, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	t.Parallel()

	router := newRouter(middleware.CORSMiddleware(middleware.DefaultCORSConfig(clientOrigin)))
	called := false
	router.OPTIONS("/x", func(c *gin.Context) { called = true })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/x", http.NoBody)
	req.Header.Set("Origin", clientOrigin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.False(t, called)
	assert.Equal(t, "GET,POST,DELETE,PUT", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type,Authorization,Cache-Control,Expires,Pragma", w.Header().Get("Access-Control-Allow-Headers"))
}

func TestCORSMiddleware_RejectsOtherOrigins(t *testing.T) {
	t.Parallel()

	router := newRouter(middleware.CORSMiddleware(middleware.DefaultCORSConfig(clientOrigin)))
	called := false
	router.GET("/x", func(c *gin.Context) { called = true })
	router.OPTIONS("/x", func(c *gin.Context) { called = true })

	for _, method := range []string{http.MethodGet, http.MethodOptions} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(method, "/x", http.NoBody)
		req.Header.Set("Origin", "https://evil.example.com")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code, method)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"), method)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"), method)
	}
	assert.False(t, called)
}

func TestCORSMiddleware_NoOriginPasses(t *testing.T) {
	t.Parallel()

	router := newRouter(middleware.CORSMiddleware(middleware.DefaultCORSConfig(clientOrigin)))
	router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", http.NoBody))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCookieMiddleware(t *testing.T) {
	t.Parallel()

	var got map[string]string
	router := newRouter(middleware.CookieMiddleware())
	router.GET("/x", func(c *gin.Context) { got = middleware.Cookies(c) })

	req := httptest.NewRequest(http.MethodGet, "/x", http.NoBody)
	req.Header.Set("Cookie", "token=abc; name=J%C3%BCrgen; token=second")
	router.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, map[string]string{"token": "abc", "name": "Jürgen"}, got)
}

func TestCookieMiddleware_NoHeader(t *testing.T) {
	t.Parallel()

	var got map[string]string
	router := newRouter(middleware.CookieMiddleware())
	router.GET("/x", func(c *gin.Context) { got = middleware.Cookies(c) })
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", http.NoBody))

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestJSONBodyMiddleware(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
		body        string
		wantStatus  int
		wantBody    any
	}{
		{name: "object", contentType: "application/json", body: `{"a":1,"b":["x"]}`, wantStatus: http.StatusOK,
			wantBody: map[string]any{"a": float64(1), "b": []any{"x"}}},
		{name: "array with charset", contentType: "application/json; charset=utf-8", body: `[1,2]`, wantStatus: http.StatusOK,
			wantBody: []any{float64(1), float64(2)}},
		{name: "vendor json", contentType: "application/merge-patch+json", body: `{"a":true}`, wantStatus: http.StatusOK,
			wantBody: map[string]any{"a": true}},
		{name: "empty body", contentType: "application/json", body: "  ", wantStatus: http.StatusOK, wantBody: map[string]any{}},
		{name: "malformed", contentType: "application/json", body: `{"invalid json`, wantStatus: http.StatusBadRequest},
		{name: "mixed case media type", contentType: "Application/JSON", body: `{"invalid json`, wantStatus: http.StatusBadRequest},
		{name: "mixed case vendor json", contentType: "application/Merge-Patch+JSON; charset=UTF-8", body: `{"a":true}`, wantStatus: http.StatusOK,
			wantBody: map[string]any{"a": true}},
		{name: "scalar rejected", contentType: "application/json", body: `"text"`, wantStatus: http.StatusBadRequest},
		{name: "too large", contentType: "application/json", body: `{"a":"` + strings.Repeat("x", 128) + `"}`, wantStatus: http.StatusRequestEntityTooLarge},
		{name: "not json", contentType: "text/plain", body: `{oops`, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			reached := false
			var parsed any
			var rebound map[string]any
			router := newRouter(middleware.JSONBodyMiddleware(64))
			router.POST("/x", func(c *gin.Context) {
				reached = true
				parsed = middleware.Body(c)
				_ = c.ShouldBindJSON(&rebound)
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			router.ServeHTTP(w, req)

			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus != http.StatusOK {
				assert.False(t, reached, "handler must not run")
				assert.Contains(t, w.Body.String(), `"success":false`)
				return
			}
			assert.True(t, reached)
			if tt.wantBody != nil {
				assert.Equal(t, tt.wantBody, parsed)
			}
			if m, ok := tt.wantBody.(map[string]any); ok && len(m) > 0 {
				assert.Equal(t, m, rebound, "raw body must be restored for binding")
			}
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	t.Parallel()

	var seen string
	router := newRouter(middleware.RequestIDMiddleware())
	router.GET("/x", func(c *gin.Context) { seen = c.GetString(middleware.RequestIDKey) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", http.NoBody))
	assert.Len(t, w.Header().Get(middleware.RequestIDHeader), 36)
	assert.Equal(t, w.Header().Get(middleware.RequestIDHeader), seen)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", http.NoBody)
	req.Header.Set(middleware.RequestIDHeader, "upstream-1")
	router.ServeHTTP(w, req)
	assert.Equal(t, "upstream-1", w.Header().Get(middleware.RequestIDHeader))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/x", http.NoBody)
	req.Header.Set(middleware.RequestIDHeader, strings.Repeat("x", 500))
	router.ServeHTTP(w, req)
	assert.Len(t, w.Header().Get(middleware.RequestIDHeader), 36)
}

func TestRecoveryMiddleware(t *testing.T) {
	t.Parallel()

	router := newRouter(middleware.RecoveryMiddleware(logger.NewNop()))
	router.GET("/x", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", http.NoBody))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Internal server error"}`, w.Body.String())
}

type readiness bool

func (r readiness) Ready() bool { return bool(r) }

func TestRequireReady(t *testing.T) {
	t.Parallel()

	for _, ready := range []bool{false, true} {
		router := newRouter(middleware.RequireReady(readiness(ready)))
		router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", http.NoBody))

		if ready {
			assert.Equal(t, http.StatusOK, w.Code)
		} else {
			assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		}
	}
}

func TestObjectIDParamMiddleware(t *testing.T) {
	t.Parallel()

	id := bson.NewObjectID()
	var got bson.ObjectID
	router := gin.New()
	router.GET("/items/:id", middleware.ObjectIDParamMiddleware("id"), func(c *gin.Context) {
		got = middleware.ObjectID(c, "id")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/"+id.Hex(), http.NoBody))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, got)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/42", http.NoBody))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
