package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSConfig restricts cross-origin access to a single client origin.
type CORSConfig struct {
	AllowedOrigin    string
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
}

// DefaultCORSConfig returns the policy shared by the admin and shop services.
func DefaultCORSConfig(clientOrigin string) CORSConfig {
	return CORSConfig{
		AllowedOrigin:    clientOrigin,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodPut},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "Cache-Control", "Expires", "Pragma"},
		AllowCredentials: true,
	}
}

// CORSMiddleware answers preflight requests from the client origin and
// rejects any request that carries a different Origin with 403 and no CORS
// headers. Requests without an Origin header are not cross-origin and pass.
func CORSMiddleware(cfg CORSConfig) gin.HandlerFunc {
	allowedOrigin := strings.TrimSuffix(cfg.AllowedOrigin, "/")
	allowedMethods := strings.Join(cfg.AllowedMethods, ",")
	allowedHeaders := strings.Join(cfg.AllowedHeaders, ",")

	return func(c *gin.Context) {
		c.Writer.Header().Add("Vary", "Origin")

		origin := c.Request.Header.Get("Origin")
		if origin == "" {
			c.Next()
			return
		}

		if origin != allowedOrigin {
			abortWithMessage(c, http.StatusForbidden, "Origin not allowed by CORS policy")
			return
		}

		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", allowedOrigin)
		if cfg.AllowCredentials {
			h.Set("Access-Control-Allow-Credentials", "true")
		}

		if c.Request.Method == http.MethodOptions {
			h.Set("Access-Control-Allow-Methods", allowedMethods)
			h.Set("Access-Control-Allow-Headers", allowedHeaders)
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
