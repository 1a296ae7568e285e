package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ReadinessProbe reports whether a dependency can serve traffic.
type ReadinessProbe interface {
	Ready() bool
}

// RequireReady answers 503 while the probe is not ready.
func RequireReady(probe ReadinessProbe) gin.HandlerFunc {
	return func(c *gin.Context) {
		if probe != nil && !probe.Ready() {
			abortWithMessage(c, http.StatusServiceUnavailable, "Database is not ready")
			return
		}
		c.Next()
	}
}
