package server

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quochao170402/ecommerce-platform/internal/metrics"
	"github.com/quochao170402/ecommerce-platform/middleware"
)

const (
	defaultPort            = 5000
	defaultBodyLimit       = 100 << 10
	defaultReadTimeout     = 30 * time.Second
	defaultWriteTimeout    = 60 * time.Second
	defaultIdleTimeout     = 120 * time.Second
	defaultShutdownTimeout = 30 * time.Second

	healthPath = "/health"
)

// ErrOverlappingPrefix is returned by New when two routers would share a path.
var ErrOverlappingPrefix = errors.New("overlapping route prefix")

// Route binds a router to a prefix under the service namespace.
type Route struct {
	Prefix   string
	Register func(rg *gin.RouterGroup)
}

// DatabaseProbe exposes the connection state of the shared database handle.
// Status names the state for the readiness body.
type DatabaseProbe interface {
	Ready() bool
	Status() string
}

// Options configures one service instance.
type Options struct {
	Name      string
	Namespace string
	Port      int
	CORS      middleware.CORSConfig
	BodyLimit int64
	Routes    []Route

	// Database gates the routers and backs the readiness endpoint.
	// When nil, routers are always open and readiness reports connected.
	Database DatabaseProbe
	Metrics  *metrics.Metrics

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// SetDefaults fills zero values.
func (o *Options) SetDefaults() {
	if o.Port == 0 {
		o.Port = defaultPort
	}
	if o.BodyLimit <= 0 {
		o.BodyLimit = defaultBodyLimit
	}
	if o.ReadTimeout == 0 {
		o.ReadTimeout = defaultReadTimeout
	}
	if o.WriteTimeout == 0 {
		o.WriteTimeout = defaultWriteTimeout
	}
	if o.IdleTimeout == 0 {
		o.IdleTimeout = defaultIdleTimeout
	}
	if o.ShutdownTimeout == 0 {
		o.ShutdownTimeout = defaultShutdownTimeout
	}
	o.Namespace = normalizePrefix(o.Namespace)
}

// validateRoutes rejects empty, duplicate and nested prefixes, and any
// prefix that would shadow the health endpoint.
func validateRoutes(routes []Route) error {
	seen := make([]string, 0, len(routes)+1)
	seen = append(seen, healthPath)

	for _, route := range routes {
		if route.Register == nil {
			return fmt.Errorf("route %q has no router", route.Prefix)
		}
		prefix := normalizePrefix(route.Prefix)
		if prefix == "" {
			return fmt.Errorf("%w: empty prefix", ErrOverlappingPrefix)
		}
		for _, other := range seen {
			if hasSegmentPrefix(prefix, other) || hasSegmentPrefix(other, prefix) {
				return fmt.Errorf("%w: %q and %q", ErrOverlappingPrefix, route.Prefix, other)
			}
		}
		seen = append(seen, prefix)
	}
	return nil
}

// hasSegmentPrefix reports whether prefix matches the leading path segments
// of path, so /products covers /products/top but not /productsx.
func hasSegmentPrefix(path, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}

func normalizePrefix(prefix string) string {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return ""
	}
	return "/" + prefix
}
