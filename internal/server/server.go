// Package server builds the HTTP side of a service: the middleware chain,
// the health endpoints and the routers mounted under the service namespace.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/quochao170402/ecommerce-platform/internal/logger"
	"github.com/quochao170402/ecommerce-platform/internal/metrics"
	"github.com/quochao170402/ecommerce-platform/middleware"
)

// PortBindError is returned when the listening socket cannot be opened.
type PortBindError struct {
	Port int
	Err  error
}

func (e *PortBindError) Error() string {
	return fmt.Sprintf("bind port %d: %v", e.Port, e.Err)
}

func (e *PortBindError) Unwrap() error {
	return e.Err
}

// Server is an HTTP server with lifecycle management.
type Server struct {
	router   *gin.Engine
	server   *http.Server
	listener net.Listener
	logger   logger.Logger
	opts     Options
}

// New applies the middleware chain, mounts the health endpoints and the
// routers, and returns a server that is not yet listening.
func New(opts Options, log logger.Logger) (*Server, error) {
	opts.SetDefaults()
	if err := validateRoutes(opts.Routes); err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(log))
	if opts.Metrics != nil {
		router.Use(opts.Metrics.Middleware())
	}
	router.Use(middleware.CORSMiddleware(opts.CORS))
	router.Use(middleware.CookieMiddleware())
	router.Use(middleware.JSONBodyMiddleware(opts.BodyLimit))

	if opts.Metrics != nil {
		router.GET(metrics.Path, gin.WrapH(opts.Metrics.Handler()))
	}

	api := router.Group(opts.Namespace)
	api.GET(healthPath, healthHandler)
	api.HEAD(healthPath, headHealthHandler)
	api.GET(healthPath+"/ready", readinessHandler(opts.Database))

	for _, route := range opts.Routes {
		rg := api.Group(normalizePrefix(route.Prefix), middleware.RequireReady(opts.Database))
		route.Register(rg)
	}

	return &Server{
		router: router,
		server: &http.Server{
			Addr:         ":" + strconv.Itoa(opts.Port),
			Handler:      router,
			ReadTimeout:  opts.ReadTimeout,
			WriteTimeout: opts.WriteTimeout,
			IdleTimeout:  opts.IdleTimeout,
		},
		logger: log,
		opts:   opts,
	}, nil
}

// Router returns the underlying Gin engine.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Addr returns the bound address once Listen succeeded, otherwise the
// configured one.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.server.Addr
}

// Listen binds the configured port and logs the confirmation.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return &PortBindError{Port: s.opts.Port, Err: err}
	}
	s.listener = ln

	s.logger.Info("Server is now running",
		logger.String("service", s.opts.Name),
		logger.String("address", ln.Addr().String()),
		logger.String("namespace", s.opts.Namespace),
	)
	return nil
}

// Serve blocks until the server is shut down. Listen must be called first.
func (s *Server) Serve() error {
	if s.listener == nil {
		return errors.New("server is not listening")
	}
	if err := s.server.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Start binds and serves in a blocking manner.
func (s *Server) Start() error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve()
}

// Shutdown gracefully stops the server within the configured timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server",
		logger.Duration("timeout", s.opts.ShutdownTimeout),
	)

	shutdownCtx, cancel := context.WithTimeout(ctx, s.opts.ShutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.logger.Info("HTTP server stopped gracefully")
	return nil
}

// RunWithGracefulShutdown binds the port, serves, and shuts down on SIGINT,
// SIGTERM or context cancellation. A bind failure is returned immediately
// as a *PortBindError.
func (s *Server) RunWithGracefulShutdown(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Serve()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		s.logger.Info("Shutdown signal received", logger.String("signal", sig.String()))
	case <-ctx.Done():
		s.logger.Info("Context cancelled, shutting down")
	}

	//nolint:contextcheck // the parent context may already be cancelled
	return s.Shutdown(context.Background())
}
