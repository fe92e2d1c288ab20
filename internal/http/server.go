// Package http provides the HTTP servers: the GraphQL API server and the
// Prometheus metrics server.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/graphql-secrets/internal/config"
	directoryHTTP "github.com/allisson/graphql-secrets/internal/directory/http"
	"github.com/allisson/graphql-secrets/internal/metrics"
)

// Server represents the GraphQL API HTTP server.
type Server struct {
	server  *http.Server
	logger  *slog.Logger
	router  *gin.Engine
	limiter *ipRateLimiter
	ready   atomic.Bool
}

// NewServer creates a new HTTP server. SetupRouter must be called before Start.
func NewServer(
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter registers middleware and routes.
//
// Routes:
//   - GET  /health: liveness
//   - GET  /ready: readiness
//   - GET  /query: GraphQL over query parameters, or GraphiQL when enabled
//   - POST /query: GraphQL over a JSON body
//
// The query routes are rate limited per client IP when enabled in cfg.
func (s *Server) SetupRouter(
	cfg *config.Config,
	graphqlHandler *directoryHTTP.GraphQLHandler,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", healthHandler)
	router.GET("/ready", s.readinessHandler)

	query := router.Group("/query")
	if cfg.RateLimitEnabled {
		s.limiter = newIPRateLimiter(cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst)
		query.Use(RateLimitMiddleware(s.limiter, s.logger))
	}
	query.GET("", graphqlHandler.GetHandler)
	query.POST("", graphqlHandler.PostHandler)

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called. Stale rate limiter entries are
// evicted until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router

	if s.limiter != nil {
		go s.limiter.evictStale(ctx, 5*time.Minute, time.Hour)
	}

	s.ready.Store(true)
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.ready.Store(false)
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.ready.Store(false)
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler reports liveness. Both listeners serve it.
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server is accepting queries.
func (s *Server) readinessHandler(c *gin.Context) {
	if !s.ready.Load() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
