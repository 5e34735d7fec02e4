// Package http provides the HTTP server that exposes the document API and the WOPI endpoints.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/wopihost/internal/auth/http"
	authService "github.com/allisson/wopihost/internal/auth/service"
	"github.com/allisson/wopihost/internal/config"
	documentHTTP "github.com/allisson/wopihost/internal/document/http"
	"github.com/allisson/wopihost/internal/metrics"
	wopiHTTP "github.com/allisson/wopihost/internal/wopi/http"
)

// Server represents the HTTP server.
type Server struct {
	db     *sql.DB
	server *http.Server
	logger *slog.Logger
	router *gin.Engine
}

// NewServer creates a new HTTP server. Call SetupRouter before Start.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter registers the middleware chain and every route.
//
// Route layout:
//   - /health and /ready are public probes.
//   - /v1/documents/* and /v1/wopi/* require a host user JWT.
//   - /wopi/files/* authenticate through the access_token query parameter.
//   - DELETE /wopi/session/:fileId is called by the session watcher with a host user JWT.
func (s *Server) SetupRouter(
	cfg *config.Config,
	documentHandler *documentHTTP.DocumentHandler,
	wopiHandler *wopiHTTP.WOPIHandler,
	tokenService authService.TokenService,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()

	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(gin.Recovery())
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	authMiddleware := authHTTP.AuthenticationMiddleware(tokenService, s.logger)

	v1 := router.Group("/v1")
	v1.Use(authMiddleware)
	{
		documents := v1.Group("/documents")
		{
			documents.POST("", documentHandler.CreateHandler)
			documents.GET("", documentHandler.ListHandler)
			documents.GET("/:id", documentHandler.GetHandler)
			documents.DELETE("/:id", documentHandler.DeleteHandler)
			documents.POST("/:id/lock", documentHandler.LockHandler)
			documents.DELETE("/:id/lock", documentHandler.UnlockHandler)
			documents.POST("/:id/checkout", documentHandler.CheckOutHandler)
			documents.POST("/:id/checkin", documentHandler.CheckInHandler)
			documents.POST("/:id/move", documentHandler.MoveHandler)
			documents.GET("/:id/content", documentHandler.GetContentHandler)
			documents.PUT("/:id/content", documentHandler.PutContentHandler)
		}

		wopi := v1.Group("/wopi")
		{
			tokenHandlers := []gin.HandlerFunc{}
			if cfg.RateLimitTokenEnabled {
				tokenHandlers = append(tokenHandlers, authHTTP.RateLimitMiddleware(
					cfg.RateLimitTokenRequestsPerSec,
					cfg.RateLimitTokenBurst,
					s.logger,
				))
			}
			tokenHandlers = append(tokenHandlers, wopiHandler.TokenHandler)

			wopi.GET("/token", tokenHandlers...)
			wopi.GET("/service-url", wopiHandler.ServiceURLHandler)
		}
	}

	files := router.Group("/wopi/files")
	{
		files.GET("/:fileId", wopiHandler.CheckFileInfoHandler)
		files.GET("/:fileId/contents", wopiHandler.GetFileHandler)
		files.POST("/:fileId/contents", wopiHandler.PutFileHandler)
	}

	router.DELETE("/wopi/session/:fileId", authMiddleware, wopiHandler.RemoveSessionHandler)

	s.router = router
	s.server.Handler = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server. It blocks until the server stops.
func (s *Server) Start(ctx context.Context) error {
	if s.server.Handler == nil {
		return fmt.Errorf("router not configured: call SetupRouter before Start")
	}

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler reports liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports readiness. The server is ready once the database answers a ping.
func (s *Server) readinessHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	components := gin.H{"database": "ok"}
	if s.db == nil || s.db.PingContext(ctx) != nil {
		components["database"] = "error"
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}
