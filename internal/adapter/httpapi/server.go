// Package httpapi exposes the assessment API plus health, readiness, and
// metrics endpoints.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/wildfire-risk-service/internal/domain"
	"github.com/couchcryptid/wildfire-risk-service/internal/observability"
	"github.com/couchcryptid/wildfire-risk-service/internal/risk"
	"github.com/couchcryptid/wildfire-risk-service/internal/store"
	"github.com/couchcryptid/wildfire-risk-service/internal/zones"
)

// Broadcaster pushes a danger-zone observation to subscribers.
type Broadcaster interface {
	Publish(ctx context.Context, obs zones.Observation) error
}

// Server wires the assessment engine to HTTP routes.
type Server struct {
	httpServer  *http.Server
	engine      *gin.Engine
	assessor    *risk.Assessor
	fireStore   *store.FireStore
	zoneStore   *zones.Store
	broadcaster Broadcaster // nil when broadcasting is disabled
	logger      *slog.Logger
	metrics     *observability.Metrics
}

// NewServer creates the API server and registers all routes.
func NewServer(addr string, assessor *risk.Assessor, fireStore *store.FireStore, zoneStore *zones.Store, broadcaster Broadcaster, logger *slog.Logger, metrics *observability.Metrics) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      engine,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		engine:      engine,
		assessor:    assessor,
		fireStore:   fireStore,
		zoneStore:   zoneStore,
		broadcaster: broadcaster,
		logger:      logger,
		metrics:     metrics,
	}

	engine.GET("/healthz", s.handleHealth)
	engine.GET("/readyz", s.handleReady)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := engine.Group("/api/v1")
	v1.POST("/classify", s.handleClassify)
	v1.POST("/assess", s.handleAssess)
	v1.GET("/zones", s.handleZones)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.engine.ServeHTTP(w, r)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// handleReady reports ready once the historical record collection is loaded.
func (s *Server) handleReady(c *gin.Context) {
	if !s.fireStore.Loaded() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"error":  "historical fire records not loaded yet",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func (s *Server) handleZones(c *gin.Context) {
	observations := s.zoneStore.Recent()
	c.JSON(http.StatusOK, gin.H{
		"data": observations,
		"meta": gin.H{
			"count":        len(observations),
			"generated_at": time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// recordObservation stores and broadcasts elevated assessments. Broadcast
// failures are logged, never surfaced to the caller.
func (s *Server) recordObservation(ctx context.Context, env domain.EnvironmentalData, level string) {
	obs := s.zoneStore.Add(zones.Observation{
		Location:    env.Location,
		RiskLevel:   level,
		Temperature: env.Temperature,
	})

	if s.broadcaster == nil {
		return
	}
	if err := s.broadcaster.Publish(ctx, obs); err != nil {
		s.metrics.BroadcastErrors.Inc()
		s.logger.Warn("zone broadcast failed", "error", err)
		return
	}
	s.metrics.BroadcastsTotal.Inc()
}
