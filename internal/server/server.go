// Package server exposes the batch engine over HTTP.
package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/spetersoncode/a2abatch/a2a"
	"github.com/spetersoncode/a2abatch/batch"
	"github.com/spetersoncode/a2abatch/internal/logging"
)

// Server holds the HTTP handlers for one agent endpoint.
type Server struct {
	client       *a2a.Client
	mode         batch.Mode
	logger       logrus.FieldLogger
	allowOrigins []string
}

// Option configures a Server.
type Option func(*Server)

// WithMode sets the batch mode used when a request does not choose one.
func WithMode(m batch.Mode) Option {
	return func(s *Server) {
		s.mode = m
	}
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithAllowOrigins sets the CORS origins. "*" allows any origin.
func WithAllowOrigins(origins ...string) Option {
	return func(s *Server) {
		s.allowOrigins = origins
	}
}

// New creates a Server that dispatches to client.
func New(client *a2a.Client, opts ...Option) *Server {
	s := &Server{
		client:       client,
		mode:         batch.FailFast,
		allowOrigins: []string{"*"},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.Discard()
	}
	return s
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger(), cors.New(s.corsConfig()))

	router.GET("/health", s.health)

	v1 := router.Group("/v1")
	{
		v1.GET("/agent-card", s.agentCard)
		v1.POST("/batches", s.runBatch)
		v1.POST("/batches/stream", s.streamBatch)
	}

	return router
}

func (s *Server) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	for _, origin := range s.allowOrigins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = s.allowOrigins
	return cfg
}

// requestLogger logs one line per request.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := s.logger.WithFields(logrus.Fields{
			"method":      c.Request.Method,
			"path":        c.FullPath(),
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
		})
		if len(c.Errors) > 0 {
			entry.WithError(c.Errors.Last()).Warn("request failed")
			return
		}
		entry.Info("request completed")
	}
}
