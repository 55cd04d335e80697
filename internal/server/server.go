package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/daybook-app/daybook-web/internal/app/middleware"
	"github.com/daybook-app/daybook-web/internal/pkg/config"
	"github.com/daybook-app/daybook-web/internal/upstream"
)

// Server holds the dependencies for the HTTP server
type Server struct {
	cfg      *config.Config
	logger   *zap.Logger
	upstream *upstream.Client
	router   http.Handler
}

// New creates a new Server instance with all dependencies
func New(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	client, err := upstream.New(upstream.Config{
		BaseURL:        cfg.Backend.BaseURL,
		Timeout:        cfg.Backend.Timeout,
		Logger:         logger,
		OnUnauthorized: middleware.LoginRedirect{},
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Backend client configured", zap.String("base_url", cfg.Backend.BaseURL))

	return &Server{
		cfg:      cfg,
		logger:   logger,
		upstream: client,
	}, nil
}

// HTTPServer creates and configures the HTTP server
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         ":" + s.cfg.ServerPort,
		Handler:      s.router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// SetRouter sets the HTTP router/handler
func (s *Server) SetRouter(router http.Handler) {
	s.router = router
}

// GetUpstream returns the backend API client
func (s *Server) GetUpstream() *upstream.Client {
	return s.upstream
}

// GetLogger returns the logger instance
func (s *Server) GetLogger() *zap.Logger {
	return s.logger
}

// GetConfig returns the configuration
func (s *Server) GetConfig() *config.Config {
	return s.cfg
}
