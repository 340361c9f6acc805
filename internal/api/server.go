package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/wonny/fundscope/pkg/config"
	"github.com/wonny/fundscope/pkg/logger"
)

// Server represents the HTTP API server
// ⭐ SSOT: API 서버 설정은 이 파일에서만
type Server struct {
	httpServer *http.Server
	logger     *logger.Logger
	config     *config.Config
}

// New creates a new API server
func New(cfg *config.Config, log *logger.Logger, router http.Handler) *Server {
	// write deadline leaves room for the per-request timeout plus encoding
	writeTimeout := cfg.API.RequestTimeout + 5*time.Second

	return &Server{
		httpServer: &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: writeTimeout,
			IdleTimeout:  60 * time.Second,
		},
		logger: log,
		config: cfg,
	}
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	s.logger.WithFields(map[string]interface{}{
		"port":   s.config.Port,
		"env":    s.config.Env,
		"source": s.config.NAVSource,
	}).Info("Starting API server")

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
