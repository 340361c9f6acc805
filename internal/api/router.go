package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wonny/fundscope/internal/api/handlers"
	"github.com/wonny/fundscope/pkg/config"
	"github.com/wonny/fundscope/pkg/logger"
)

// NewRouter creates and configures the HTTP router
// ⭐ SSOT: 라우팅 설정은 이 함수에서만
func NewRouter(reportHandler *handlers.ReportHandler, cfg *config.Config, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	// Report endpoints
	api.HandleFunc("/funds/{code}/report", reportHandler.GetReport).Methods(http.MethodGet)
	api.HandleFunc("/funds/{code}/cache", reportHandler.InvalidateCache).Methods(http.MethodDelete)
	api.HandleFunc("/report", reportHandler.PostReport).Methods(http.MethodPost)
	api.HandleFunc("/presets", reportHandler.GetPresets).Methods(http.MethodGet)

	// 적용 순서: request id -> logging -> recovery -> rate limit -> timeout
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))
	api.Use(rateLimitMiddleware(cfg.API.RateLimitRPS, cfg.API.RateLimitBurst))
	api.Use(timeoutMiddleware(cfg.API.RequestTimeout))

	return r
}
