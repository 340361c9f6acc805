package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/fundscope/internal/api"
	"github.com/wonny/fundscope/internal/api/handlers"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `REST API 서버를 시작합니다.

Endpoints:
  GET    /health                       - Health check
  GET    /api/funds/{code}/report      - 펀드 리포트 (start, end | preset, include_series)
  POST   /api/report                   - 요청 본문의 시계열로 리포트 계산
  DELETE /api/funds/{code}/cache       - 펀드 캐시 무효화
  GET    /api/presets                  - 빠른 기간 목록

Example:
  go run ./cmd/fundscope api
  go run ./cmd/fundscope api --port 8080 --source postgres`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (default: PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Fundscope API Server ===")

	// 1. Config, logger, provider
	a, err := bootstrap(context.Background(), true)
	if err != nil {
		return err
	}
	defer a.Close()

	// Override port if flag is set
	if apiPort != "" {
		a.cfg.Port = apiPort
	}

	// 2. Handler (cache invalidation only with a live cache)
	var invalidator handlers.CacheInvalidator
	if a.cache != nil {
		invalidator = a.cache
	}
	reportHandler := handlers.NewReportHandler(a.Service(), invalidator, a.log)

	// 3. Router + server
	router := api.NewRouter(reportHandler, a.cfg, a.log)
	server := api.New(a.cfg, a.log, router)

	// 4. Start server with graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	fmt.Printf("\n✅ Server running on http://localhost:%s\n", a.cfg.Port)
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	a.log.Info("Server stopped")
	return nil
}
