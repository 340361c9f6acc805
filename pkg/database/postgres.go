package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/fundscope/pkg/config"
)

// RequiredTables are the tables the NAV source reads
var RequiredTables = []string{"fund.fund_info", "fund.nav_history"}

// DB wraps the pgxpool.Pool and provides additional functionality
// ⭐ SSOT: DB 연결은 이 패키지에서만 생성
type DB struct {
	Pool *pgxpool.Pool
}

// New creates a read-only connection pool and verifies it with a ping.
// Every session runs with default_transaction_read_only, so the NAV source cannot write.
func New(ctx context.Context, cfg *config.Config) (*DB, error) {
	poolConfig, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Verify connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// poolConfig builds the pgxpool config from app config
func poolConfig(cfg *config.Config) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	pc.MaxConns = int32(cfg.Database.MaxConns)
	pc.MinConns = int32(cfg.Database.MinConns)
	pc.MaxConnLifetime = cfg.Database.MaxConnLifetime
	pc.MaxConnIdleTime = cfg.Database.MaxConnIdleTime
	pc.ConnConfig.RuntimeParams["default_transaction_read_only"] = "on"
	pc.ConnConfig.RuntimeParams["application_name"] = "fundscope"

	return pc, nil
}

// Close closes the database connection pool
func (db *DB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

// Ping checks if the database is accessible
func (db *DB) Ping(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

// CheckTables returns the RequiredTables that do not exist
func (db *DB) CheckTables(ctx context.Context) ([]string, error) {
	var missing []string
	for _, table := range RequiredTables {
		var found *string
		if err := db.Pool.QueryRow(ctx, "SELECT to_regclass($1)::text", table).Scan(&found); err != nil {
			return nil, fmt.Errorf("check table %s: %w", table, err)
		}
		if found == nil {
			missing = append(missing, table)
		}
	}
	return missing, nil
}

// HealthCheck returns detailed health information about the database
func (db *DB) HealthCheck(ctx context.Context) (*HealthStatus, error) {
	status := &HealthStatus{
		Healthy:   false,
		Timestamp: time.Now(),
	}

	start := time.Now()
	if err := db.Pool.Ping(ctx); err != nil {
		status.Error = err.Error()
		return status, err
	}
	status.ResponseTime = time.Since(start)
	status.Stats = db.Stats()

	status.Healthy = true
	return status, nil
}

// HealthStatus represents the health status of the database
type HealthStatus struct {
	Healthy      bool          `json:"healthy"`
	Timestamp    time.Time     `json:"timestamp"`
	ResponseTime time.Duration `json:"response_time"`
	Error        string        `json:"error,omitempty"`
	Stats        PoolStats     `json:"stats"`
}

// PoolStats represents connection pool statistics
type PoolStats struct {
	AcquireCount         int64         `json:"acquire_count"`
	AcquireDuration      time.Duration `json:"acquire_duration"`
	AcquiredConns        int32         `json:"acquired_conns"`
	CanceledAcquireCount int64         `json:"canceled_acquire_count"`
	IdleConns            int32         `json:"idle_conns"`
	MaxConns             int32         `json:"max_conns"`
	TotalConns           int32         `json:"total_conns"`
}

// Stats returns the current pool statistics
func (db *DB) Stats() PoolStats {
	stats := db.Pool.Stat()
	return PoolStats{
		AcquireCount:         stats.AcquireCount(),
		AcquireDuration:      stats.AcquireDuration(),
		AcquiredConns:        stats.AcquiredConns(),
		CanceledAcquireCount: stats.CanceledAcquireCount(),
		IdleConns:            stats.IdleConns(),
		MaxConns:             stats.MaxConns(),
		TotalConns:           stats.TotalConns(),
	}
}
