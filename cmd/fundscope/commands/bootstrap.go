package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/wonny/fundscope/internal/contracts"
	"github.com/wonny/fundscope/internal/report"
	"github.com/wonny/fundscope/internal/reportconfig"
	"github.com/wonny/fundscope/internal/source"
	"github.com/wonny/fundscope/pkg/config"
	"github.com/wonny/fundscope/pkg/database"
	"github.com/wonny/fundscope/pkg/logger"
	"github.com/wonny/fundscope/pkg/redis"
)

// app holds the wired components shared by commands
type app struct {
	cfg       *config.Config
	log       *logger.Logger
	assembler *report.Assembler
	provider  contracts.DataProvider
	cache     *source.Cached // nil unless redis is enabled
	closers   []func()
}

// Close releases connections in reverse order
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// Service returns a report service over the configured provider
func (a *app) Service() *report.Service {
	return report.NewService(a.provider, a.assembler, a.log)
}

// loadConfig reads env config and applies the global flag overrides
func loadConfig() (*config.Config, error) {
	if sourceFlag != "" {
		// flag wins over .env; config.Load validates it
		if err := os.Setenv("NAV_SOURCE", sourceFlag); err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if dataDir != "" {
		cfg.NAVDir = dataDir
	}
	if reportConfigFile != "" {
		cfg.ReportConfigPath = reportConfigFile
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// newAssembler loads the report config and builds the assembler
func newAssembler(cfg *config.Config, log *logger.Logger) (*report.Assembler, error) {
	rc, err := reportconfig.LoadOrDefault(cfg.ReportConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load report config: %w", err)
	}

	hash, err := reportconfig.Hash(rc)
	if err != nil {
		return nil, err
	}
	log.WithFields(map[string]interface{}{
		"config_id": rc.Meta.ConfigID,
		"version":   rc.Meta.Version,
		"hash":      hash,
	}).Debug("Report config loaded")

	for _, w := range reportconfig.Warn(rc) {
		log.WithField("code", w.Code).Warn(w.Message)
	}

	return report.NewAssembler(rc, log)
}

// bootstrap wires config, logger, assembler and the NAV provider.
// withProvider=false skips source connections (offline --file reports).
func bootstrap(ctx context.Context, withProvider bool) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log := logger.New(cfg)
	a := &app{cfg: cfg, log: log}

	if a.assembler, err = newAssembler(cfg, log); err != nil {
		return nil, err
	}

	if !withProvider {
		return a, nil
	}

	var base contracts.DataProvider
	switch cfg.NAVSource {
	case config.SourcePostgres:
		db, err := database.New(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		base = source.NewPostgresSource(db.Pool)
		log.Info("Using PostgreSQL NAV source")
	default:
		base = source.NewFileSource(cfg.NAVDir, log)
		log.WithField("dir", cfg.NAVDir).Info("Using file NAV source")
	}
	a.provider = base

	if cfg.Redis.Enabled {
		client, err := redis.New(ctx, cfg)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = client.Close() })

		a.cache = source.NewCached(base, redis.NewCache(client, "fundscope"), log)
		a.provider = a.cache
		log.WithField("ttl", cfg.Redis.TTL).Info("Redis series cache enabled")
	}

	return a, nil
}
