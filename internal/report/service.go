package report

import (
	"context"
	"fmt"

	"github.com/wonny/fundscope/internal/contracts"
	"github.com/wonny/fundscope/pkg/logger"
)

// Report bundles everything presentation needs for one fund and one range
type Report struct {
	Fund    contracts.FundInfo       `json:"fund"`
	Series  contracts.TimeSeries     `json:"series"`
	Metrics *contracts.MetricsResult `json:"metrics"`
}

// Service fetches fund data through a DataProvider and assembles reports
type Service struct {
	provider  contracts.DataProvider
	assembler *Assembler
	logger    *logger.Logger
}

// NewService creates a report service
func NewService(provider contracts.DataProvider, assembler *Assembler, log *logger.Logger) *Service {
	return &Service{
		provider:  provider,
		assembler: assembler,
		logger:    log,
	}
}

// Assembler returns the underlying assembler
func (s *Service) Assembler() *Assembler {
	return s.assembler
}

// Generate loads the fund code's metadata and NAV history, then builds the report for sel
func (s *Service) Generate(ctx context.Context, code string, sel Selection) (*Report, error) {
	info, err := s.provider.FetchFundInfo(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("fetch fund info %s: %w", code, err)
	}

	ts, err := s.provider.FetchNAVHistory(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("fetch nav history %s: %w", code, err)
	}

	return s.Build(info, ts, sel)
}

// Build assembles a report from in-memory data, without touching the provider
func (s *Service) Build(info contracts.FundInfo, ts contracts.TimeSeries, sel Selection) (*Report, error) {
	r, err := s.assembler.Resolve(ts, sel)
	if err != nil {
		return nil, err
	}

	result, err := s.assembler.Assemble(ts, info, r)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"fund_code": info.Code,
		"range":     r.String(),
		"preset":    sel.Preset,
	}).Info("Report generated")

	return &Report{
		Fund:    info,
		Series:  ts,
		Metrics: result,
	}, nil
}
