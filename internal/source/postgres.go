package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/wonny/fundscope/internal/contracts"
)

// PostgresSource reads fund.fund_info and fund.nav_history. It never writes.
// ⭐ SSOT: NAV 조회 SQL은 여기서만
type PostgresSource struct {
	pool *pgxpool.Pool
}

// NewPostgresSource creates a provider on an existing pool
func NewPostgresSource(pool *pgxpool.Pool) *PostgresSource {
	return &PostgresSource{pool: pool}
}

// FetchFundInfo implements contracts.DataProvider
func (s *PostgresSource) FetchFundInfo(ctx context.Context, code string) (contracts.FundInfo, error) {
	query := `
		SELECT fund_code, fund_name, COALESCE(company, ''), COALESCE(fund_type, ''), is_money_fund
		FROM fund.fund_info
		WHERE fund_code = $1
	`

	var info contracts.FundInfo
	err := s.pool.QueryRow(ctx, query, code).Scan(
		&info.Code, &info.Name, &info.Company, &info.Type, &info.IsMoneyFund,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return contracts.FundInfo{}, fmt.Errorf("fund %s: %w", code, contracts.ErrFundNotFound)
	}
	if err != nil {
		return contracts.FundInfo{}, fmt.Errorf("query fund info %s: %w", code, err)
	}
	return info, nil
}

// FetchNAVHistory implements contracts.DataProvider.
// Money funds read the per-10,000-share yield column, other funds the unit NAV.
func (s *PostgresSource) FetchNAVHistory(ctx context.Context, code string) (contracts.TimeSeries, error) {
	query := `
		SELECT h.nav_date,
		       CASE WHEN f.is_money_fund THEN h.yield_per_10k ELSE h.unit_nav END AS value
		FROM fund.nav_history h
		JOIN fund.fund_info f ON f.fund_code = h.fund_code
		WHERE h.fund_code = $1
		  AND (CASE WHEN f.is_money_fund THEN h.yield_per_10k ELSE h.unit_nav END) IS NOT NULL
		ORDER BY h.nav_date ASC
	`

	rows, err := s.pool.Query(ctx, query, code)
	if err != nil {
		return contracts.TimeSeries{}, fmt.Errorf("query nav history %s: %w", code, err)
	}
	defer rows.Close()

	var obs []contracts.Observation
	for rows.Next() {
		var (
			date  time.Time
			value decimal.Decimal
		)
		if err := rows.Scan(&date, &value); err != nil {
			return contracts.TimeSeries{}, fmt.Errorf("scan nav row %s: %w", code, err)
		}
		obs = append(obs, contracts.Observation{Date: date, Value: value.InexactFloat64()})
	}
	if err := rows.Err(); err != nil {
		return contracts.TimeSeries{}, fmt.Errorf("iterate nav history %s: %w", code, err)
	}

	if len(obs) == 0 {
		return contracts.TimeSeries{}, fmt.Errorf("no nav history for %s: %w", code, contracts.ErrFundNotFound)
	}
	return contracts.NewTimeSeries(obs)
}

// ListFunds returns every fund that has at least one NAV row
func (s *PostgresSource) ListFunds(ctx context.Context) ([]contracts.FundInfo, error) {
	query := `
		SELECT f.fund_code, f.fund_name, COALESCE(f.company, ''), COALESCE(f.fund_type, ''), f.is_money_fund
		FROM fund.fund_info f
		WHERE EXISTS (SELECT 1 FROM fund.nav_history h WHERE h.fund_code = f.fund_code)
		ORDER BY f.fund_code
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query funds: %w", err)
	}
	defer rows.Close()

	var funds []contracts.FundInfo
	for rows.Next() {
		var f contracts.FundInfo
		if err := rows.Scan(&f.Code, &f.Name, &f.Company, &f.Type, &f.IsMoneyFund); err != nil {
			return nil, fmt.Errorf("scan fund: %w", err)
		}
		funds = append(funds, f)
	}
	return funds, rows.Err()
}
