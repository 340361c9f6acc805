package contracts

import "context"

// DataProvider supplies NAV history and fund metadata by fund code.
// Implementations must return a validated series (non-empty, strictly ascending)
// and ErrFundNotFound for unknown codes.
// ⭐ SSOT: the metrics engine never fetches; everything comes through this interface
type DataProvider interface {
	FetchNAVHistory(ctx context.Context, code string) (TimeSeries, error)
	FetchFundInfo(ctx context.Context, code string) (FundInfo, error)
}
