package contracts

import "errors"

// Engine errors. All of them are local, recoverable conditions: the caller
// reports them to the user and keeps the session alive.
// ⭐ SSOT: every error kind the metrics engine can produce is declared here
var (
	// ErrInsufficientData indicates fewer observations than a formula requires
	// (volatility needs 2 points, the 7-day yield needs 7).
	ErrInsufficientData = errors.New("insufficient data")

	// ErrInvalidRange indicates a range outside the series span, or start > end.
	ErrInvalidRange = errors.New("invalid date range")

	// ErrEmptyRange indicates that a slice produced zero observations.
	ErrEmptyRange = errors.New("empty date range")

	// ErrNonFinite indicates that annualization overflowed to Inf or NaN.
	ErrNonFinite = errors.New("non-finite result")
)

// Input errors raised while building series or resolving user choices.
var (
	// ErrInvalidSeries indicates unsorted, duplicated or non-positive observations.
	ErrInvalidSeries = errors.New("invalid time series")

	// ErrUnknownPreset indicates a quick range name that is not configured.
	ErrUnknownPreset = errors.New("unknown range preset")

	// ErrFundNotFound indicates that a data provider has nothing for the fund code.
	ErrFundNotFound = errors.New("fund not found")
)
