package collector

import (
	"context"
	"errors"
)

// ErrNoData means the data source responded but had no usable close price
// for the symbol (unknown ticker, empty history, all-null bars).
var ErrNoData = errors.New("no price data available")

// Fetcher defines the interface for fetching the latest close price.
type Fetcher interface {
	FetchLatestClose(ctx context.Context, symbol string) (float64, error)
	Name() string
}
