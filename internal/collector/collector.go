package collector

import (
	"context"
	"time"

	"go.uber.org/zap"

	"StockPulse/internal/cache"
	"StockPulse/internal/model"
)

// MockFetcher returns a controllable fixed price for development and testing.
type MockFetcher struct {
	Price float64
	Err   error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchLatestClose(_ context.Context, _ string) (float64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return m.Price, nil
}

// Collector runs the fetch cycle: one pass attempting to refresh the
// cached price of every configured symbol.
type Collector struct {
	Fetcher Fetcher
	Cache   *cache.PriceCache
	Symbols []string
	logger  *zap.Logger
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, pc *cache.PriceCache, symbols []string, logger *zap.Logger) *Collector {
	return &Collector{Fetcher: fetcher, Cache: pc, Symbols: symbols, logger: logger}
}

// RunCycle fetches every configured symbol in order and stores successful
// results. One symbol's failure never aborts the rest, and a failure never
// clears a previously cached record: the cache keeps the last known good
// price until the next successful fetch.
func (c *Collector) RunCycle(ctx context.Context) {
	c.logger.Info("fetching prices", zap.Strings("symbols", c.Symbols))

	for _, symbol := range c.Symbols {
		start := time.Now()
		price, err := c.Fetcher.FetchLatestClose(ctx, symbol)
		if err != nil {
			c.logger.Warn("fetch failed, keeping last known price",
				zap.String("symbol", symbol),
				zap.Error(err))
			continue
		}

		c.Cache.Put(symbol, price, model.EpochSeconds(time.Now()))
		c.logger.Info("updated price",
			zap.String("symbol", symbol),
			zap.Float64("price", price),
			zap.Duration("fetch_duration", time.Since(start)))
	}
}
