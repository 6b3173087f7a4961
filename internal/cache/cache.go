package cache

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"StockPulse/internal/model"
)

// PriceCache holds the latest price per symbol. It has a single writer
// (the fetch cycle) and many readers (HTTP handlers), so a plain RWMutex
// around the map is enough. Keys are upper-cased symbols; a key exists
// if and only if at least one fetch for that symbol has succeeded since
// process start.
type PriceCache struct {
	mu      sync.RWMutex
	records map[string]model.PriceRecord
}

// New creates an empty PriceCache.
func New() *PriceCache {
	return &PriceCache{records: make(map[string]model.PriceRecord)}
}

// Put overwrites the record for symbol unconditionally.
func (c *PriceCache) Put(symbol string, price, timestamp float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records[normalize(symbol)] = model.PriceRecord{Price: price, Timestamp: timestamp}
}

// Get returns the current record for symbol, matched case-insensitively.
func (c *PriceCache) Get(symbol string) (model.PriceRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, ok := c.records[normalize(symbol)]
	return rec, ok
}

// All returns a snapshot copy of every record fetched at least once.
func (c *PriceCache) All() map[string]model.PriceRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]model.PriceRecord, len(c.records))
	for sym, rec := range c.records {
		out[sym] = rec
	}
	return out
}

// Staleness returns how long ago the symbol's price was fetched,
// or false if it was never fetched.
func (c *PriceCache) Staleness(symbol string) (time.Duration, bool) {
	rec, ok := c.Get(symbol)
	if !ok {
		return 0, false
	}
	age := model.EpochSeconds(time.Now()) - rec.Timestamp
	return time.Duration(age * float64(time.Second)), true
}

// FormatStaleness renders an age in the dashboard's human-readable form:
// minutes under an hour, hours under a day, days beyond that.
func FormatStaleness(d time.Duration) string {
	minutes := d.Minutes()
	switch {
	case minutes < 60:
		return fmt.Sprintf("%.1f minutes", minutes)
	case minutes < 1440:
		return fmt.Sprintf("%.1f hours", minutes/60)
	default:
		return fmt.Sprintf("%.1f days", minutes/1440)
	}
}

func normalize(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
