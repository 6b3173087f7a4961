package model

import "time"

// PriceRecord is the latest known close price for one symbol.
// Timestamp is fractional Unix epoch seconds, matching the JSON API
// (`{"price": 123.45, "timestamp": 1712345678.9}`).
type PriceRecord struct {
	Price     float64 `json:"price"`
	Timestamp float64 `json:"timestamp"`
}

// EpochSeconds converts a time to fractional Unix epoch seconds.
func EpochSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}
