package cache

import (
	"testing"
	"time"

	"StockPulse/internal/model"
)

func TestGet_NeverFetched(t *testing.T) {
	c := New()
	if _, ok := c.Get("MSTR"); ok {
		t.Error("expected absent record for never-fetched symbol")
	}
	if _, ok := c.Staleness("MSTR"); ok {
		t.Error("expected absent staleness for never-fetched symbol")
	}
}

func TestPutThenGet(t *testing.T) {
	c := New()
	c.Put("MSTR", 421.5, 1700000000.25)

	rec, ok := c.Get("MSTR")
	if !ok {
		t.Fatal("expected record after put")
	}
	if rec.Price != 421.5 || rec.Timestamp != 1700000000.25 {
		t.Errorf("got %+v, want {421.5 1700000000.25}", rec)
	}

	// A later put unconditionally overwrites.
	c.Put("MSTR", 430.0, 1700000300.0)
	rec, _ = c.Get("MSTR")
	if rec.Price != 430.0 || rec.Timestamp != 1700000300.0 {
		t.Errorf("overwrite failed, got %+v", rec)
	}
}

func TestGet_CaseInsensitive(t *testing.T) {
	c := New()
	c.Put("mstr", 421.5, 1700000000.0)
	if _, ok := c.Get("MsTr"); !ok {
		t.Error("expected case-insensitive lookup to hit")
	}
	all := c.All()
	if _, ok := all["MSTR"]; !ok {
		t.Errorf("expected upper-cased key, got %v", all)
	}
}

func TestAll_SnapshotCopy(t *testing.T) {
	c := New()
	c.Put("MSTR", 421.5, 1700000000.0)

	all := c.All()
	all["MSTR"] = model.PriceRecord{Price: 1, Timestamp: 1}
	all["FAKE"] = model.PriceRecord{}

	rec, _ := c.Get("MSTR")
	if rec.Price != 421.5 {
		t.Error("mutating the snapshot must not affect the cache")
	}
	if _, ok := c.Get("FAKE"); ok {
		t.Error("mutating the snapshot must not add cache entries")
	}
}

func TestStaleness(t *testing.T) {
	c := New()
	c.Put("MSTR", 421.5, model.EpochSeconds(time.Now()))

	age, ok := c.Staleness("MSTR")
	if !ok {
		t.Fatal("expected staleness after put")
	}
	if age < 0 || age > 2*time.Second {
		t.Errorf("staleness right after put should be ~0, got %v", age)
	}

	again, _ := c.Staleness("MSTR")
	if again < age {
		t.Errorf("staleness must be non-decreasing: %v then %v", age, again)
	}

	c.Put("OLD", 10, model.EpochSeconds(time.Now().Add(-30*time.Minute)))
	age, _ = c.Staleness("OLD")
	if age < 29*time.Minute || age > 31*time.Minute {
		t.Errorf("expected ~30m staleness, got %v", age)
	}
}

func TestFormatStaleness(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Minute, "30.0 minutes"},
		{5*time.Minute + 30*time.Second, "5.5 minutes"},
		{90 * time.Minute, "1.5 hours"},
		{23 * time.Hour, "23.0 hours"},
		{1440 * time.Minute, "1.0 days"},
		{2000 * time.Minute, "1.4 days"},
	}
	for _, tt := range tests {
		if got := FormatStaleness(tt.d); got != tt.want {
			t.Errorf("FormatStaleness(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
