package collector

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"StockPulse/internal/cache"
)

// fakeFetcher serves canned per-symbol results.
type fakeFetcher struct {
	prices map[string]float64
	errs   map[string]error
	calls  []string
}

func (f *fakeFetcher) Name() string { return "fake" }

func (f *fakeFetcher) FetchLatestClose(_ context.Context, symbol string) (float64, error) {
	f.calls = append(f.calls, symbol)
	if err, ok := f.errs[symbol]; ok {
		return 0, err
	}
	if price, ok := f.prices[symbol]; ok {
		return price, nil
	}
	return 0, ErrNoData
}

func TestRunCycle_MixedResults(t *testing.T) {
	pc := cache.New()
	fetcher := &fakeFetcher{prices: map[string]float64{"AAA": 10.0}}
	col := NewCollector(fetcher, pc, []string{"AAA", "BBB"}, zap.NewNop())

	col.RunCycle(context.Background())

	rec, ok := pc.Get("AAA")
	if !ok {
		t.Fatal("expected AAA in cache after successful fetch")
	}
	if rec.Price != 10.0 {
		t.Errorf("AAA price = %v, want 10.0", rec.Price)
	}
	if rec.Timestamp <= 0 {
		t.Errorf("expected positive fetch timestamp, got %v", rec.Timestamp)
	}
	if _, ok := pc.Get("BBB"); ok {
		t.Error("BBB returned no data, must stay absent")
	}
}

func TestRunCycle_FailurePreservesLastGood(t *testing.T) {
	pc := cache.New()
	pc.Put("AAA", 42.0, 1700000000.0)

	fetcher := &fakeFetcher{errs: map[string]error{"AAA": errors.New("upstream down")}}
	col := NewCollector(fetcher, pc, []string{"AAA"}, zap.NewNop())
	col.RunCycle(context.Background())

	rec, ok := pc.Get("AAA")
	if !ok {
		t.Fatal("failed fetch must not clear the cached record")
	}
	if rec.Price != 42.0 || rec.Timestamp != 1700000000.0 {
		t.Errorf("cached record changed on failure: %+v", rec)
	}
}

func TestRunCycle_ContinuesAfterFailure(t *testing.T) {
	pc := cache.New()
	fetcher := &fakeFetcher{
		prices: map[string]float64{"BBB": 7.5},
		errs:   map[string]error{"AAA": errors.New("boom")},
	}
	col := NewCollector(fetcher, pc, []string{"AAA", "BBB", "CCC"}, zap.NewNop())
	col.RunCycle(context.Background())

	if len(fetcher.calls) != 3 {
		t.Fatalf("expected all 3 symbols attempted in order, got %v", fetcher.calls)
	}
	if fetcher.calls[0] != "AAA" || fetcher.calls[1] != "BBB" || fetcher.calls[2] != "CCC" {
		t.Errorf("symbols fetched out of configured order: %v", fetcher.calls)
	}
	if _, ok := pc.Get("BBB"); !ok {
		t.Error("BBB should be cached despite AAA failing")
	}
}
