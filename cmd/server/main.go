package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"StockPulse/internal/cache"
	"StockPulse/internal/collector"
	"StockPulse/internal/config"
	"StockPulse/internal/scheduler"
	"StockPulse/internal/server"
)

func main() {
	// .env is optional; real env vars win either way.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config validation: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("stock price service starting",
		zap.Strings("symbols", cfg.Symbols),
		zap.Int("fetch_interval_minutes", cfg.FetchIntervalMinutes),
		zap.Int("port", cfg.Port))

	// Init fetcher
	var fetcher collector.Fetcher
	if cfg.DataSource == "mock" {
		fetcher = &collector.MockFetcher{Price: 100}
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	logger.Info("data source selected", zap.String("source", fetcher.Name()))

	// The cache is the only shared mutable state: written by the fetch
	// cycle, read by the HTTP handlers.
	pc := cache.New()
	col := collector.NewCollector(fetcher, pc, cfg.Symbols, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Fill the cold cache before the server starts accepting reads.
	// Best effort: failed symbols stay absent until the next cycle.
	col.RunCycle(ctx)

	sched := scheduler.NewScheduler(ctx, cfg.FetchInterval(), col.RunCycle, logger)
	if err := sched.Start(); err != nil {
		logger.Fatal("start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           server.New(cfg.Symbols, pc, logger).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received, stopping")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
}

// newLogger builds a production zap logger at the configured level.
// Unknown levels fall back to INFO rather than failing startup.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	logCfg := zap.NewProductionConfig()
	logCfg.Level = zap.NewAtomicLevelAt(lvl)
	return logCfg.Build()
}
