package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx driver
	"github.com/zeromicro/go-zero/core/stores/sqlx"

	"astock-api/internal/cli"
	"astock-api/internal/config"
	"astock-api/internal/model"
	stockspersist "astock-api/internal/persistence/stocks"
	"astock-api/pkg/market"

	// Import for side-effects: registers the market providers
	_ "astock-api/pkg/market/providers/eastmoney"
	_ "astock-api/pkg/market/providers/tushare"
)

const apiTimeout = 30 * time.Second // Timeout for a single sync round

var (
	configPath = flag.String("f", "etc/astock.yaml", "the config file")
	interval   = flag.Duration("interval", 0, "resync interval; run once and exit when zero")
)

func main() {
	flag.Parse()
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	log.Println("[main] Starting stock sync...")

	appCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[main] Failed to load app config: %v", err)
	}

	log.Printf("[main] Configuration loaded:")
	for _, line := range cli.ConfigSummaryLines(appCfg) {
		log.Printf("  - %s", line)
	}

	var (
		providers   map[string]market.Provider
		defaultName string
	)
	if marketCfg := appCfg.Market.Value; marketCfg != nil {
		providers, err = marketCfg.BuildProviders()
		if err != nil {
			log.Fatalf("[main] Failed to build market providers: %v", err)
		}
		defaultName = marketCfg.Default
	} else {
		providers, defaultName = config.MustBuildMarketProviders()
	}
	provider, ok := providers[defaultName]
	if !ok {
		log.Fatalf("[main] Default market provider %q not found", defaultName)
	}

	dsn := appCfg.Postgres.ResolveDSN()
	if dsn == "" {
		log.Fatalf("[main] Postgres is not configured; nothing to sync into")
	}
	conn := sqlx.NewSqlConn("pgx", dsn)
	persist := stockspersist.NewService(model.NewStocksModel(conn))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Run once immediately on startup.
	syncStocks(ctx, provider, persist)

	if *interval <= 0 {
		log.Println("[main] Stock sync finished")
		return
	}

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	log.Printf("[main] Resync every %s. Press Ctrl+C to stop.", *interval)
	for {
		select {
		case <-ctx.Done():
			log.Println("[main] Shutdown signal received, stopping")
			return
		case <-ticker.C:
			syncStocks(ctx, provider, persist)
		}
	}
}

// syncStocks pulls the current stock list from the provider and upserts it.
func syncStocks(parentCtx context.Context, provider market.Provider, persist *stockspersist.Service) {
	if parentCtx.Err() != nil {
		return
	}

	ctx, cancel := context.WithTimeout(parentCtx, apiTimeout)
	defer cancel()

	start := time.Now()
	stocks, err := provider.ListStocks(ctx)
	elapsed := time.Since(start)
	if err != nil {
		log.Printf("[sync.list_stocks] [ERROR] %v, took %dms", err, elapsed.Milliseconds())
		return
	}
	log.Printf("[sync.list_stocks] [OK] fetched %d stocks, took %dms", len(stocks), elapsed.Milliseconds())

	start = time.Now()
	written, err := persist.UpsertStocks(ctx, stocks)
	elapsed = time.Since(start)
	if err != nil {
		log.Printf("[sync.upsert] [ERROR] %v, took %dms", err, elapsed.Milliseconds())
		return
	}
	log.Printf("[sync.upsert] [OK] wrote %d/%d stocks, took %dms", written, len(stocks), elapsed.Milliseconds())

	total, err := persist.Count(ctx)
	if err != nil {
		log.Printf("[sync.count] [ERROR] %v", err)
		return
	}
	log.Printf("[sync.count] [OK] stored universe size %d", total)
}
