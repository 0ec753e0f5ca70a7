package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alejandrodnm/crossbot/config"
	"github.com/alejandrodnm/crossbot/internal/adapters/coingecko"
	"github.com/alejandrodnm/crossbot/internal/adapters/notify"
	"github.com/alejandrodnm/crossbot/internal/adapters/storage"
	"github.com/alejandrodnm/crossbot/internal/ports"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	detailed := flag.Bool("detailed", false, "print every trade event of every run")
	dryRun := flag.Bool("dry-run", false, "use the local fixture instead of the CoinGecko API")
	fixture := flag.String("fixture", "testdata/fixtures/bitcoin_market_chart.json", "market_chart JSON used with -dry-run")
	noCache := flag.Bool("no-cache", false, "skip the SQLite price cache")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	setupLogger(cfg.Log)

	query := cfg.Query()
	slog.Info("crossbot starting",
		"config", *configPath,
		"symbol", query.Symbol,
		"currency", query.Currency,
		"days", query.Days,
		"interval", query.Interval,
		"dry_run", *dryRun,
	)

	var provider ports.PriceProvider
	if *dryRun {
		provider = coingecko.NewFileProvider(*fixture)
	} else {
		provider = coingecko.NewClient(cfg.API.CoinGeckoBase, cfg.API.APIKey)
	}

	// Interfaz nil explícita: un *SQLiteStorage nil no lo es.
	var cache ports.PriceCache
	if !*dryRun && !*noCache {
		store, err := storage.NewSQLiteStorage(cfg.Storage.DSN)
		if err != nil {
			slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
			os.Exit(1)
		}
		cache = store
	}
	if cache != nil {
		defer cache.Close()
	}

	reporter := notify.NewConsole(query, *detailed)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := runSweep(ctx, cfg, provider, cache, reporter); err != nil {
		slog.Error("crossbot exited with error", "err", err)
		cancel()
		os.Exit(1)
	}

	slog.Info("crossbot finished")
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
