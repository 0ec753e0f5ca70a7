package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alejandrodnm/crossbot/config"
	"github.com/alejandrodnm/crossbot/internal/backtest"
	"github.com/alejandrodnm/crossbot/internal/ports"
)

// gridFromConfig traduce la sección sweep a una backtest.Grid.
func gridFromConfig(sc config.SweepConfig) backtest.Grid {
	pairs := make([]backtest.WindowPair, len(sc.MAPairs))
	for i, p := range sc.MAPairs {
		pairs[i] = backtest.WindowPair{Fast: p.Fast, Slow: p.Slow}
	}
	return backtest.Grid{
		SplitThresholds:  sc.SplitThresholds,
		StopLossPercents: sc.StopLossPercents,
		TrendLengths:     sc.TrendLengths,
		Pairs:            pairs,
	}
}

// runSweep carga la serie, corre la grilla completa y reporta cada corrida
// más el ranking final.
func runSweep(
	ctx context.Context,
	cfg *config.Config,
	provider ports.PriceProvider,
	cache ports.PriceCache,
	reporter ports.Reporter,
) error {
	series, err := backtest.LoadSeries(ctx, cfg.Query(), provider, cache, cfg.CacheTTL())
	if err != nil {
		return fmt.Errorf("runSweep: %w", err)
	}

	grid := gridFromConfig(cfg.Sweep)
	params, err := grid.Params(cfg.BaseParams())
	if err != nil {
		return fmt.Errorf("runSweep: grid: %w", err)
	}

	slog.Info("running sweep", "runs", len(params), "points", len(series), "workers", cfg.Sweep.Workers)

	results, err := backtest.Sweep(ctx, series, params, cfg.Sweep.Workers)
	if err != nil {
		return fmt.Errorf("runSweep: %w", err)
	}

	for _, r := range results {
		if err := reporter.ReportRun(ctx, r); err != nil {
			slog.Warn("reporter error", "run", r.ID, "err", err)
		}
	}
	if err := reporter.ReportSweep(ctx, results); err != nil {
		slog.Warn("reporter error", "err", err)
	}

	if best, ok := backtest.Best(results); ok {
		slog.Info("best run",
			"run", best.ID,
			"params", best.Params.Label(),
			"final", best.Summary.FinalInvestment,
			"growth_pct", best.Summary.GrowthPercent,
		)
	}
	return nil
}
