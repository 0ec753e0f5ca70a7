package backtest

// sweep.go: worker pool para correr el barrido de parámetros en paralelo.
//
// Cada corrida es independiente: su propio Tracker, Engine y RunTotals.
// La serie se comparte en solo-lectura, así que no hace falta ningún lock.

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/alejandrodnm/crossbot/internal/domain"
)

// Sweep corre Run para cada set de params y devuelve los resultados en el mismo
// orden que params. Si workers <= 0 usa runtime.NumCPU().
//
// La cancelación se respeta entre corridas: una corrida empezada siempre termina,
// y si el contexto se cancela Sweep devuelve ctx.Err().
func Sweep(ctx context.Context, series []domain.PricePoint, params []domain.Params, workers int) ([]domain.RunResult, error) {
	if err := domain.ValidateSeries(series); err != nil {
		return nil, fmt.Errorf("backtest.Sweep: %w", err)
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(params) {
		workers = len(params)
	}

	start := time.Now()

	type work struct {
		idx    int
		params domain.Params
	}

	workCh := make(chan work)
	results := make([]domain.RunResult, len(params))
	errs := make([]error, len(params))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for w := range workCh {
				res, err := Run(series, w.params)
				if err != nil {
					errs[w.idx] = err
					continue
				}
				slog.Debug("run complete",
					"run_id", res.ID,
					"params", w.params.Label(),
					"final", res.Summary.FinalInvestment,
					"trades", res.Summary.TotalTrades,
				)
				results[w.idx] = res
			}
		}()
	}

	// Alimentar el pool hasta terminar o hasta que se cancele el contexto.
	cancelled := false
feed:
	for i, p := range params {
		if ctx.Err() != nil {
			cancelled = true
			break
		}
		select {
		case <-ctx.Done():
			cancelled = true
			break feed
		case workCh <- work{idx: i, params: p}:
		}
	}
	close(workCh)
	wg.Wait()

	if cancelled {
		return nil, ctx.Err()
	}
	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("backtest.Sweep: run %d (%s): %w", i, params[i].Label(), err)
		}
	}

	slog.Info("sweep complete",
		"runs", len(results),
		"workers", workers,
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return results, nil
}

// Best devuelve la corrida con mayor inversión final. ok == false si no hay resultados.
// En empate gana la primera en orden de grid.
func Best(results []domain.RunResult) (domain.RunResult, bool) {
	if len(results) == 0 {
		return domain.RunResult{}, false
	}
	best := results[0]
	for _, r := range results[1:] {
		if r.Summary.FinalInvestment > best.Summary.FinalInvestment {
			best = r
		}
	}
	return best, true
}
