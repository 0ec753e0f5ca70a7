package backtest

import (
	"fmt"
	"math"

	"github.com/alejandrodnm/crossbot/internal/domain"
	"github.com/alejandrodnm/crossbot/internal/domain/strategy"
	"github.com/google/uuid"
)

// Run ejecuta una corrida completa: valida params y serie, y alimenta
// Tracker → Engine con cada punto en orden.
//
// La serie se lee pero nunca se modifica, así varias corridas pueden compartirla.
// Para la misma serie y params, eventos y resumen son siempre idénticos; solo el ID cambia.
func Run(series []domain.PricePoint, params domain.Params) (domain.RunResult, error) {
	if err := params.Validate(); err != nil {
		return domain.RunResult{}, fmt.Errorf("backtest.Run: %w", err)
	}
	if err := domain.ValidateSeries(series); err != nil {
		return domain.RunResult{}, fmt.Errorf("backtest.Run: %w", err)
	}

	tracker := strategy.NewTracker(params.TrendLength, params.FastLength, params.SlowLength)
	engine := strategy.NewEngine(params)

	events := simulate(series, tracker, engine)

	summary := engine.Summary()
	if math.IsNaN(summary.FinalInvestment) || math.IsInf(summary.FinalInvestment, 0) {
		return domain.RunResult{}, fmt.Errorf("backtest.Run: %w: final investment %v (%s)",
			domain.ErrArithmeticDegenerate, summary.FinalInvestment, params.Label())
	}

	return domain.RunResult{
		ID:      uuid.New().String(),
		Params:  params,
		Events:  events,
		Summary: summary,
	}, nil
}

// simulate recorre la serie una vez. No hay feedback del engine hacia el tracker.
func simulate(series []domain.PricePoint, tracker *strategy.Tracker, s strategy.Strategy) []domain.TradeEvent {
	var events []domain.TradeEvent
	for _, pt := range series {
		avg := tracker.Observe(pt.Price)
		events = append(events, s.Step(pt, avg)...)
	}
	return events
}
