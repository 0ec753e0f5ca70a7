package backtest

import (
	"fmt"

	"github.com/alejandrodnm/crossbot/internal/domain"
)

// WindowPair es un par (fast, slow) de longitudes de media móvil.
type WindowPair struct {
	Fast int
	Slow int
}

// Grid describe el barrido de parámetros.
// Split, stop y trend se combinan en producto cartesiano; los pares de medias
// se recorren tal cual (fast[i] con slow[i]), no se cruzan entre sí.
type Grid struct {
	SplitThresholds  []float64
	StopLossPercents []float64
	TrendLengths     []int
	Pairs            []WindowPair
}

// Size devuelve la cantidad de corridas del barrido.
func (g Grid) Size() int {
	return len(g.SplitThresholds) * len(g.StopLossPercents) * len(g.TrendLengths) * len(g.Pairs)
}

// Params expande el grid sobre base (capital, cushion, etc.) en el orden de
// anidación split → stop → trend → pair.
func (g Grid) Params(base domain.Params) ([]domain.Params, error) {
	if g.Size() == 0 {
		return nil, fmt.Errorf("backtest.Grid: %w: every dimension needs at least one value", domain.ErrInvalidConfiguration)
	}

	out := make([]domain.Params, 0, g.Size())
	for _, split := range g.SplitThresholds {
		for _, stop := range g.StopLossPercents {
			for _, trend := range g.TrendLengths {
				for _, pair := range g.Pairs {
					p := base
					p.SplitThreshold = split
					p.StopLossPercent = stop
					p.TrendLength = trend
					p.FastLength = pair.Fast
					p.SlowLength = pair.Slow
					if err := p.Validate(); err != nil {
						return nil, fmt.Errorf("backtest.Grid: %s: %w", p.Label(), err)
					}
					out = append(out, p)
				}
			}
		}
	}
	return out, nil
}
