package domain

import "fmt"

// Params es la configuración de una corrida del backtest.
type Params struct {
	TrendLength          int     // ventana de tendencia (T)
	FastLength           int     // media rápida (F)
	SlowLength           int     // media lenta (S)
	StopLossPercent      float64 // (0,1): distancia del stop respecto al precio de entrada
	SplitThreshold       float64 // (0,1): separación mínima fast/slow para entrar (filtro de mercado plano)
	ReentryCushion       float64 // [0,1): movimiento favorable mínimo para reentrar en el mismo lado
	InitialCapital       float64 // > 0
	RequireFastBelowSlow bool    // exigir F < S
}

// Validate rechaza configuraciones que no permiten una corrida válida.
func (p Params) Validate() error {
	if p.TrendLength <= 0 || p.FastLength <= 0 || p.SlowLength <= 0 {
		return fmt.Errorf("%w: window lengths must be positive (trend=%d fast=%d slow=%d)",
			ErrInvalidConfiguration, p.TrendLength, p.FastLength, p.SlowLength)
	}
	if p.RequireFastBelowSlow && p.FastLength >= p.SlowLength {
		return fmt.Errorf("%w: fast length %d must be below slow length %d",
			ErrInvalidConfiguration, p.FastLength, p.SlowLength)
	}
	if !(p.StopLossPercent > 0 && p.StopLossPercent < 1) {
		return fmt.Errorf("%w: stop loss percent %v outside (0,1)", ErrInvalidConfiguration, p.StopLossPercent)
	}
	if !(p.SplitThreshold > 0 && p.SplitThreshold < 1) {
		return fmt.Errorf("%w: split threshold %v outside (0,1)", ErrInvalidConfiguration, p.SplitThreshold)
	}
	if !(p.ReentryCushion >= 0 && p.ReentryCushion < 1) {
		return fmt.Errorf("%w: reentry cushion %v outside [0,1)", ErrInvalidConfiguration, p.ReentryCushion)
	}
	if !(p.InitialCapital > 0) {
		return fmt.Errorf("%w: initial capital must be positive, got %v", ErrInvalidConfiguration, p.InitialCapital)
	}
	return nil
}

// Label devuelve una descripción corta, útil para logs y tablas.
func (p Params) Label() string {
	return fmt.Sprintf("ma=%d/%d trend=%d sl=%.2f split=%.2f",
		p.FastLength, p.SlowLength, p.TrendLength, p.StopLossPercent, p.SplitThreshold)
}
