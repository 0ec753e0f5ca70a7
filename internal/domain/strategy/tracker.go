package strategy

import "math"

// Averages son las medias de un paso. NaN = no disponible (ventana incompleta).
type Averages struct {
	Trend        float64
	TrendBase    float64 // valor más viejo de la ventana de tendencia
	TrendPercent float64 // Trend / TrendBase; >= 1 tendencia alcista
	Fast         float64
	Slow         float64
}

// CrossoverReady devuelve true si fast y slow están disponibles.
func (a Averages) CrossoverReady() bool {
	return !math.IsNaN(a.Fast) && !math.IsNaN(a.Slow)
}

// TrendReady devuelve true si TrendPercent está disponible.
func (a Averages) TrendReady() bool {
	return !math.IsNaN(a.TrendPercent)
}

// Tracker mantiene las tres ventanas (trend, fast, slow) sobre el stream de precios.
type Tracker struct {
	trend *SlidingWindow
	fast  *SlidingWindow
	slow  *SlidingWindow
}

// NewTracker crea un Tracker con las longitudes dadas. fast < slow es convención
// del caller; aquí no se verifica.
func NewTracker(trendLen, fastLen, slowLen int) *Tracker {
	return &Tracker{
		trend: NewSlidingWindow(trendLen),
		fast:  NewSlidingWindow(fastLen),
		slow:  NewSlidingWindow(slowLen),
	}
}

// Observe avanza las tres ventanas con el precio y devuelve las medias del paso.
// Se llama una vez por PricePoint, en orden, sin saltos.
//
// Si la base de tendencia es <= 0 la división queda indefinida: TrendPercent se marca
// no disponible (NaN) y el paso sigue adelante sin abortar la corrida.
func (t *Tracker) Observe(price float64) Averages {
	t.trend.Push(price)
	t.fast.Push(price)
	t.slow.Push(price)

	avg := Averages{
		TrendPercent: math.NaN(),
	}
	avg.Trend, _ = t.trend.Average()
	avg.TrendBase, _ = t.trend.Base()
	avg.Fast, _ = t.fast.Average()
	avg.Slow, _ = t.slow.Average()

	if t.trend.Full() && avg.TrendBase > 0 {
		avg.TrendPercent = avg.Trend / avg.TrendBase
	}
	return avg
}

// SplitPercent es la separación normalizada entre fast y slow respecto a la mayor:
// |fast - slow| / max(fast, slow). Se usa como filtro de mercado plano.
func SplitPercent(fast, slow float64) float64 {
	if slow > fast {
		return (slow - fast) / slow
	}
	if fast <= 0 {
		return 0
	}
	return (fast - slow) / fast
}
