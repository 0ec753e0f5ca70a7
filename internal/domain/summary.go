package domain

// OpenPosition describe una posición que quedó abierta al final de la serie.
// No se liquida: su valor no realizado se reporta aparte de RunTotals.
type OpenPosition struct {
	Side          Side
	EntryPrice    float64
	StopLossPrice float64
	Units         float64
	MarkPrice     float64 // último precio observado
	UnrealizedPnL float64
}

// Summary es el resumen final de una corrida.
type Summary struct {
	InitialCapital    float64
	FinalInvestment   float64
	GrowthPercent     float64 // final / inicial × 100
	RealizedProfit    float64 // final - inicial
	TotalTrades       int
	Counts            Counts
	FirstEntryPrice   float64 // 0 si nunca se entró
	LastPrice         float64
	BuyAndHoldPercent float64 // last / firstEntry × 100 (0 si nunca se entró)
	OpenPosition      *OpenPosition
}

// RunResult es el resultado completo de una corrida con un set de parámetros.
type RunResult struct {
	ID      string
	Params  Params
	Events  []TradeEvent
	Summary Summary
}
