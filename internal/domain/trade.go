package domain

// Side es el lado de la posición abierta.
type Side int

const (
	SideNone Side = iota
	SideLong
	SideShort
)

// String devuelve el nombre del lado.
func (s Side) String() string {
	switch s {
	case SideLong:
		return "LONG"
	case SideShort:
		return "SHORT"
	default:
		return "NONE"
	}
}

// Position es el estado de la única posición viva. Side == SideNone significa FLAT.
type Position struct {
	Side          Side
	EntryPrice    float64
	StopLossPrice float64 // 0 = sin stop activo
	Units         float64 // investment / entryPrice al momento de entrar
}

// IsOpen devuelve true si hay una posición LONG o SHORT abierta.
func (p Position) IsOpen() bool {
	return p.Side != SideNone
}

// EventKind es el tipo de evento de trade.
type EventKind string

const (
	KindNone          EventKind = ""
	KindLongEntry     EventKind = "LONG_ENTRY"
	KindShortEntry    EventKind = "SHORT_ENTRY"
	KindLongExit      EventKind = "LONG_EXIT"
	KindLongStopLoss  EventKind = "LONG_STOPLOSS"
	KindShortExit     EventKind = "SHORT_EXIT"
	KindShortStopLoss EventKind = "SHORT_STOPLOSS"
)

// IsEntry devuelve true para LONG_ENTRY y SHORT_ENTRY.
func (k EventKind) IsEntry() bool {
	return k == KindLongEntry || k == KindShortEntry
}

// IsExit devuelve true para cualquier cierre (señal o stop-loss).
func (k EventKind) IsExit() bool {
	return k.ClosesSide() != SideNone
}

// ClosesSide devuelve el lado que cierra el evento, o SideNone si no es un cierre.
func (k EventKind) ClosesSide() Side {
	switch k {
	case KindLongExit, KindLongStopLoss:
		return SideLong
	case KindShortExit, KindShortStopLoss:
		return SideShort
	default:
		return SideNone
	}
}

// TradeMemory recuerda el último cierre para filtrar reentradas en el mismo lado.
type TradeMemory struct {
	LastSignal    EventKind // KindNone si todavía no hubo cierres
	LastExitPrice float64   // precio de mercado al cierre (no el precio del stop)
}

// TradeEvent es un evento emitido por el motor.
type TradeEvent struct {
	Timestamp          int64
	Price              float64 // precio de la observación
	FillPrice          float64 // precio realizado: el stop en stop-loss, el de mercado en el resto
	Kind               EventKind
	RealizedProfit     float64 // por unidad: fill - entry en LONG, entry - fill en SHORT; 0 en entradas
	InvestmentAmount   float64 // investment resultante tras el evento
	RunningProfitTotal float64 // beneficio realizado acumulado (investment - capital inicial)
}

// Counts cuenta los eventos de cada tipo en una corrida.
type Counts struct {
	Buy           int
	Short         int
	BuyStopLoss   int
	ShortStopLoss int
	BuyExit       int
	ShortExit     int
}

// Total devuelve la suma de todos los contadores (entradas + salidas).
func (c Counts) Total() int {
	return c.Buy + c.Short + c.BuyStopLoss + c.ShortStopLoss + c.BuyExit + c.ShortExit
}

// Add incrementa el contador correspondiente al tipo de evento.
func (c *Counts) Add(k EventKind) {
	switch k {
	case KindLongEntry:
		c.Buy++
	case KindShortEntry:
		c.Short++
	case KindLongStopLoss:
		c.BuyStopLoss++
	case KindShortStopLoss:
		c.ShortStopLoss++
	case KindLongExit:
		c.BuyExit++
	case KindShortExit:
		c.ShortExit++
	}
}

// RunTotals es el acumulador mutable de una corrida. Pertenece a la corrida, nunca es global.
type RunTotals struct {
	Investment float64
	Counts     Counts
}
