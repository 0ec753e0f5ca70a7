package strategy

import "github.com/alejandrodnm/crossbot/internal/domain"

// Engine es la máquina de estados de posición (FLAT → LONG/SHORT → FLAT).
// Cada corrida tiene su propio Engine; no comparte estado con otras corridas.
type Engine struct {
	params   domain.Params
	position domain.Position
	memory   domain.TradeMemory
	totals   domain.RunTotals

	firstEntryPrice float64
	lastPrice       float64
}

// NewEngine crea un Engine en estado FLAT con el capital inicial de params.
func NewEngine(params domain.Params) *Engine {
	return &Engine{
		params: params,
		totals: domain.RunTotals{Investment: params.InitialCapital},
	}
}

// Step procesa una observación y devuelve los eventos generados: ninguno, uno, o
// un cierre seguido de una entrada en el mismo paso.
//
// Fases estrictamente ordenadas: primero cierres, después entradas. La fase de
// entrada solo ve que la posición quedó FLAT; no reconsidera el cierre.
// Sin fast y slow disponibles el paso no hace nada.
func (e *Engine) Step(pt domain.PricePoint, avg Averages) []domain.TradeEvent {
	e.lastPrice = pt.Price
	if !avg.CrossoverReady() {
		return nil
	}

	var events []domain.TradeEvent
	if ev, ok := e.exit(pt, avg); ok {
		events = append(events, ev)
	}
	if ev, ok := e.enter(pt, avg, SplitPercent(avg.Fast, avg.Slow)); ok {
		events = append(events, ev)
	}
	return events
}

// exit evalúa stop-loss y salida por señal de la posición abierta.
func (e *Engine) exit(pt domain.PricePoint, avg Averages) (domain.TradeEvent, bool) {
	pos := e.position
	if !pos.IsOpen() || pos.StopLossPrice == 0 {
		return domain.TradeEvent{}, false
	}

	price := pt.Price
	var kind domain.EventKind
	var fill, profit float64

	switch pos.Side {
	case domain.SideLong:
		switch {
		case price <= pos.StopLossPrice:
			kind, fill = domain.KindLongStopLoss, pos.StopLossPrice
		case price <= avg.Slow:
			kind, fill = domain.KindLongExit, price
		default:
			return domain.TradeEvent{}, false
		}
		profit = fill - pos.EntryPrice
		e.totals.Investment = pos.Units * fill

	case domain.SideShort:
		switch {
		case price >= pos.StopLossPrice:
			kind, fill = domain.KindShortStopLoss, pos.StopLossPrice
		case price >= avg.Slow:
			kind, fill = domain.KindShortExit, price
		default:
			return domain.TradeEvent{}, false
		}
		profit = pos.EntryPrice - fill
		e.totals.Investment += pos.Units * profit
	}

	// La memoria guarda el precio de mercado, no el del stop.
	e.memory = domain.TradeMemory{LastSignal: kind, LastExitPrice: price}
	e.position = domain.Position{}
	e.totals.Counts.Add(kind)
	ev := e.event(pt, fill, kind)
	ev.RealizedProfit = profit
	return ev, true
}

// enter evalúa los triggers de entrada. Solo con la posición FLAT y la tendencia disponible.
func (e *Engine) enter(pt domain.PricePoint, avg Averages, split float64) (domain.TradeEvent, bool) {
	if e.position.IsOpen() || !avg.TrendReady() || split < e.params.SplitThreshold {
		return domain.TradeEvent{}, false
	}

	price := pt.Price
	cushion := e.params.ReentryCushion

	switch {
	case avg.Fast > avg.Slow && price > avg.Slow && avg.TrendPercent >= 1:
		// El ajuste queda en la memoria: se acumula mientras el trigger siga suprimido.
		e.memory.LastExitPrice += e.memory.LastExitPrice * cushion
		if e.memory.LastSignal.ClosesSide() == domain.SideLong && !(price > e.memory.LastExitPrice) {
			return domain.TradeEvent{}, false
		}
		return e.open(pt, domain.SideLong), true

	case avg.Fast < avg.Slow && price < avg.Slow && avg.TrendPercent < 1:
		e.memory.LastExitPrice -= e.memory.LastExitPrice * cushion
		if e.memory.LastSignal.ClosesSide() == domain.SideShort && !(price < e.memory.LastExitPrice) {
			return domain.TradeEvent{}, false
		}
		return e.open(pt, domain.SideShort), true
	}
	return domain.TradeEvent{}, false
}

func (e *Engine) open(pt domain.PricePoint, side domain.Side) domain.TradeEvent {
	price := pt.Price
	stop := price - price*e.params.StopLossPercent
	kind := domain.KindLongEntry
	if side == domain.SideShort {
		stop = price + price*e.params.StopLossPercent
		kind = domain.KindShortEntry
	}

	e.position = domain.Position{
		Side:          side,
		EntryPrice:    price,
		StopLossPrice: stop,
		Units:         e.totals.Investment / price,
	}
	if e.firstEntryPrice == 0 {
		e.firstEntryPrice = price
	}
	e.totals.Counts.Add(kind)
	return e.event(pt, price, kind)
}

func (e *Engine) event(pt domain.PricePoint, fill float64, kind domain.EventKind) domain.TradeEvent {
	return domain.TradeEvent{
		Timestamp:          pt.Timestamp,
		Price:              pt.Price,
		FillPrice:          fill,
		Kind:               kind,
		InvestmentAmount:   e.totals.Investment,
		RunningProfitTotal: e.totals.Investment - e.params.InitialCapital,
	}
}

// Position devuelve la posición actual.
func (e *Engine) Position() domain.Position { return e.position }

// Memory devuelve la memoria del último cierre.
func (e *Engine) Memory() domain.TradeMemory { return e.memory }

// Totals devuelve los acumulados de la corrida.
func (e *Engine) Totals() domain.RunTotals { return e.totals }

// Summary arma el resumen final. Una posición abierta no se liquida: se reporta
// como OpenPosition con su PnL no realizado al último precio.
func (e *Engine) Summary() domain.Summary {
	initial := e.params.InitialCapital
	s := domain.Summary{
		InitialCapital:  initial,
		FinalInvestment: e.totals.Investment,
		RealizedProfit:  e.totals.Investment - initial,
		TotalTrades:     e.totals.Counts.Total(),
		Counts:          e.totals.Counts,
		FirstEntryPrice: e.firstEntryPrice,
		LastPrice:       e.lastPrice,
	}
	if initial > 0 {
		s.GrowthPercent = e.totals.Investment / initial * 100
	}
	if e.firstEntryPrice > 0 {
		s.BuyAndHoldPercent = e.lastPrice / e.firstEntryPrice * 100
	}

	if pos := e.position; pos.IsOpen() {
		pnl := pos.Units * (e.lastPrice - pos.EntryPrice)
		if pos.Side == domain.SideShort {
			pnl = -pnl
		}
		s.OpenPosition = &domain.OpenPosition{
			Side:          pos.Side,
			EntryPrice:    pos.EntryPrice,
			StopLossPrice: pos.StopLossPrice,
			Units:         pos.Units,
			MarkPrice:     e.lastPrice,
			UnrealizedPnL: pnl,
		}
	}
	return s
}
