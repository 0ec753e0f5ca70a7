package notify

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/alejandrodnm/crossbot/internal/domain"
	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
)

const eventDateLayout = "02 Jan 2006"

// Console implementa ports.Reporter.
type Console struct {
	out      io.Writer
	market   domain.PriceQuery
	detailed bool
}

// NewConsole crea un reporter que escribe a stdout.
// Con detailed imprime cada evento de trade además del resumen.
func NewConsole(market domain.PriceQuery, detailed bool) *Console {
	return &Console{out: os.Stdout, market: market, detailed: detailed}
}

// NewConsoleWriter crea un reporter para tests.
func NewConsoleWriter(w io.Writer, market domain.PriceQuery, detailed bool) *Console {
	return &Console{out: w, market: market, detailed: detailed}
}

// ReportRun imprime los eventos (en modo detallado) y el resumen de una corrida.
func (c *Console) ReportRun(_ context.Context, r domain.RunResult) error {
	p := r.Params
	s := r.Summary

	fmt.Fprintf(c.out, "\n=== RUN %s  %s ===\n", shortID(r.ID), p.Label())

	if c.detailed {
		c.printEvents(r.Events)
	}

	fmt.Fprintf(c.out, "  Symbol:              %s (%s)\n", c.market.Symbol, c.market.Currency)
	fmt.Fprintf(c.out, "  Time back:           %d %s iterations\n", c.market.Days, c.market.Interval)
	fmt.Fprintf(c.out, "  Moving avg:          %d / %d\n", p.FastLength, p.SlowLength)
	fmt.Fprintf(c.out, "  Trend MA length:     %d\n", p.TrendLength)
	fmt.Fprintf(c.out, "  Stop loss percent:   %s\n", fixed(p.StopLossPercent, 2))
	fmt.Fprintf(c.out, "  MA split setting:    %s\n", fixed(p.SplitThreshold, 2))
	fmt.Fprintf(c.out, "  Initial investment:  %s   Final investment: %s   Growth: %s%%\n",
		money(s.InitialCapital), money(s.FinalInvestment), fixed(s.GrowthPercent, 2))
	if s.FirstEntryPrice > 0 {
		fmt.Fprintf(c.out, "  Buy & hold (from first entry %s): %s%%\n",
			money(s.FirstEntryPrice), fixed(s.BuyAndHoldPercent, 2))
	}
	fmt.Fprintf(c.out, "  Total trades:        %d\n", s.TotalTrades)

	c.printCounts(s.Counts)

	if op := s.OpenPosition; op != nil {
		fmt.Fprintf(c.out, "  Open position (not liquidated): %s entry %s stop %s units %s mark %s unrealized %s\n",
			op.Side, money(op.EntryPrice), money(op.StopLossPrice), fixed(op.Units, 6),
			money(op.MarkPrice), money(op.UnrealizedPnL))
	}
	return nil
}

// ReportSweep imprime el ranking del barrido ordenado por inversión final.
func (c *Console) ReportSweep(_ context.Context, results []domain.RunResult) error {
	if len(results) == 0 {
		fmt.Fprintln(c.out, "no runs to report")
		return nil
	}

	ranked := make([]domain.RunResult, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Summary.FinalInvestment > ranked[j].Summary.FinalInvestment
	})

	fmt.Fprintf(c.out, "\n=== SWEEP %s/%s: %d runs ===\n", c.market.Symbol, c.market.Currency, len(results))

	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Run", "MA", "Trend", "SL", "Split", "Final", "Growth", "Trades", "Long/Short", "Open")
	for i, r := range ranked {
		p, s := r.Params, r.Summary
		open := "-"
		if s.OpenPosition != nil {
			open = s.OpenPosition.Side.String()
		}
		table.Append(
			fmt.Sprintf("%d", i+1),
			shortID(r.ID),
			fmt.Sprintf("%d/%d", p.FastLength, p.SlowLength),
			fmt.Sprintf("%d", p.TrendLength),
			fixed(p.StopLossPercent, 2),
			fixed(p.SplitThreshold, 2),
			money(s.FinalInvestment),
			fixed(s.GrowthPercent, 2)+"%",
			fmt.Sprintf("%d", s.TotalTrades),
			fmt.Sprintf("%d/%d", s.Counts.Buy, s.Counts.Short),
			open,
		)
	}
	table.Render()

	best := ranked[0]
	fmt.Fprintf(c.out, "  BEST: %s  %s  final %s (%s%%)\n\n",
		shortID(best.ID), best.Params.Label(), money(best.Summary.FinalInvestment), fixed(best.Summary.GrowthPercent, 2))
	return nil
}

// printEvents imprime una línea por evento.
func (c *Console) printEvents(events []domain.TradeEvent) {
	if len(events) == 0 {
		fmt.Fprintln(c.out, "  (no trades)")
		return
	}
	for _, ev := range events {
		date := domain.PricePoint{Timestamp: ev.Timestamp}.Time().Format(eventDateLayout)
		line := fmt.Sprintf("  %s  price %s  investment %s  %s",
			date, fixed(ev.Price, 2), money(ev.InvestmentAmount), ev.Kind)
		if ev.FillPrice != ev.Price {
			line += fmt.Sprintf(" @ %s", fixed(ev.FillPrice, 2))
		}
		if ev.Kind.IsExit() {
			line += fmt.Sprintf("  pnl/unit %s", fixed(ev.RealizedProfit, 2))
		}
		fmt.Fprintln(c.out, line)
	}
}

// printCounts imprime los contadores por tipo de evento.
func (c *Console) printCounts(k domain.Counts) {
	table := tablewriter.NewWriter(c.out)
	table.Header("Buy", "Short", "Buy SL", "Short SL", "Buy exit", "Short exit")
	table.Append(
		fmt.Sprintf("%d", k.Buy),
		fmt.Sprintf("%d", k.Short),
		fmt.Sprintf("%d", k.BuyStopLoss),
		fmt.Sprintf("%d", k.ShortStopLoss),
		fmt.Sprintf("%d", k.BuyExit),
		fmt.Sprintf("%d", k.ShortExit),
	)
	table.Render()
}

// --- helpers ---

// fixed redondea a places decimales usando aritmética decimal (sin artefactos de float).
func fixed(x float64, places int32) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return "n/a"
	}
	return decimal.NewFromFloat(x).StringFixed(places)
}

func money(x float64) string {
	return "$" + fixed(x, 2)
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
