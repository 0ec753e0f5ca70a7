package ports

import (
	"context"

	"github.com/alejandrodnm/crossbot/internal/domain"
)

// Reporter presenta los resultados del backtest al usuario.
type Reporter interface {
	// ReportRun muestra una corrida: eventos (en modo detallado) y resumen.
	ReportRun(ctx context.Context, result domain.RunResult) error

	// ReportSweep muestra el ranking de todas las corridas del barrido.
	ReportSweep(ctx context.Context, results []domain.RunResult) error
}
