package strategy

import (
	"github.com/alejandrodnm/crossbot/internal/domain"
)

// Strategy define el contrato de un motor de señales que consume las medias de cada paso.
// Cada corrida usa su propia instancia; las implementaciones no son seguras para uso concurrente.
type Strategy interface {
	// Step procesa una observación y devuelve los eventos de trade generados.
	Step(pt domain.PricePoint, avg Averages) []domain.TradeEvent

	// Summary devuelve el resumen de la corrida hasta el último Step.
	Summary() domain.Summary
}

var _ Strategy = (*Engine)(nil)
