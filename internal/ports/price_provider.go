package ports

import (
	"context"

	"github.com/alejandrodnm/crossbot/internal/domain"
)

// PriceProvider obtiene la serie histórica (timestamp, precio) de un activo.
type PriceProvider interface {
	// FetchPrices devuelve la serie completa en orden cronológico.
	// Los timestamps vienen normalizados a segundos.
	FetchPrices(ctx context.Context, q domain.PriceQuery) ([]domain.PricePoint, error)
}
