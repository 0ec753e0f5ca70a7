package ports

import (
	"context"
	"time"

	"github.com/alejandrodnm/crossbot/internal/domain"
)

// PriceCache persiste series ya descargadas para no repetir llamadas a la API.
type PriceCache interface {
	// LoadPrices devuelve la serie guardada bajo key si no es más vieja que maxAge.
	// ok == false si no hay entrada o está vencida.
	LoadPrices(ctx context.Context, key string, maxAge time.Duration) (points []domain.PricePoint, ok bool, err error)

	// SavePrices reemplaza la serie guardada bajo key.
	SavePrices(ctx context.Context, key string, points []domain.PricePoint) error

	// Close cierra la conexión a la base de datos limpiamente.
	Close() error
}
