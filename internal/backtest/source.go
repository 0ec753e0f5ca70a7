package backtest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alejandrodnm/crossbot/internal/domain"
	"github.com/alejandrodnm/crossbot/internal/ports"
)

// LoadSeries obtiene la serie para q: primero de la caché (si hay), y si no
// del provider, guardándola después en la caché.
// Los errores de caché se loguean y se ignoran; solo falla si el provider falla
// o la serie resultante no es válida.
func LoadSeries(
	ctx context.Context,
	q domain.PriceQuery,
	provider ports.PriceProvider,
	cache ports.PriceCache,
	ttl time.Duration,
) ([]domain.PricePoint, error) {
	key := q.CacheKey()

	if cache != nil {
		points, ok, err := cache.LoadPrices(ctx, key, ttl)
		switch {
		case err != nil:
			slog.Warn("price cache read failed", "key", key, "err", err)
		case ok:
			if err := domain.ValidateSeries(points); err == nil {
				slog.Info("using cached price series", "key", key, "points", len(points))
				return points, nil
			}
			slog.Warn("cached price series is invalid, refetching", "key", key)
		}
	}

	points, err := provider.FetchPrices(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("backtest.LoadSeries: fetch: %w", err)
	}
	if err := domain.ValidateSeries(points); err != nil {
		return nil, fmt.Errorf("backtest.LoadSeries: %w", err)
	}

	slog.Info("fetched price series", "key", key, "points", len(points))

	if cache != nil {
		if err := cache.SavePrices(ctx, key, points); err != nil {
			slog.Warn("price cache write failed", "key", key, "err", err)
		}
	}
	return points, nil
}
