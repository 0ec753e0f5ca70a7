package domain

import (
	"fmt"
	"math"
	"time"
)

// PricePoint es una muestra (timestamp, precio) del instrumento. Inmutable.
type PricePoint struct {
	Timestamp int64 // epoch en segundos
	Price     float64
}

// Time devuelve el timestamp como time.Time en UTC.
func (p PricePoint) Time() time.Time {
	return time.Unix(p.Timestamp, 0).UTC()
}

// PriceQuery describe qué serie pedir a un PriceProvider.
type PriceQuery struct {
	Symbol   string // id del activo, p.ej. "bitcoin"
	Currency string // moneda de cotización, p.ej. "usd"
	Days     int    // cuántos intervalos hacia atrás
	Interval string // minutely | hourly | daily
}

// CacheKey identifica la serie en la caché de precios.
func (q PriceQuery) CacheKey() string {
	return fmt.Sprintf("%s:%s:%d:%s", q.Symbol, q.Currency, q.Days, q.Interval)
}

// ValidateSeries verifica el contrato de entrada: serie no vacía, timestamps
// estrictamente ascendentes y precios finitos > 0.
// Rechazar precios <= 0 aquí garantiza que la base de tendencia nunca sea cero.
func ValidateSeries(points []PricePoint) error {
	if len(points) == 0 {
		return fmt.Errorf("%w: empty price series", ErrInvalidInputData)
	}
	for i, p := range points {
		if math.IsNaN(p.Price) || math.IsInf(p.Price, 0) || p.Price <= 0 {
			return fmt.Errorf("%w: non-positive price %v at index %d", ErrInvalidInputData, p.Price, i)
		}
		if i > 0 && p.Timestamp <= points[i-1].Timestamp {
			return fmt.Errorf("%w: timestamp %d at index %d is not after %d",
				ErrInvalidInputData, p.Timestamp, i, points[i-1].Timestamp)
		}
	}
	return nil
}
