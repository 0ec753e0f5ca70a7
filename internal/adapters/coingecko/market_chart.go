package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"

	"github.com/alejandrodnm/crossbot/internal/domain"
)

// rawMarketChart es la respuesta de /coins/{id}/market_chart.
// Cada entrada de prices es [timestamp_ms, price].
type rawMarketChart struct {
	Prices [][]json.Number `json:"prices"`
}

// FetchPrices descarga la serie de precios del endpoint market_chart.
func (c *Client) FetchPrices(ctx context.Context, q domain.PriceQuery) ([]domain.PricePoint, error) {
	params := url.Values{}
	params.Set("vs_currency", q.Currency)
	params.Set("days", strconv.Itoa(q.Days))
	if q.Interval != "" {
		params.Set("interval", q.Interval)
	}
	endpoint := fmt.Sprintf("%s/coins/%s/market_chart?%s", c.baseURL, url.PathEscape(q.Symbol), params.Encode())

	var raw rawMarketChart
	if err := c.get(ctx, endpoint, &raw); err != nil {
		return nil, fmt.Errorf("coingecko.FetchPrices: %w", err)
	}

	points, err := toPricePoints(raw)
	if err != nil {
		return nil, fmt.Errorf("coingecko.FetchPrices: %w", err)
	}

	slog.Debug("fetched market chart",
		"symbol", q.Symbol,
		"currency", q.Currency,
		"days", q.Days,
		"points", len(points),
	)
	return points, nil
}

// FileProvider lee una respuesta market_chart guardada en disco (modo dry-run).
type FileProvider struct {
	path string
}

// NewFileProvider crea un provider que lee siempre el archivo dado.
func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path}
}

// FetchPrices ignora la query salvo para logging y devuelve la serie del archivo.
func (f *FileProvider) FetchPrices(_ context.Context, q domain.PriceQuery) ([]domain.PricePoint, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("coingecko.FileProvider: read %q: %w", f.path, err)
	}

	var raw rawMarketChart
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("coingecko.FileProvider: parse %q: %w", f.path, err)
	}

	points, err := toPricePoints(raw)
	if err != nil {
		return nil, fmt.Errorf("coingecko.FileProvider: %w", err)
	}

	slog.Debug("loaded market chart fixture", "path", f.path, "symbol", q.Symbol, "points", len(points))
	return points, nil
}

// toPricePoints convierte los pares crudos a PricePoints con timestamps en segundos.
// Descarta solo los puntos que repiten exactamente el timestamp anterior (la API a
// veces repite el último punto). Un timestamp que retrocede se deja pasar para que
// domain.ValidateSeries lo rechace.
func toPricePoints(raw rawMarketChart) ([]domain.PricePoint, error) {
	points := make([]domain.PricePoint, 0, len(raw.Prices))
	dropped := 0
	for i, pair := range raw.Prices {
		if len(pair) < 2 {
			return nil, fmt.Errorf("price entry %d: expected [timestamp, price], got %d values", i, len(pair))
		}
		ts, err := parseTimestamp(pair[0])
		if err != nil {
			return nil, fmt.Errorf("price entry %d: %w", i, err)
		}
		price, err := pair[1].Float64()
		if err != nil {
			return nil, fmt.Errorf("price entry %d: parse price %q: %w", i, pair[1], err)
		}

		if n := len(points); n > 0 && ts == points[n-1].Timestamp {
			dropped++
			continue
		}
		points = append(points, domain.PricePoint{Timestamp: ts, Price: price})
	}

	if dropped > 0 {
		slog.Debug("dropped duplicate price points", "dropped", dropped)
	}
	return points, nil
}

// parseTimestamp acepta segundos o milisegundos (enteros o decimales) y devuelve segundos.
func parseTimestamp(n json.Number) (int64, error) {
	s := n.String()
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		if v > 1e12 {
			return v / 1000, nil
		}
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	if f > 1e12 {
		f /= 1000
	}
	return int64(f), nil
}
