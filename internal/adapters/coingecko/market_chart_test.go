package coingecko_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alejandrodnm/crossbot/internal/adapters/coingecko"
	"github.com/alejandrodnm/crossbot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const smallFixture = "../../../testdata/fixtures/market_chart_small.json"

func newTestClient(srv *httptest.Server, apiKey string) *coingecko.Client {
	return coingecko.NewClient(srv.URL, apiKey,
		coingecko.WithRetryWait(time.Millisecond),
		coingecko.WithRateLimit(1000, 10),
	)
}

func btcQuery() domain.PriceQuery {
	return domain.PriceQuery{Symbol: "bitcoin", Currency: "usd", Days: 420, Interval: "daily"}
}

func TestFetchPrices_Success(t *testing.T) {
	data, err := os.ReadFile(smallFixture)
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coins/bitcoin/market_chart", r.URL.Path)
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currency"))
		assert.Equal(t, "420", r.URL.Query().Get("days"))
		assert.Equal(t, "daily", r.URL.Query().Get("interval"))
		assert.Equal(t, "secret", r.Header.Get("x-cg-demo-api-key"))
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	}))
	defer srv.Close()

	points, err := newTestClient(srv, "secret").FetchPrices(context.Background(), btcQuery())
	require.NoError(t, err)

	// El último punto repite el timestamp y se descarta.
	require.Len(t, points, 3)
	assert.Equal(t, int64(1650000000), points[0].Timestamp)
	assert.InDelta(t, 39000.5, points[0].Price, 1e-9)
	assert.Equal(t, int64(1650172800), points[2].Timestamp)
	assert.NoError(t, domain.ValidateSeries(points))
}

func TestFetchPrices_NoAPIKeyHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("x-cg-demo-api-key"))
		w.Write([]byte(`{"prices": []}`))
	}))
	defer srv.Close()

	points, err := newTestClient(srv, "").FetchPrices(context.Background(), btcQuery())
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestFetchPrices_RetriesOnServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"prices": [[1650000000000, 100.5]]}`))
	}))
	defer srv.Close()

	points, err := newTestClient(srv, "").FetchPrices(context.Background(), btcQuery())
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetchPrices_ServerErrorExhaustsRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv, "").FetchPrices(context.Background(), btcQuery())
	require.Error(t, err)
	assert.Equal(t, int32(4), calls.Load())
}

func TestFetchPrices_ClientErrorNoRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"coin not found"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv, "").FetchPrices(context.Background(), btcQuery())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "coin not found")
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetchPrices_MalformedEntry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"prices": [[1650000000000]]}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv, "").FetchPrices(context.Background(), btcQuery())
	assert.Error(t, err)
}

func TestFileProvider(t *testing.T) {
	points, err := coingecko.NewFileProvider(smallFixture).FetchPrices(context.Background(), btcQuery())
	require.NoError(t, err)
	assert.Len(t, points, 3)

	_, err = coingecko.NewFileProvider("does-not-exist.json").FetchPrices(context.Background(), btcQuery())
	assert.Error(t, err)
}

func TestFileProvider_SecondsTimestamps(t *testing.T) {
	path := t.TempDir() + "/chart.json"
	require.NoError(t, os.WriteFile(path, []byte(`{"prices": [[1650000000, 1.5], [1650086400.0, 2.5]]}`), 0o644))

	points, err := coingecko.NewFileProvider(path).FetchPrices(context.Background(), btcQuery())
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, int64(1650000000), points[0].Timestamp)
	assert.Equal(t, int64(1650086400), points[1].Timestamp)
}

func TestFileProvider_OutOfOrderTimestampsAreKept(t *testing.T) {
	points, err := coingecko.NewFileProvider("../../../testdata/fixtures/market_chart_descending.json").
		FetchPrices(context.Background(), btcQuery())
	require.NoError(t, err)

	// Solo se descartan duplicados exactos; el orden lo valida el dominio.
	require.Len(t, points, 4)
	assert.Equal(t, int64(1650300000), points[0].Timestamp)
	assert.ErrorIs(t, domain.ValidateSeries(points), domain.ErrInvalidInputData)
}
