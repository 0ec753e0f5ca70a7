package backtest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alejandrodnm/crossbot/internal/adapters/coingecko"
	"github.com/alejandrodnm/crossbot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockProvider struct {
	points []domain.PricePoint
	err    error
	calls  int
}

func (m *mockProvider) FetchPrices(_ context.Context, _ domain.PriceQuery) ([]domain.PricePoint, error) {
	m.calls++
	return m.points, m.err
}

type mockCache struct {
	stored  map[string][]domain.PricePoint
	loadErr error
	saveErr error
	saves   int
}

func newMockCache() *mockCache {
	return &mockCache{stored: make(map[string][]domain.PricePoint)}
}

func (m *mockCache) LoadPrices(_ context.Context, key string, _ time.Duration) ([]domain.PricePoint, bool, error) {
	if m.loadErr != nil {
		return nil, false, m.loadErr
	}
	p, ok := m.stored[key]
	return p, ok, nil
}

func (m *mockCache) SavePrices(_ context.Context, key string, points []domain.PricePoint) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.stored[key] = points
	return nil
}

func (m *mockCache) Close() error { return nil }

var testQuery = domain.PriceQuery{Symbol: "bitcoin", Currency: "usd", Days: 420, Interval: "daily"}

func TestLoadSeries_FetchesAndCaches(t *testing.T) {
	provider := &mockProvider{points: seriesFrom(1, 2, 3)}
	cache := newMockCache()

	got, err := LoadSeries(context.Background(), testQuery, provider, cache, time.Hour)
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, 1, provider.calls)
	assert.Equal(t, got, cache.stored[testQuery.CacheKey()])

	// Segunda vez sale de la caché.
	got, err = LoadSeries(context.Background(), testQuery, provider, cache, time.Hour)
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, 1, provider.calls)
}

func TestLoadSeries_NilCache(t *testing.T) {
	provider := &mockProvider{points: seriesFrom(1, 2)}
	got, err := LoadSeries(context.Background(), testQuery, provider, nil, 0)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestLoadSeries_CacheErrorsAreIgnored(t *testing.T) {
	provider := &mockProvider{points: seriesFrom(1, 2)}
	cache := newMockCache()
	cache.loadErr = errors.New("disk on fire")
	cache.saveErr = errors.New("still on fire")

	got, err := LoadSeries(context.Background(), testQuery, provider, cache, time.Hour)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, 1, cache.saves)
}

func TestLoadSeries_InvalidCachedSeriesRefetches(t *testing.T) {
	provider := &mockProvider{points: seriesFrom(5, 6)}
	cache := newMockCache()
	cache.stored[testQuery.CacheKey()] = seriesFrom(5, -1)

	got, err := LoadSeries(context.Background(), testQuery, provider, cache, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, provider.calls)
	assert.Equal(t, 6.0, got[1].Price)
}

func TestLoadSeries_ProviderError(t *testing.T) {
	provider := &mockProvider{err: errors.New("boom")}
	_, err := LoadSeries(context.Background(), testQuery, provider, nil, 0)
	assert.Error(t, err)
}

func TestLoadSeries_InvalidFetchedSeries(t *testing.T) {
	provider := &mockProvider{points: nil}
	cache := newMockCache()
	_, err := LoadSeries(context.Background(), testQuery, provider, cache, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInputData)
	assert.Equal(t, 0, cache.saves, "invalid series must not be cached")
}

func TestLoadSeries_DescendingFixtureIsRejected(t *testing.T) {
	provider := coingecko.NewFileProvider("../../testdata/fixtures/market_chart_descending.json")
	cache := newMockCache()

	got, err := LoadSeries(context.Background(), testQuery, provider, cache, time.Hour)
	assert.ErrorIs(t, err, domain.ErrInvalidInputData)
	assert.Nil(t, got)
	assert.Equal(t, 0, cache.saves)
}
