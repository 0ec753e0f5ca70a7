package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alejandrodnm/crossbot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStorage_LoadExpired(t *testing.T) {
	db, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	db.now = func() time.Time { return base }
	require.NoError(t, db.SavePrices(ctx, "k", []domain.PricePoint{{Timestamp: 1, Price: 2}}))

	db.now = func() time.Time { return base.Add(2 * time.Hour) }
	_, ok, err := db.LoadPrices(ctx, "k", time.Hour)
	require.NoError(t, err)
	assert.False(t, ok, "series older than maxAge must be treated as missing")

	_, ok, err = db.LoadPrices(ctx, "k", 3*time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSQLiteStorage_PruneOld(t *testing.T) {
	db, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	db.now = func() time.Time { return base }
	require.NoError(t, db.SavePrices(ctx, "old", []domain.PricePoint{{Timestamp: 1, Price: 2}}))

	db.now = func() time.Time { return base.Add(retentionSeries + time.Hour) }
	db.pruneOld(ctx)

	_, ok, err := db.LoadPrices(ctx, "old", 0)
	require.NoError(t, err)
	assert.False(t, ok)
}
