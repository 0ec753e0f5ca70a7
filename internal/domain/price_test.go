package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSeries_OK(t *testing.T) {
	err := ValidateSeries([]PricePoint{{1, 10}, {2, 11}, {5, 9.5}})
	assert.NoError(t, err)
}

func TestValidateSeries_Empty(t *testing.T) {
	assert.ErrorIs(t, ValidateSeries(nil), ErrInvalidInputData)
}

func TestValidateSeries_NonPositivePrice(t *testing.T) {
	assert.ErrorIs(t, ValidateSeries([]PricePoint{{1, 10}, {2, 0}}), ErrInvalidInputData)
	assert.ErrorIs(t, ValidateSeries([]PricePoint{{1, -3}}), ErrInvalidInputData)
	assert.ErrorIs(t, ValidateSeries([]PricePoint{{1, math.NaN()}}), ErrInvalidInputData)
	assert.ErrorIs(t, ValidateSeries([]PricePoint{{1, math.Inf(1)}}), ErrInvalidInputData)
}

func TestValidateSeries_NotChronological(t *testing.T) {
	assert.ErrorIs(t, ValidateSeries([]PricePoint{{5, 10}, {4, 11}}), ErrInvalidInputData)
	assert.ErrorIs(t, ValidateSeries([]PricePoint{{5, 10}, {5, 11}}), ErrInvalidInputData)
}

func TestPriceQuery_CacheKey(t *testing.T) {
	q := PriceQuery{Symbol: "bitcoin", Currency: "usd", Days: 420, Interval: "daily"}
	assert.Equal(t, "bitcoin:usd:420:daily", q.CacheKey())
}

func TestEventKind_ClosesSide(t *testing.T) {
	assert.Equal(t, SideLong, KindLongStopLoss.ClosesSide())
	assert.Equal(t, SideLong, KindLongExit.ClosesSide())
	assert.Equal(t, SideShort, KindShortExit.ClosesSide())
	assert.Equal(t, SideNone, KindLongEntry.ClosesSide())
	assert.Equal(t, SideNone, KindNone.ClosesSide())
	assert.True(t, KindShortEntry.IsEntry())
	assert.True(t, KindShortStopLoss.IsExit())
}

func TestCounts_AddAndTotal(t *testing.T) {
	var c Counts
	for _, k := range []EventKind{KindLongEntry, KindLongStopLoss, KindShortEntry, KindShortExit, KindLongEntry, KindLongExit} {
		c.Add(k)
	}
	assert.Equal(t, Counts{Buy: 2, Short: 1, BuyStopLoss: 1, ShortExit: 1, BuyExit: 1}, c)
	assert.Equal(t, 6, c.Total())
}
