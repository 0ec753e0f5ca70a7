package strategy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlidingWindow_FillAndEvict(t *testing.T) {
	w := NewSlidingWindow(3)

	w.Push(1)
	w.Push(2)
	_, ok := w.Average()
	assert.False(t, ok)
	_, ok = w.Base()
	assert.False(t, ok)

	w.Push(3)
	avg, ok := w.Average()
	assert.True(t, ok)
	assert.InDelta(t, 2.0, avg, 1e-12)
	base, _ := w.Base()
	assert.Equal(t, 1.0, base)

	w.Push(4)
	avg, _ = w.Average()
	base, _ = w.Base()
	assert.InDelta(t, 3.0, avg, 1e-12)
	assert.Equal(t, 2.0, base)
	assert.Equal(t, []float64{2, 3, 4}, w.Values())
	assert.Equal(t, 3, w.Len())
}

func TestSlidingWindow_AvailabilityByLength(t *testing.T) {
	for length := 1; length <= 7; length++ {
		w := NewSlidingWindow(length)
		for i := 0; i < 25; i++ {
			w.Push(float64(i + 1))
			assert.LessOrEqual(t, w.Len(), length)

			avg, ok := w.Average()
			if i+1 < length {
				assert.False(t, ok, "length=%d obs=%d", length, i+1)
				assert.True(t, math.IsNaN(avg))
			} else {
				assert.True(t, ok, "length=%d obs=%d", length, i+1)
			}
		}
	}
}

func TestSlidingWindow_LengthOneIsCurrentPrice(t *testing.T) {
	w := NewSlidingWindow(1)
	w.Push(42.5)
	avg, ok := w.Average()
	assert.True(t, ok)
	assert.Equal(t, 42.5, avg)

	w.Push(17)
	avg, _ = w.Average()
	base, _ := w.Base()
	assert.Equal(t, 17.0, avg)
	assert.Equal(t, 17.0, base)
}

func TestSlidingWindow_SumOrderMatchesRescan(t *testing.T) {
	prices := []float64{0.1, 0.2, 0.3, 0.7, 1e16, 1, -1e16}
	w := NewSlidingWindow(3)
	for i, p := range prices {
		w.Push(p)
		if i < 2 {
			continue
		}
		var want float64
		for _, v := range prices[i-2 : i+1] {
			want += v
		}
		got, _ := w.Average()
		assert.Equal(t, want/3, got)
	}
}

func TestNewSlidingWindow_PanicsOnZero(t *testing.T) {
	assert.Panics(t, func() { NewSlidingWindow(0) })
}
