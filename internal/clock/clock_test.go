package clock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterval(t *testing.T) {
	assert.Equal(t, time.Second/60, Interval(60))
	assert.Equal(t, time.Second/60, Interval(0))
	assert.Equal(t, 10*time.Millisecond, Interval(100))
}

func TestFastTickerStopsWhenFuncReturnsFalse(t *testing.T) {
	tk := &Ticker{Fast: true}
	var seen []uint64
	n, err := tk.Run(context.Background(), func(i uint64) bool {
		seen = append(seen, i)
		return i < 5
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(5), n)
	assert.Equal(t, []uint64{1, 2, 3, 4, 5}, seen)
}

func TestTickerRespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	tk := &Ticker{Interval: time.Millisecond}
	n, err := tk.Run(ctx, func(i uint64) bool {
		if i == 3 {
			cancel()
		}
		return true
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, uint64(3), n)
}

func TestFastTickerCancelledUpFront(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n, err := (&Ticker{Fast: true}).Run(ctx, func(uint64) bool { return true })
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, n)
}

func TestRealTickerDelivers(t *testing.T) {
	n, err := New(1000).Run(context.Background(), func(i uint64) bool { return i < 3 })
	require.NoError(t, err)
	assert.Equal(t, uint64(3), n)
}
