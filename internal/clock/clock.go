// Package clock provides the fixed-rate tick source used outside the GUI.
// Inside the GUI, ebiten's own Update loop plays this role at the same rate.
package clock

import (
	"context"
	"time"
)

// DefaultTPS is the tick rate of the panel.
const DefaultTPS = 60

// Interval returns the tick period for tps ticks per second.
func Interval(tps int) time.Duration {
	if tps <= 0 {
		tps = DefaultTPS
	}
	return time.Second / time.Duration(tps)
}

// TickFunc is called once per tick with the 1-based tick number. Returning
// false stops the ticker.
type TickFunc func(n uint64) bool

// Ticker calls a TickFunc at a fixed interval.
type Ticker struct {
	Interval time.Duration
	// Fast skips the wait between ticks, for tests and batch runs.
	Fast bool
}

// New returns a ticker running at tps ticks per second.
func New(tps int) *Ticker {
	return &Ticker{Interval: Interval(tps)}
}

// Run ticks until fn returns false or ctx is done. It returns the number of
// ticks delivered and ctx.Err() if the context ended the run.
func (t *Ticker) Run(ctx context.Context, fn TickFunc) (uint64, error) {
	var n uint64
	if t.Fast {
		for {
			if err := ctx.Err(); err != nil {
				return n, err
			}
			n++
			if !fn(n) {
				return n, nil
			}
		}
	}

	ticker := time.NewTicker(t.Interval)
	defer ticker.Stop()
	for {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		select {
		case <-ctx.Done():
			return n, ctx.Err()
		case <-ticker.C:
			n++
			if !fn(n) {
				return n, nil
			}
		}
	}
}
