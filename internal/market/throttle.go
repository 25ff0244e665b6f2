package market

import (
	"context"
	"sync"
	"time"
)

// Throttle wraps a Provider and enforces a minimum time between upstream
// calls. Concurrent callers wait until the interval has elapsed since the
// last call, or return early if the context is canceled.
type Throttle struct {
	P        Provider
	Interval time.Duration

	mu   sync.Mutex
	last time.Time
}

func (t *Throttle) Name() string { return t.P.Name() }

func (t *Throttle) gate(ctx context.Context) error {
	if t.Interval <= 0 {
		return nil
	}
	t.mu.Lock()
	wait := time.Until(t.last.Add(t.Interval))
	t.mu.Unlock()
	if wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	return nil
}

func (t *Throttle) mark() {
	if t.Interval <= 0 {
		return
	}
	t.mu.Lock()
	t.last = time.Now()
	t.mu.Unlock()
}

func (t *Throttle) Snapshot(ctx context.Context, symbol string) (Snapshot, error) {
	if err := t.gate(ctx); err != nil {
		return Snapshot{}, err
	}
	snap, err := t.P.Snapshot(ctx, symbol)
	t.mark()
	return snap, err
}

func (t *Throttle) History(ctx context.Context, symbol string, days int) ([]PricePoint, error) {
	if err := t.gate(ctx); err != nil {
		return nil, err
	}
	pts, err := t.P.History(ctx, symbol, days)
	t.mark()
	return pts, err
}
