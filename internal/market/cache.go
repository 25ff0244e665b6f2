package market

import (
	"context"
	"sync"
	"time"
)

type snapEntry struct {
	expiresAt time.Time
	snap      Snapshot
}

// Cache wraps a Provider with a per-symbol TTL cache of snapshots.
// History calls pass through: series are only requested once per quote
// and the provider already bounds them. Disabled when TTL <= 0.
type Cache struct {
	P        Provider
	TTL      time.Duration
	MaxItems int

	mu    sync.RWMutex
	items map[string]snapEntry
}

func (c *Cache) Name() string { return c.P.Name() }

func (c *Cache) Snapshot(ctx context.Context, symbol string) (Snapshot, error) {
	if c.TTL <= 0 {
		return c.P.Snapshot(ctx, symbol)
	}

	now := time.Now()
	c.mu.RLock()
	e, ok := c.items[symbol]
	c.mu.RUnlock()
	if ok && now.Before(e.expiresAt) {
		return e.snap, nil
	}

	snap, err := c.P.Snapshot(ctx, symbol)
	if err != nil {
		return Snapshot{}, err
	}

	c.mu.Lock()
	if c.items == nil {
		c.items = make(map[string]snapEntry)
	}
	c.items[symbol] = snapEntry{expiresAt: now.Add(c.TTL), snap: snap}
	// best-effort cap: drop expired entries first, then arbitrary ones
	if c.MaxItems > 0 && len(c.items) > c.MaxItems {
		for k, v := range c.items {
			if now.After(v.expiresAt) {
				delete(c.items, k)
			}
			if len(c.items) <= c.MaxItems {
				break
			}
		}
		for k := range c.items {
			if len(c.items) <= c.MaxItems {
				break
			}
			delete(c.items, k)
		}
	}
	c.mu.Unlock()

	return snap, nil
}

func (c *Cache) History(ctx context.Context, symbol string, days int) ([]PricePoint, error) {
	return c.P.History(ctx, symbol, days)
}
