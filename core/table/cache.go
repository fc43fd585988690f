package table

import (
	"context"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// cachedSnapshot is a snapshot plus the time it was read.
type cachedSnapshot struct {
	snap  *Snapshot
	built time.Time
}

// Cache serves snapshots of a Table, re-reading at most once per TTL.
// Concurrent misses for the same limit share one Fetch.
type Cache struct {
	table Table
	ttl   time.Duration

	mu    sync.RWMutex
	snaps map[int]cachedSnapshot
	gen   uint64
	sf    singleflight.Group
	now   func() time.Time
}

// NewCache creates a snapshot cache. A zero TTL disables caching but still
// collapses concurrent fetches.
func NewCache(t Table, ttl time.Duration) *Cache {
	return &Cache{
		table: t,
		ttl:   ttl,
		snaps: make(map[int]cachedSnapshot),
		now:   time.Now,
	}
}

// Table returns the underlying table.
func (c *Cache) Table() Table {
	return c.table
}

func (c *Cache) expired(e cachedSnapshot) bool {
	if c.ttl == 0 {
		return true
	}
	return c.now().Sub(e.built) > c.ttl
}

// Get returns a fresh-enough snapshot of up to limit rows.
func (c *Cache) Get(ctx context.Context, limit int) (*Snapshot, error) {
	c.mu.RLock()
	e, ok := c.snaps[limit]
	gen := c.gen
	c.mu.RUnlock()

	if ok && !c.expired(e) {
		return e.snap, nil
	}

	// Flights are keyed by generation so a read started before Invalidate is never joined after it
	key := strconv.FormatUint(gen, 10) + ":" + strconv.Itoa(limit)
	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Another caller may have refreshed while we waited
		c.mu.RLock()
		e, ok := c.snaps[limit]
		c.mu.RUnlock()
		if ok && !c.expired(e) {
			return e.snap, nil
		}

		snap, err := c.table.Fetch(ctx, limit)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		if c.gen == gen {
			c.snaps[limit] = cachedSnapshot{snap: snap, built: c.now()}
		}
		c.mu.Unlock()
		return snap, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*Snapshot), nil
}

// Invalidate drops every cached snapshot. Call it after writing to the table.
// Reads still in flight are not cached once they finish.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.gen++
	c.snaps = make(map[int]cachedSnapshot)
	c.mu.Unlock()
}
