package table

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingTable is a Table that only supports Fetch and counts calls.
type countingTable struct {
	fetches atomic.Int32
	delay   time.Duration
	err     error
}

func (c *countingTable) Name() string { return "T" }
func (c *countingTable) PK() string   { return "ID" }
func (c *countingTable) Columns(ctx context.Context) ([]string, error) {
	return []string{"ID"}, nil
}
func (c *countingTable) Fetch(ctx context.Context, limit int) (*Snapshot, error) {
	c.fetches.Add(1)
	time.Sleep(c.delay)
	if c.err != nil {
		return nil, c.err
	}
	return &Snapshot{Table: "T", PK: "ID", Columns: []string{"ID"}, Rows: []Row{{"ID": int64(1)}}}, nil
}
func (c *countingTable) DeleteByPK(ctx context.Context, pks []any) (int64, error) { return 0, nil }
func (c *countingTable) UpdateByPK(ctx context.Context, pk any, values Row) (int64, error) {
	return 0, nil
}
func (c *countingTable) Insert(ctx context.Context, rows []Row) (int64, error) { return 0, nil }

func TestCache_Hit(t *testing.T) {
	tbl := &countingTable{}
	cache := NewCache(tbl, 5*time.Minute)

	first, err := cache.Get(context.Background(), 100)
	require.NoError(t, err)
	second, err := cache.Get(context.Background(), 100)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), tbl.fetches.Load())

	// A different limit is a different snapshot
	_, err = cache.Get(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, int32(2), tbl.fetches.Load())
}

func TestCache_Expiry(t *testing.T) {
	tbl := &countingTable{}
	cache := NewCache(tbl, time.Minute)
	now := time.Now()
	cache.now = func() time.Time { return now }

	_, err := cache.Get(context.Background(), 100)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = cache.Get(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, int32(2), tbl.fetches.Load())
}

func TestCache_Invalidate(t *testing.T) {
	tbl := &countingTable{}
	cache := NewCache(tbl, time.Hour)

	_, _ = cache.Get(context.Background(), 100)
	cache.Invalidate()
	_, _ = cache.Get(context.Background(), 100)

	assert.Equal(t, int32(2), tbl.fetches.Load())
}

// versionedTable returns the version current when Fetch starts. The first
// Fetch blocks until release is closed.
type versionedTable struct {
	countingTable
	version atomic.Int64
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
}

func (v *versionedTable) Fetch(ctx context.Context, limit int) (*Snapshot, error) {
	ver := v.version.Load()
	if v.calls.Add(1) == 1 {
		close(v.started)
		<-v.release
	}
	return &Snapshot{Table: "T", PK: "ID", Columns: []string{"ID"}, Rows: []Row{{"ID": ver}}}, nil
}

func TestCache_InvalidateDuringFetch(t *testing.T) {
	tbl := &versionedTable{started: make(chan struct{}), release: make(chan struct{})}
	cache := NewCache(tbl, time.Hour)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		snap, err := cache.Get(context.Background(), 100)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), snap.Rows[0]["ID"])
	}()
	<-tbl.started

	tbl.version.Store(1)
	cache.Invalidate()

	snap, err := cache.Get(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, int64(1), snap.Rows[0]["ID"])

	close(tbl.release)
	wg.Wait()

	snap, err = cache.Get(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, int64(1), snap.Rows[0]["ID"])
	assert.Equal(t, int32(2), tbl.calls.Load())
}

func TestCache_NoTTLCollapsesConcurrentFetches(t *testing.T) {
	tbl := &countingTable{delay: 50 * time.Millisecond}
	cache := NewCache(tbl, 0)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := cache.Get(context.Background(), 100)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Less(t, tbl.fetches.Load(), int32(10))
}

func TestCache_Error(t *testing.T) {
	tbl := &countingTable{err: assert.AnError}
	cache := NewCache(tbl, time.Hour)

	_, err := cache.Get(context.Background(), 100)
	assert.ErrorIs(t, err, assert.AnError)

	// Errors are not cached
	_, _ = cache.Get(context.Background(), 100)
	assert.Equal(t, int32(2), tbl.fetches.Load())
}
