package application

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	admindomain "github.com/sngm3741/delivery-availability/api/internal/admin/domain"
	"github.com/sngm3741/delivery-availability/api/internal/clock"
)

// StoreLoader fetches a store from the backing repository on a cache miss.
type StoreLoader func(ctx context.Context, id string) (*admindomain.Store, error)

type cachedStore struct {
	store    admindomain.Store
	loadedAt time.Time
}

// StoreCache is a bounded, TTL-checked cache of store records owned by the
// availability service. Expiry is measured against the injected clock.
// A nil *StoreCache is valid and always loads from the repository.
type StoreCache struct {
	entries  *lru.Cache[string, cachedStore]
	ttl      time.Duration
	clock    clock.Clock
	recorder Recorder
	group    singleflight.Group

	// generations and inflight only hold ids with a load in progress.
	mu          sync.Mutex
	generations map[string]uint64
	inflight    map[string]int
}

// NewStoreCache returns nil when ttl or size disable caching.
func NewStoreCache(size int, ttl time.Duration, clk clock.Clock, recorder Recorder) (*StoreCache, error) {
	if size <= 0 || ttl <= 0 {
		return nil, nil
	}
	entries, err := lru.New[string, cachedStore](size)
	if err != nil {
		return nil, err
	}
	if recorder == nil {
		recorder = NopRecorder{}
	}
	return &StoreCache{
		entries:     entries,
		ttl:         ttl,
		clock:       clk,
		recorder:    recorder,
		generations: make(map[string]uint64),
		inflight:    make(map[string]int),
	}, nil
}

// Get returns the cached store for id or loads it. Concurrent misses for the same id share one load.
func (c *StoreCache) Get(ctx context.Context, id string, load StoreLoader) (*admindomain.Store, error) {
	if c == nil {
		return load(ctx, id)
	}

	if entry, ok := c.entries.Get(id); ok {
		if c.clock.Now().Sub(entry.loadedAt) < c.ttl {
			c.recorder.CacheHit()
			store := entry.store
			return &store, nil
		}
		c.entries.Remove(id)
	}
	c.recorder.CacheMiss()

	generation := c.beginLoad(id)
	defer c.endLoad(id)
	value, err, _ := c.group.Do(id, func() (any, error) {
		store, err := load(ctx, id)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		if c.generations[id] == generation {
			c.entries.Add(id, cachedStore{store: *store, loadedAt: c.clock.Now()})
		}
		c.mu.Unlock()
		return *store, nil
	})
	if err != nil {
		return nil, err
	}
	store := value.(admindomain.Store)
	return &store, nil
}

// Invalidate drops id so the next read goes to the repository. Loads already in
// flight for id will not repopulate the entry.
func (c *StoreCache) Invalidate(id string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	if c.inflight[id] > 0 {
		c.generations[id]++
	}
	c.entries.Remove(id)
	c.mu.Unlock()
	c.group.Forget(id)
}

func (c *StoreCache) beginLoad(id string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight[id]++
	return c.generations[id]
}

func (c *StoreCache) endLoad(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight[id]--
	if c.inflight[id] <= 0 {
		delete(c.inflight, id)
		delete(c.generations, id)
	}
}

func (c *StoreCache) trackedIDs() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.generations) + len(c.inflight)
}
