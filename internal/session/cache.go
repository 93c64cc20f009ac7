// Package session memoizes one loaded dataset per user session.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/theirongolddev/fundboard/internal/pipeline"
)

// LoaderFunc loads the dataset at path. pipeline.Load satisfies it.
type LoaderFunc func(path string) *pipeline.LoadResult

type entry struct {
	result   *pipeline.LoadResult
	lastSeen time.Time
}

// Cache holds at most one LoadResult per session id. Entries are never
// shared between sessions and never reloaded while the session lives.
type Cache struct {
	load LoaderFunc
	path string
	ttl   time.Duration
	limit int
	now   func() time.Time

	mu      sync.Mutex
	entries map[string]*entry
	group   singleflight.Group
}

// NewCache creates a cache that loads path with load on first access per
// session. A ttl of zero disables idle eviction.
func NewCache(load LoaderFunc, path string, ttl time.Duration) *Cache {
	if load == nil {
		load = pipeline.Load
	}
	return &Cache{
		load:    load,
		path:    path,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]*entry),
	}
}

// SetLimit caps the number of live sessions. When a new session would exceed
// n, the least recently used one is discarded first. Zero means no cap.
func (c *Cache) SetLimit(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.limit = max(n, 0)
}

// NewID mints a fresh session id.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Path returns the file the cache loads.
func (c *Cache) Path() string { return c.path }

// Get returns the session's LoadResult, loading it on first access.
// Concurrent first calls for the same id share a single load. Failed loads
// are memoized too.
func (c *Cache) Get(id string) *pipeline.LoadResult {
	c.mu.Lock()
	if e, ok := c.entries[id]; ok {
		e.lastSeen = c.now()
		c.mu.Unlock()
		return e.result
	}
	c.mu.Unlock()

	v, _, _ := c.group.Do(id, func() (any, error) {
		c.mu.Lock()
		if e, ok := c.entries[id]; ok {
			c.mu.Unlock()
			return e.result, nil
		}
		c.mu.Unlock()

		res := c.load(c.path)

		c.mu.Lock()
		if c.limit > 0 && len(c.entries) >= c.limit {
			c.evictOldestLocked()
		}
		c.entries[id] = &entry{result: res, lastSeen: c.now()}
		c.mu.Unlock()
		return res, nil
	})
	return v.(*pipeline.LoadResult)
}

// Peek returns the session's LoadResult without loading it.
func (c *Cache) Peek(id string) (*pipeline.LoadResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[id]
	if !ok {
		return nil, false
	}
	return e.result, true
}

// End discards the session's entry. It reports whether one existed.
func (c *Cache) End(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[id]
	delete(c.entries, id)
	return ok
}

// Sweep discards entries idle for longer than the ttl and returns how many
// were removed.
func (c *Cache) Sweep() int {
	if c.ttl <= 0 {
		return 0
	}
	cutoff := c.now().Add(-c.ttl)

	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for id, e := range c.entries {
		if e.lastSeen.Before(cutoff) {
			delete(c.entries, id)
			removed++
		}
	}
	return removed
}

// evictOldestLocked drops the least recently seen entry. c.mu must be held.
func (c *Cache) evictOldestLocked() {
	var oldest string
	var seen time.Time
	for id, e := range c.entries {
		if oldest == "" || e.lastSeen.Before(seen) {
			oldest, seen = id, e.lastSeen
		}
	}
	delete(c.entries, oldest)
}

// Len returns the number of live sessions.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
