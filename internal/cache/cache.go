package cache

import (
	"context"
	"sync"
	"time"
)

// entry is a cached value with its expiry deadline.
type entry struct {
	value     any
	expiresAt time.Time
}

// Cache is an in-memory TTL cache. All map operations run under a
// single mutex and never hold it across I/O. A read of an expired entry
// behaves as a miss and evicts the entry.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry

	// now is replaceable so tests can drive the clock.
	now func() time.Time
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the value for key, or false when absent or expired.
// Expired entries are evicted on read.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Set stores value under key for ttl.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		value:     value,
		expiresAt: c.now().Add(ttl),
	}
}

// Delete removes key if present.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]entry)
}

// CleanupExpired removes expired entries and returns how many were
// removed. The scan snapshots the expired keys first and re-checks each
// one before deleting, so entries written after the scan started are
// never removed.
func (c *Cache) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	expired := make([]string, 0)
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			expired = append(expired, key)
		}
	}

	removed := 0
	for _, key := range expired {
		e, ok := c.entries[key]
		if !ok || now.Before(e.expiresAt) {
			continue
		}
		delete(c.entries, key)
		removed++
	}
	return removed
}

// Stats reports entry counts for the status endpoint.
type Stats struct {
	TotalEntries   int `json:"total_entries"`
	ActiveEntries  int `json:"active_entries"`
	ExpiredEntries int `json:"expired_entries"`
}

// GetStats counts total, active and not-yet-evicted expired entries.
func (c *Cache) GetStats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	stats := Stats{TotalEntries: len(c.entries)}
	for _, e := range c.entries {
		if now.Before(e.expiresAt) {
			stats.ActiveEntries++
		} else {
			stats.ExpiredEntries++
		}
	}
	return stats
}

// GetBytes implements Store on top of the in-memory cache.
func (c *Cache) GetBytes(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := c.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, ok := v.([]byte)
	if !ok {
		return nil, false, nil
	}
	return b, true, nil
}

// SetBytes implements Store on top of the in-memory cache.
func (c *Cache) SetBytes(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.Set(key, value, ttl)
	return nil
}

// Store is the minimal byte-payload surface shared by the in-memory
// cache and the optional Redis backend.
type Store interface {
	GetBytes(ctx context.Context, key string) ([]byte, bool, error)
	SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
