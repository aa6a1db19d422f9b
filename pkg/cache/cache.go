// Package cache provides a bounded TTL cache used to avoid repeating
// external lookups such as geocoding the same place name.
package cache

import (
	"sort"
	"sync"
	"time"
)

type item[V any] struct {
	value     V
	expiresAt time.Time // zero means no expiry
}

func (it item[V]) expired(now time.Time) bool {
	return !it.expiresAt.IsZero() && now.After(it.expiresAt)
}

// TTLCache is a thread-safe cache with time-based expiration
type TTLCache[K comparable, V any] struct {
	mu              sync.RWMutex
	items           map[K]item[V]
	defaultTTL      time.Duration
	cleanupInterval time.Duration
	maxItems        int
	stopCleanup     chan struct{}
	stopOnce        sync.Once
}

// NewTTLCache creates a new cache with the specified TTL and cleanup interval.
// maxItems bounds the cache; when exceeded the entries closest to expiry
// are evicted first. A cleanupInterval of 0 disables background cleanup.
func NewTTLCache[K comparable, V any](defaultTTL, cleanupInterval time.Duration, maxItems int) *TTLCache[K, V] {
	c := &TTLCache[K, V]{
		items:           make(map[K]item[V]),
		defaultTTL:      defaultTTL,
		cleanupInterval: cleanupInterval,
		maxItems:        maxItems,
		stopCleanup:     make(chan struct{}),
	}
	c.startCleanupTimer()
	return c
}

// Set adds an item to the cache with the default TTL
func (c *TTLCache[K, V]) Set(key K, value V) {
	c.SetWithTTL(key, value, c.defaultTTL)
}

// SetWithTTL adds an item with a specific TTL; ttl <= 0 never expires.
func (c *TTLCache[K, V]) SetWithTTL(key K, value V, ttl time.Duration) {
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = item[V]{value: value, expiresAt: expiresAt}
	if c.maxItems > 0 && len(c.items) > c.maxItems {
		c.evictOldest()
	}
}

// Get retrieves an item from the cache
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	it, found := c.items[key]
	c.mu.RUnlock()

	var zero V
	if !found {
		return zero, false
	}
	if it.expired(time.Now()) {
		c.Delete(key)
		return zero, false
	}
	return it.value, true
}

// Delete removes an item from the cache
func (c *TTLCache[K, V]) Delete(key K) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// Count returns the number of items in the cache, expired or not.
func (c *TTLCache[K, V]) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Clear removes all items from the cache
func (c *TTLCache[K, V]) Clear() {
	c.mu.Lock()
	c.items = make(map[K]item[V])
	c.mu.Unlock()
}

// evictOldest assumes the lock is held.
func (c *TTLCache[K, V]) evictOldest() {
	excess := len(c.items) - c.maxItems
	if excess <= 0 {
		return
	}

	type keyExpiry struct {
		key K
		at  time.Time
	}
	keys := make([]keyExpiry, 0, len(c.items))
	for k, v := range c.items {
		keys = append(keys, keyExpiry{k, v.expiresAt})
	}

	// Entries without expiry sort last.
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i].at, keys[j].at
		if a.IsZero() != b.IsZero() {
			return b.IsZero()
		}
		return a.Before(b)
	})

	for i := 0; i < excess; i++ {
		delete(c.items, keys[i].key)
	}
}

func (c *TTLCache[K, V]) startCleanupTimer() {
	if c.cleanupInterval <= 0 {
		return
	}

	ticker := time.NewTicker(c.cleanupInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.DeleteExpired()
			case <-c.stopCleanup:
				return
			}
		}
	}()
}

// DeleteExpired removes every expired item.
func (c *TTLCache[K, V]) DeleteExpired() {
	now := time.Now()

	c.mu.Lock()
	for k, v := range c.items {
		if v.expired(now) {
			delete(c.items, k)
		}
	}
	c.mu.Unlock()
}

// Stop stops the cleanup goroutine. It is safe to call more than once.
func (c *TTLCache[K, V]) Stop() {
	c.stopOnce.Do(func() { close(c.stopCleanup) })
}
