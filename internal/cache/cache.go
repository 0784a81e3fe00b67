// Package cache implements a bounded in-memory cache with per-entry TTL and
// LRU eviction. Each service owns its own instance; entries expire lazily on
// access and in bulk via an optional janitor goroutine.
package cache

import (
	"container/list"
	"log"
	"sync"
	"time"
)

// Defaults applied by New.
const (
	DefaultMaxSize         = 1000
	DefaultTTL             = 300 * time.Second
	DefaultCleanupInterval = 300 * time.Second
)

type entry[K comparable, V any] struct {
	key      K
	value    V
	expireAt time.Time
}

// Cache is a thread-safe bounded TTL cache with LRU eviction.
type Cache[K comparable, V any] struct {
	mu         sync.Mutex
	maxSize    int
	defaultTTL time.Duration
	items      map[K]*list.Element
	order      *list.List // front = most recently used

	hits   int64
	misses int64

	stopJanitor chan struct{}
	janitorOnce sync.Once
}

// Stats reports cache effectiveness counters.
type Stats struct {
	Hits       int64   `json:"hits"`
	Misses     int64   `json:"misses"`
	HitRate    float64 `json:"hit_rate"`
	TotalItems int     `json:"total_items"`
	MaxSize    int     `json:"max_size"`
	DefaultTTL float64 `json:"default_ttl_seconds"`
}

// New creates a cache with the given capacity and default TTL. Non-positive
// arguments fall back to the package defaults.
func New[K comparable, V any](maxSize int, defaultTTL time.Duration) *Cache[K, V] {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	return &Cache[K, V]{
		maxSize:     maxSize,
		defaultTTL:  defaultTTL,
		items:       make(map[K]*list.Element),
		order:       list.New(),
		stopJanitor: make(chan struct{}),
	}
}

// Get returns the cached value for key. Expired entries are removed on access
// and count as misses. A hit promotes the entry to most recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	el, ok := c.items[key]
	if !ok {
		c.misses++
		return zero, false
	}

	ent := el.Value.(*entry[K, V])
	if time.Now().After(ent.expireAt) {
		c.removeElement(el)
		c.misses++
		return zero, false
	}

	c.order.MoveToFront(el)
	c.hits++
	return ent.value, true
}

// Set stores value under key with the default TTL.
func (c *Cache[K, V]) Set(key K, value V) {
	c.SetWithTTL(key, value, c.defaultTTL)
}

// SetWithTTL stores value under key with an explicit TTL, evicting the least
// recently used entries once the cache is over capacity.
func (c *Cache[K, V]) SetWithTTL(key K, value V, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	expireAt := time.Now().Add(ttl)

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		ent := el.Value.(*entry[K, V])
		ent.value = value
		ent.expireAt = expireAt
		c.order.MoveToFront(el)
		return
	}

	el := c.order.PushFront(&entry[K, V]{key: key, value: value, expireAt: expireAt})
	c.items[key] = el

	for len(c.items) > c.maxSize {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		c.removeElement(oldest)
	}
}

// Delete removes key from the cache, reporting whether it was present.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return false
	}
	c.removeElement(el)
	return true
}

// Clear empties the cache and resets the hit/miss counters.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[K]*list.Element)
	c.order.Init()
	c.hits = 0
	c.misses = 0
}

// CleanupExpired removes every expired entry and returns how many were
// dropped. Intended for the janitor, not the request path.
func (c *Cache[K, V]) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0
	for el := c.order.Back(); el != nil; {
		prev := el.Prev()
		if now.After(el.Value.(*entry[K, V]).expireAt) {
			c.removeElement(el)
			removed++
		}
		el = prev
	}
	return removed
}

// Len returns the current number of entries, expired or not.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// GetStats returns a snapshot of the cache counters.
func (c *Cache[K, V]) GetStats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := c.hits + c.misses
	rate := 0.0
	if total > 0 {
		rate = float64(c.hits) / float64(total) * 100
	}

	return Stats{
		Hits:       c.hits,
		Misses:     c.misses,
		HitRate:    rate,
		TotalItems: len(c.items),
		MaxSize:    c.maxSize,
		DefaultTTL: c.defaultTTL.Seconds(),
	}
}

// StartJanitor launches a background goroutine that sweeps expired entries
// every interval until Stop is called.
func (c *Cache[K, V]) StartJanitor(interval time.Duration) {
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if n := c.CleanupExpired(); n > 0 {
					log.Printf("cache janitor removed %d expired entries", n)
				}
			case <-c.stopJanitor:
				return
			}
		}
	}()
}

// Stop terminates the janitor goroutine. Safe to call more than once and
// without a running janitor.
func (c *Cache[K, V]) Stop() {
	c.janitorOnce.Do(func() {
		close(c.stopJanitor)
	})
}

// removeElement deletes an entry; callers must hold the lock.
func (c *Cache[K, V]) removeElement(el *list.Element) {
	c.order.Remove(el)
	delete(c.items, el.Value.(*entry[K, V]).key)
}
