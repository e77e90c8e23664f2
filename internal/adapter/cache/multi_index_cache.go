package cache

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cacheable is an entry reachable through several lookup keys. The first
// key identifies the entry.
type Cacheable interface {
	CacheKeys() []string
}

// MultiIndexCache is an expiring LRU where every entry is indexed under
// all of its keys. Removing an entry by any key drops every alias.
type MultiIndexCache[V Cacheable] struct {
	cache *expirable.LRU[string, V]
	mu    sync.RWMutex
}

func NewMultiIndexCache[V Cacheable](size int, ttl time.Duration) *MultiIndexCache[V] {
	return &MultiIndexCache[V]{
		cache: expirable.NewLRU[string, V](size, nil, ttl),
	}
}

// Add indexes item under its keys. Aliases left over from a previous
// version of the same entry, such as a former email, are evicted.
func (c *MultiIndexCache[V]) Add(item V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := item.CacheKeys()
	if len(keys) == 0 {
		return
	}

	c.evict(keys[0])

	for _, key := range keys {
		c.cache.Add(key, item)
	}
}

func (c *MultiIndexCache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.cache.Get(key)
}

func (c *MultiIndexCache[V]) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.evict(key)
}

func (c *MultiIndexCache[V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Purge()
}

// Len returns the number of indexed keys, not of distinct entries.
func (c *MultiIndexCache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.cache.Len()
}

func (c *MultiIndexCache[V]) evict(key string) {
	existing, ok := c.cache.Peek(key)
	if !ok {
		return
	}

	for _, k := range existing.CacheKeys() {
		c.cache.Remove(k)
	}
}
