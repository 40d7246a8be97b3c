// Package cache implements the bounded, positive-only confirmation cache:
// presence of a slot means "confirmed"; absence means "unknown", never
// "unconfirmed".
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache is a thread-safe, LRU-evicting set of confirmed slot numbers.
type Cache struct {
	lru      *lru.Cache[uint64, struct{}]
	capacity int
}

// New builds a Cache with a fixed capacity. capacity must be positive.
func New(capacity int) (*Cache, error) {
	inner, err := lru.New[uint64, struct{}](capacity)
	if err != nil {
		return nil, err
	}
	return &Cache{lru: inner, capacity: capacity}, nil
}

// Contains reports whether slot is marked confirmed. A hit touches recency.
func (c *Cache) Contains(slot uint64) bool {
	_, ok := c.lru.Get(slot)
	return ok
}

// Insert marks slot as confirmed, evicting the least-recently-used entry
// first if the cache is already at capacity. Idempotent.
func (c *Cache) Insert(slot uint64) {
	c.lru.Add(slot, struct{}{})
}

// InsertMany inserts slots in order, so the last slot in the batch ends up
// most-recently-used.
func (c *Cache) InsertMany(slots []uint64) {
	for _, s := range slots {
		c.Insert(s)
	}
}

// Len returns the current number of entries in the cache.
func (c *Cache) Len() int {
	return c.lru.Len()
}

// Cap returns the cache's fixed capacity.
func (c *Cache) Cap() int {
	return c.capacity
}
