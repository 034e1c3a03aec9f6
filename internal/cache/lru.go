package cache

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/hupe1980/arffconv/resource"
)

// LRUBlockCache is a BlockCache bounded by the total bytes it holds.
// The least recently read block is evicted first.
type LRUBlockCache struct {
	mu       sync.Mutex
	capacity int64
	size     int64
	blocks   map[CacheKey]*node
	head     node // sentinel; head.next is the most recently used block
	rc       *resource.Controller

	hits   atomic.Int64
	misses atomic.Int64
}

type node struct {
	key        CacheKey
	data       []byte
	prev, next *node
}

// NewLRUBlockCache creates a cache holding up to capacity bytes.
// If rc is non-nil, cached bytes are reserved against its memory budget and
// the cache registers itself as a reclaimer, so reservations that would
// otherwise block evict cached blocks first.
func NewLRUBlockCache(capacity int64, rc *resource.Controller) *LRUBlockCache {
	c := &LRUBlockCache{
		capacity: capacity,
		blocks:   make(map[CacheKey]*node),
		rc:       rc,
	}
	c.head.prev = &c.head
	c.head.next = &c.head
	rc.RegisterReclaimer(c.Reclaim)
	return c
}

// Get returns a cached block and marks it most recently used.
func (c *LRUBlockCache) Get(_ context.Context, key CacheKey) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.blocks[key]
	if !ok {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	c.unlink(n)
	c.pushFront(n)
	return n.data, true
}

// Set caches a block. Blocks larger than the capacity are not cached, and
// neither are blocks the memory budget refuses.
func (c *LRUBlockCache) Set(_ context.Context, key CacheKey, b []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.blocks[key]; ok {
		c.drop(n)
	}

	need := int64(len(b))
	if need > c.capacity {
		return
	}

	// Evict first so released bytes are available to the budget again.
	for c.size+need > c.capacity && c.head.prev != &c.head {
		c.drop(c.head.prev)
	}

	if !c.rc.TryAcquireMemory(need) {
		return
	}

	n := &node{key: key, data: b}
	c.blocks[key] = n
	c.pushFront(n)
	c.size += need
}

// Invalidate drops every block whose key matches.
func (c *LRUBlockCache) Invalidate(match func(key CacheKey) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for n := c.head.next; n != &c.head; {
		next := n.next
		if match(n.key) {
			c.drop(n)
		}
		n = next
	}
}

// Reclaim evicts least recently used blocks until at least need bytes are
// freed or the cache is empty. It returns the bytes freed.
func (c *LRUBlockCache) Reclaim(need int64) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var freed int64
	for freed < need && c.head.prev != &c.head {
		n := c.head.prev
		freed += int64(len(n.data))
		c.drop(n)
	}
	return freed
}

// Stats returns hit and miss counters.
func (c *LRUBlockCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Size returns the cached bytes.
func (c *LRUBlockCache) Size() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

// Len returns the number of cached blocks.
func (c *LRUBlockCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.blocks)
}

func (c *LRUBlockCache) pushFront(n *node) {
	n.prev = &c.head
	n.next = c.head.next
	c.head.next.prev = n
	c.head.next = n
}

func (c *LRUBlockCache) unlink(n *node) {
	n.prev.next = n.next
	n.next.prev = n.prev
	n.prev, n.next = nil, nil
}

func (c *LRUBlockCache) drop(n *node) {
	c.unlink(n)
	delete(c.blocks, n.key)
	size := int64(len(n.data))
	c.size -= size
	c.rc.ReleaseMemory(size)
}
