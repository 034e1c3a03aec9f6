package cache

import "context"

// CacheKey identifies one block of one blob.
type CacheKey struct {
	// Path is the blob name in its store.
	Path string
	// Block is the block index (offset / block size).
	Block int64
}

// BlockCache is a byte-oriented cache for immutable blocks.
// Returned slices must be treated as read-only.
type BlockCache interface {
	// Get returns a cached block. ok=false if missing.
	Get(ctx context.Context, key CacheKey) (b []byte, ok bool)
	// Set caches a block. The caller must treat b as immutable afterwards.
	Set(ctx context.Context, key CacheKey, b []byte)
	// Invalidate drops every block whose key matches.
	Invalidate(match func(key CacheKey) bool)
	// Stats returns hit and miss counters.
	Stats() (hits, misses int64)
}
