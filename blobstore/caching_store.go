package blobstore

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/hupe1980/arffconv/internal/cache"
	"github.com/hupe1980/arffconv/resource"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultBlockSize is the cache block size used when none is given.
	DefaultBlockSize = 64 * 1024

	// maxParallelFetches bounds concurrent backend range reads per ReadAt.
	maxParallelFetches = 8
)

var errNegativeOffset = errors.New("blobstore: negative offset")

// CachingStore wraps a BlobStore and caches blob reads block by block.
//
// Blocks are keyed by blob name. An archive that is replaced under the same
// name with a different size has its cached blocks dropped on the next Open.
type CachingStore struct {
	inner     BlobStore
	cache     cache.BlockCache
	blockSize int64

	mu    sync.Mutex
	sizes map[string]int64
}

// NewCachingStore creates a new CachingStore.
// blockSize defaults to DefaultBlockSize if <= 0.
func NewCachingStore(inner BlobStore, c cache.BlockCache, blockSize int64) *CachingStore {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	return &CachingStore{
		inner:     inner,
		cache:     c,
		blockSize: blockSize,
		sizes:     make(map[string]int64),
	}
}

// NewLRUCachingStore wraps inner with an LRU block cache holding up to
// capacity bytes. rc, if non-nil, accounts the cached bytes.
func NewLRUCachingStore(inner BlobStore, capacity int64, rc *resource.Controller) *CachingStore {
	return NewCachingStore(inner, cache.NewLRUBlockCache(capacity, rc), DefaultBlockSize)
}

// Open opens a blob whose reads go through the cache.
func (s *CachingStore) Open(ctx context.Context, name string) (Blob, error) {
	b, err := s.inner.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	s.track(name, b.Size())
	return &CachingBlob{
		ctx:       ctx,
		inner:     b,
		cache:     s.cache,
		name:      name,
		blockSize: s.blockSize,
	}, nil
}

func (s *CachingStore) track(name string, size int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.sizes[name]; ok && prev != size {
		s.cache.Invalidate(func(k cache.CacheKey) bool { return k.Path == name })
	}
	s.sizes[name] = size
}

// Stats returns the block cache hit and miss counters.
func (s *CachingStore) Stats() (hits, misses int64) {
	return s.cache.Stats()
}

// List delegates to the wrapped store.
func (s *CachingStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

// CachingBlob wraps a Blob and serves reads from the block cache.
type CachingBlob struct {
	ctx       context.Context
	inner     Blob
	cache     cache.BlockCache
	name      string
	blockSize int64
}

// Close closes the wrapped blob. Cached blocks stay valid.
func (b *CachingBlob) Close() error {
	return b.inner.Close()
}

// Size returns the size of the wrapped blob.
func (b *CachingBlob) Size() int64 {
	return b.inner.Size()
}

// ReadAt implements io.ReaderAt.
func (b *CachingBlob) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, errNegativeOffset
	}
	if err := b.ctx.Err(); err != nil {
		return 0, err
	}

	size := b.Size()
	if off >= size {
		return 0, io.EOF
	}
	want := p
	if rest := size - off; int64(len(want)) > rest {
		want = want[:rest]
	}
	if len(want) == 0 {
		return 0, nil
	}

	startBlock := off / b.blockSize
	endBlock := (off + int64(len(want)) - 1) / b.blockSize

	if err := b.fillCache(startBlock, endBlock); err != nil {
		return 0, err
	}

	n := 0
	for blk := startBlock; blk <= endBlock; blk++ {
		data, err := b.block(blk)
		if err != nil {
			return n, err
		}

		blkStart := blk * b.blockSize
		lo := max(blkStart, off)
		hi := min(blkStart+int64(len(data)), off+int64(len(want)))
		if hi <= lo {
			return n, io.ErrUnexpectedEOF
		}
		n += copy(want[lo-off:hi-off], data[lo-blkStart:hi-blkStart])
	}

	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (b *CachingBlob) key(blk int64) cache.CacheKey {
	return cache.CacheKey{Path: b.name, Block: blk}
}

// fillCache loads the missing blocks of [startBlock, endBlock], fetching each
// contiguous run of misses with a single backend read.
func (b *CachingBlob) fillCache(startBlock, endBlock int64) error {
	type run struct{ start, count int64 }

	var missing []run
	for blk := startBlock; blk <= endBlock; blk++ {
		if _, ok := b.cache.Get(b.ctx, b.key(blk)); ok {
			continue
		}
		if n := len(missing); n > 0 && missing[n-1].start+missing[n-1].count == blk {
			missing[n-1].count++
			continue
		}
		missing = append(missing, run{start: blk, count: 1})
	}

	g, ctx := errgroup.WithContext(b.ctx)
	g.SetLimit(maxParallelFetches)

	for _, r := range missing {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			byteStart := r.start * b.blockSize
			byteSize := min(r.count*b.blockSize, b.Size()-byteStart)
			if byteSize <= 0 {
				return nil
			}

			buf := make([]byte, byteSize)
			n, err := b.inner.ReadAt(buf, byteStart)
			if err != nil && !errors.Is(err, io.EOF) {
				return err
			}
			buf = buf[:n]

			for i := int64(0); i < r.count; i++ {
				lo := i * b.blockSize
				if lo >= int64(len(buf)) {
					break
				}
				hi := min(lo+b.blockSize, int64(len(buf)))
				// Copy so a cached block does not pin the whole run.
				blockCopy := make([]byte, hi-lo)
				copy(blockCopy, buf[lo:hi])
				b.cache.Set(ctx, b.key(r.start+i), blockCopy)
			}
			return nil
		})
	}
	return g.Wait()
}

// block returns one block, reading it from the backend if it was evicted.
func (b *CachingBlob) block(blk int64) ([]byte, error) {
	if data, ok := b.cache.Get(b.ctx, b.key(blk)); ok {
		return data, nil
	}

	offset := blk * b.blockSize
	buf := make([]byte, min(b.blockSize, b.Size()-offset))
	n, err := b.inner.ReadAt(buf, offset)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	data := buf[:n]
	if n > 0 {
		b.cache.Set(b.ctx, b.key(blk), data)
	}
	return data, nil
}
