// SPDX-License-Identifier: MPL-2.0

package configdoc

import (
	"fmt"
	"os"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of parsed documents a Cache keeps when no
// size is configured.
const DefaultCacheSize = 64

type (
	// Cache keeps recently parsed files so that re-reading an unchanged file
	// skips parsing. Entries are keyed by path, size, and modification time,
	// so an edited file is always parsed again. It is safe for concurrent use.
	Cache struct {
		docs   *lru.Cache[cacheKey, *Document]
		hits   atomic.Uint64
		misses atomic.Uint64
	}

	cacheKey struct {
		path    string
		size    int64
		modTime int64
	}
)

// NewCache returns a cache holding at most size documents. A size of zero or
// less selects DefaultCacheSize.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	docs, err := lru.New[cacheKey, *Document](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create parse cache: %w", err)
	}
	return &Cache{docs: docs}, nil
}

// ParseFile behaves like the package-level ParseFile but serves unchanged
// files from the cache. The returned document is a private copy the caller
// may modify. A nil Cache parses every time.
func (c *Cache) ParseFile(path string) (*Document, error) {
	if c == nil {
		return ParseFile(path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	key := cacheKey{path: path, size: info.Size(), modTime: info.ModTime().UnixNano()}
	if doc, ok := c.docs.Get(key); ok {
		c.hits.Add(1)
		return doc.Clone(), nil
	}
	c.misses.Add(1)

	doc, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	c.docs.Add(key, doc.Clone())
	return doc, nil
}

// Len returns the number of cached documents.
func (c *Cache) Len() int { return c.docs.Len() }

// Stats returns the number of cache hits and misses so far.
func (c *Cache) Stats() (hits, misses uint64) { return c.hits.Load(), c.misses.Load() }

// Purge drops every cached document.
func (c *Cache) Purge() { c.docs.Purge() }
