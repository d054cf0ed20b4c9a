// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import (
	"crypto/sha256"
	"sync"

	"github.com/gogpu/engine/gpucore"
)

// DefaultCacheSize is the entry limit of the package-level cache.
const DefaultCacheSize = 64

// cacheKey identifies one compilation. The source digest makes two
// different sources under the same label distinct.
type cacheKey struct {
	label  string
	format gpucore.ShaderFormat
	sum    [sha256.Size]byte
}

type cacheEntry struct {
	code  Bytecode
	atime int64
}

// Cache memoizes compiled bytecode. When it holds more than its limit the
// least recently used entry is evicted.
//
// Cache is safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[cacheKey]*cacheEntry
	limit   int
	tick    int64

	hits, misses uint64
}

// NewCache returns a cache holding at most limit entries. A limit of 0
// means unlimited.
func NewCache(limit int) *Cache {
	return &Cache{entries: make(map[cacheKey]*cacheEntry), limit: limit}
}

var defaultCache = NewCache(DefaultCacheSize)

// Cached compiles source through the package-level cache.
func Cached(label, source string, format gpucore.ShaderFormat) (Bytecode, error) {
	return defaultCache.Compile(label, source, format)
}

// Compile returns the cached bytecode for source in format, compiling it
// on a miss. Failed compilations are not cached. The result is the
// caller's to modify.
func (c *Cache) Compile(label, source string, format gpucore.ShaderFormat) (Bytecode, error) {
	key := cacheKey{label: label, format: format, sum: sha256.Sum256([]byte(source))}

	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		c.tick++
		e.atime = c.tick
		c.hits++
		c.mu.Unlock()
		return e.code.Clone(), nil
	}
	c.misses++
	c.mu.Unlock()

	// Compile outside the lock; a racing miss compiles twice and the last
	// store wins.
	code, err := Compile(label, source, format)
	if err != nil {
		return Bytecode{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.tick++
	c.entries[key] = &cacheEntry{code: code.Clone(), atime: c.tick}
	if c.limit > 0 && len(c.entries) > c.limit {
		c.evictOldest()
	}
	return code, nil
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns the hit and miss counts.
func (c *Cache) Stats() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Clear drops every entry and resets the counters.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey]*cacheEntry)
	c.tick, c.hits, c.misses = 0, 0, 0
}

// evictOldest removes the least recently used entry. Caller holds mu.
func (c *Cache) evictOldest() {
	var (
		oldest cacheKey
		atime  int64 = -1
	)
	for k, e := range c.entries {
		if atime < 0 || e.atime < atime {
			oldest, atime = k, e.atime
		}
	}
	if atime >= 0 {
		delete(c.entries, oldest)
	}
}
