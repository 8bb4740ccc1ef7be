// Package cache implements the route-chunking analyzer's Memoization Layer
// (spec §4.2): a thread-safe getOrSet keyed by a caller-supplied cache key
// and a fingerprint, with no eviction policy.
//
// The shape follows esbuild's internal/cache: a small struct guarded by a
// mutex, one entry per key, no time-based expiry — callers accept unbounded
// retention for the life of a process. Unlike esbuild's cache (which has one
// typed sub-cache per AST artifact kind, because the bundler caches whole
// parsed ASTs across incremental rebuilds) this package caches arbitrary
// derived values behind a single generic entry point, because every
// memoized artifact here (an Export Dependency map, a chunk's source text,
// the main output) is already addressed by its own composite key.
package cache

import (
	"strings"
	"sync"
)

type entry struct {
	fingerprint string
	value       interface{}
}

// Cache is a single getOrSet table. The zero value is not usable; call New.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
}

func New() *Cache {
	return &Cache{entries: make(map[string]entry)}
}

// GetOrSet returns the value stored under cacheKey if its fingerprint
// matches, otherwise it calls compute, stores the result under
// (cacheKey, fingerprint), and returns it. If compute returns an error the
// cache is left unmodified.
//
// Per spec §4.2, concurrent calls under the same (cacheKey, fingerprint) may
// race on which compute() wins the store; both results must be equivalent,
// so GetOrSet does not attempt to serialize concurrent computes for
// distinct callers — only the map access itself is synchronized.
func (c *Cache) GetOrSet(cacheKey string, fingerprint string, compute func() (interface{}, error)) (interface{}, error) {
	c.mu.Lock()
	if e, ok := c.entries[cacheKey]; ok && e.fingerprint == fingerprint {
		c.mu.Unlock()
		return e.value, nil
	}
	c.mu.Unlock()

	value, err := compute()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[cacheKey] = entry{fingerprint: fingerprint, value: value}
	c.mu.Unlock()
	return value, nil
}

// Delete removes the single entry stored under exactly cacheKey, regardless
// of fingerprint. Watch mode's invalidation goes through DeletePrefix
// instead (via routechunk.Service.Delete), which drops every composite key
// derived from a file's cache key.
func (c *Cache) Delete(cacheKey string) {
	c.mu.Lock()
	delete(c.entries, cacheKey)
	c.mu.Unlock()
}

// DeletePrefix removes every entry whose key starts with prefix, regardless
// of fingerprint. Used to invalidate every composite Key built from a given
// baseKey (see Prefix) in one call, without the caller needing to know every
// operation/params combination that was ever cached under it.
func (c *Cache) DeletePrefix(prefix string) {
	c.mu.Lock()
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
	c.mu.Unlock()
}

// Len reports the number of live entries; exposed for tests.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
