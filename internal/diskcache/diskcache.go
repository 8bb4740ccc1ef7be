// Package diskcache is a concrete "Cache backing store" collaborator
// (spec §6): a { fingerprint, value } get/set map persisted to disk with
// diskv, so the CLI (when given a cache directory) doesn't lose the
// Memoization Layer's (internal/cache) derived artifacts between process
// restarts. The in-memory internal/cache.Cache remains the core's own
// per-session store; this package is what a caller plugs in as its
// backing store when it wants that persisted across runs.
package diskcache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/peterbourgon/diskv"
)

// entry is the on-disk representation of one cache slot.
type entry struct {
	Fingerprint string `json:"fingerprint"`
	Value       string `json:"value"`
}

// Store is a disk-backed get/set table keyed by an arbitrary cache key
// string. Values are stored as opaque strings (the CLI stores emitted chunk
// source text); callers own their own encoding.
type Store struct {
	d *diskv.Diskv
}

// Open creates or reopens a disk cache rooted at dir. Keys are sharded two
// directories deep by their hash prefix, the same layout diskv's own
// examples use for caches with many entries (one per analyzed route file).
func Open(dir string) *Store {
	d := diskv.New(diskv.Options{
		BasePath:     dir,
		Transform:    shardTransform,
		CacheSizeMax: 1024 * 1024,
	})
	return &Store{d: d}
}

func shardTransform(key string) []string {
	sum := sha256.Sum256([]byte(key))
	hex := hex.EncodeToString(sum[:])
	return []string{hex[:2], hex[2:4]}
}

// Get returns the fingerprint and value stored under key, or ok=false if
// nothing is stored there (or the stored record is corrupt).
func (s *Store) Get(key string) (fingerprint string, value string, ok bool) {
	raw, err := s.d.Read(key)
	if err != nil {
		return "", "", false
	}
	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return "", "", false
	}
	return e.Fingerprint, e.Value, true
}

// Set stores value under key with the given fingerprint, overwriting any
// previous entry.
func (s *Store) Set(key string, fingerprint string, value string) error {
	raw, err := json.Marshal(entry{Fingerprint: fingerprint, Value: value})
	if err != nil {
		return fmt.Errorf("diskcache: encode entry for %q: %w", key, err)
	}
	return s.d.Write(key, raw)
}

// Delete removes any entry under key.
func (s *Store) Delete(key string) error {
	if !s.d.Has(key) {
		return nil
	}
	return s.d.Erase(key)
}
