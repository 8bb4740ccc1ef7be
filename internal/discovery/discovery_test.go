package discovery

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandBracesExpandsOneGroup(t *testing.T) {
	got := expandBraces("*.route.{ts,tsx,js,jsx}")
	sort.Strings(got)
	want := []string{"*.route.js", "*.route.jsx", "*.route.ts", "*.route.tsx"}
	sort.Strings(want)
	assert.Equal(t, want, got)
}

func TestExpandBracesWithoutAGroupReturnsItself(t *testing.T) {
	got := expandBraces("*.route.ts")
	assert.Equal(t, []string{"*.route.ts"}, got)
}

func TestMatchesAny(t *testing.T) {
	patterns := expandBraces(DefaultGlob)
	assert.True(t, matchesAny(patterns, "products.route.tsx"))
	assert.True(t, matchesAny(patterns, "products.route.js"))
	assert.False(t, matchesAny(patterns, "products.tsx"))
	assert.False(t, matchesAny(patterns, "products.route.css"))
}

func TestWalkFindsMatchingFilesAndReadsContents(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "products.route.tsx"), []byte("export const clientLoader = () => {}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "products.route.js"), []byte("export const clientAction = () => {}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.md"), []byte("not a route"), 0o644))

	pairs, err := Walk(dir, DefaultGlob)
	require.NoError(t, err)
	require.Len(t, pairs, 2)

	byPath := map[string]string{}
	for _, p := range pairs {
		byPath[filepath.Base(p.CacheKey)] = p.Source
	}
	assert.Equal(t, "export const clientLoader = () => {}", byPath["products.route.tsx"])
	assert.Equal(t, "export const clientAction = () => {}", byPath["products.route.js"])
}

func TestWatcherReportsWriteAndCreateEvents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "products.route.tsx")
	require.NoError(t, os.WriteFile(path, []byte("export const clientLoader = () => {}"), 0o644))

	w, err := NewWatcher(dir, DefaultGlob)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("export const clientLoader = () => 1"), 0o644))

	select {
	case pair := <-w.Changes:
		assert.Equal(t, path, pair.CacheKey)
		assert.Equal(t, "export const clientLoader = () => 1", pair.Source)
	case err := <-w.Errors:
		t.Fatalf("unexpected watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a watch event")
	}
}
