package diskcache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetThenGetRoundTrips(t *testing.T) {
	s := Open(t.TempDir())

	require.NoError(t, s.Set("products.route.tsx\x1fclientLoader\x1f  ", "export const clientLoader", "export const clientLoader = ...;"))

	fp, value, ok := s.Get("products.route.tsx\x1fclientLoader\x1f  ")
	require.True(t, ok)
	assert.Equal(t, "export const clientLoader", fp)
	assert.Equal(t, "export const clientLoader = ...;", value)
}

func TestGetMissingKeyReportsNotFound(t *testing.T) {
	s := Open(t.TempDir())
	_, _, ok := s.Get("nothing here")
	assert.False(t, ok)
}

func TestDeleteRemovesEntry(t *testing.T) {
	s := Open(t.TempDir())
	require.NoError(t, s.Set("key", "fp", "value"))

	require.NoError(t, s.Delete("key"))

	_, _, ok := s.Get("key")
	assert.False(t, ok)
}

func TestDeleteOfMissingKeyIsNotAnError(t *testing.T) {
	s := Open(t.TempDir())
	assert.NoError(t, s.Delete("never written"))
}

func TestSetOverwritesPreviousEntry(t *testing.T) {
	s := Open(t.TempDir())
	require.NoError(t, s.Set("key", "fp1", "old"))
	require.NoError(t, s.Set("key", "fp2", "new"))

	fp, value, ok := s.Get("key")
	require.True(t, ok)
	assert.Equal(t, "fp2", fp)
	assert.Equal(t, "new", value)
}
