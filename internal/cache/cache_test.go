package cache

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrSetComputesOnceForSameFingerprint(t *testing.T) {
	c := New()
	calls := 0
	compute := func() (interface{}, error) {
		calls++
		return "value", nil
	}

	v1, err := c.GetOrSet("key", "fp1", compute)
	require.NoError(t, err)
	v2, err := c.GetOrSet("key", "fp1", compute)
	require.NoError(t, err)

	assert.Equal(t, "value", v1)
	assert.Equal(t, "value", v2)
	assert.Equal(t, 1, calls)
}

func TestGetOrSetRecomputesOnFingerprintChange(t *testing.T) {
	c := New()
	calls := 0
	compute := func(v string) func() (interface{}, error) {
		return func() (interface{}, error) {
			calls++
			return v, nil
		}
	}

	v1, err := c.GetOrSet("key", "fp1", compute("a"))
	require.NoError(t, err)
	v2, err := c.GetOrSet("key", "fp2", compute("b"))
	require.NoError(t, err)

	assert.Equal(t, "a", v1)
	assert.Equal(t, "b", v2)
	assert.Equal(t, 2, calls)
}

func TestGetOrSetLeavesCacheUnmodifiedOnError(t *testing.T) {
	c := New()
	wantErr := errors.New("boom")

	_, err := c.GetOrSet("key", "fp1", func() (interface{}, error) {
		return nil, wantErr
	})
	require.ErrorIs(t, err, wantErr)
	assert.Equal(t, 0, c.Len())

	v, err := c.GetOrSet("key", "fp1", func() (interface{}, error) {
		return "recovered", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "recovered", v)
}

func TestDeleteRemovesEntryRegardlessOfFingerprint(t *testing.T) {
	c := New()
	_, err := c.GetOrSet("key", "fp1", func() (interface{}, error) { return "v", nil })
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())

	c.Delete("key")
	assert.Equal(t, 0, c.Len())
}

func TestDeletePrefixRemovesEveryKeyDerivedFromTheSameBase(t *testing.T) {
	c := New()
	_, err := c.GetOrSet(Key("path.tsx", "analyze"), "fp1", func() (interface{}, error) { return "deps", nil })
	require.NoError(t, err)
	_, err = c.GetOrSet(Key("path.tsx", "getChunkedExport", "clientAction", ""), "fp1", func() (interface{}, error) { return "code-a", nil })
	require.NoError(t, err)
	_, err = c.GetOrSet(Key("path.tsx", "getChunkedExport", "clientLoader", "  "), "fp1", func() (interface{}, error) { return "code-b", nil })
	require.NoError(t, err)
	_, err = c.GetOrSet(Key("other.tsx", "analyze"), "fp1", func() (interface{}, error) { return "unrelated", nil })
	require.NoError(t, err)
	require.Equal(t, 4, c.Len())

	c.DeletePrefix(Prefix("path.tsx"))
	assert.Equal(t, 1, c.Len())
}

func TestPrefixMatchesKeysBuiltFromTheSameBaseOnly(t *testing.T) {
	assert.True(t, strings.HasPrefix(Key("path.tsx", "analyze"), Prefix("path.tsx")))
	assert.False(t, strings.HasPrefix(Key("path.tsx-other", "analyze"), Prefix("path.tsx")))
}

func TestKeyJoinsBaseOperationAndParams(t *testing.T) {
	got := Key("path.tsx", "getChunkedExport", "clientAction", "  ")
	assert.Equal(t, "path.tsx\x1fgetChunkedExport\x1fclientAction\x1f  ", got)
}

func TestJoinNamesSortsRegardlessOfInputOrder(t *testing.T) {
	a := JoinNames([]string{"clientLoader", "clientAction"})
	b := JoinNames([]string{"clientAction", "clientLoader"})
	assert.Equal(t, a, b)
	assert.Equal(t, "clientAction,clientLoader", a)
}
