package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memConstructor() (CacheableKVStore, func()) {
	return MemStore(), func() {}
}

func TestBTreeStoreSuite(t *testing.T) {
	suite := NewTestSuite(memConstructor)
	t.Run("get set", suite.GetSet)
	t.Run("cache conflicts", suite.CacheConflicts)
	t.Run("nested caches", suite.NestedCaches)
	t.Run("batch write", suite.BatchWrite)
}

// TestBTreeCacheDevNull makes sure writes to an empty store are lost.
func TestBTreeCacheDevNull(t *testing.T) {
	devnull := BTreeCacheable{EmptyKVStore{}}
	base := devnull.CacheWrap()

	k, v := []byte("french"), []byte("fry")
	require.NoError(t, base.Set(k, v))
	got, err := base.Get(k)
	require.NoError(t, err)
	assert.Equal(t, v, got)

	require.NoError(t, base.Write())
	got, err = devnull.Get(k)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLogableStoreShowsOps(t *testing.T) {
	kv, ops := LogableStore()
	require.NoError(t, kv.Set([]byte("a"), []byte("1")))
	require.NoError(t, kv.Delete([]byte("b")))

	got := ops.ShowOps()
	require.Len(t, got, 2)
	assert.True(t, got[0].IsSetOp())
	assert.Equal(t, []byte("a"), got[0].Key())
	assert.False(t, got[1].IsSetOp())
	assert.Equal(t, []byte("b"), got[1].Key())
}

func TestBTreeCacheRejectsNilKey(t *testing.T) {
	kv := MemStore()
	assert.Error(t, kv.Set(nil, []byte("x")))
	assert.Error(t, kv.Delete(nil))
}
