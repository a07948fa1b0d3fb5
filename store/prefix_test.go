package store

import (
	"testing"

	"github.com/iov-one/xsigners/weavetest/assert"
)

func TestPrefixStoreIsolation(t *testing.T) {
	db := MemStore()
	alice := NewPrefixStore(db, []byte("alice:"))
	bob := NewPrefixStore(db, []byte("bob:"))

	assert.Nil(t, alice.Set([]byte("k"), []byte("a")))
	assert.Nil(t, bob.Set([]byte("k"), []byte("b")))

	got, err := alice.Get([]byte("k"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("a"), got)

	got, err = bob.Get([]byte("k"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("b"), got)

	raw, err := db.Get([]byte("alice:k"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("a"), raw)

	assert.Nil(t, alice.Delete([]byte("k")))
	has, err := alice.Has([]byte("k"))
	assert.Nil(t, err)
	assert.Equal(t, false, has)
	has, err = bob.Has([]byte("k"))
	assert.Nil(t, err)
	assert.Equal(t, true, has)
}

func TestPrefixStoreBatch(t *testing.T) {
	db := MemStore()
	kv := NewPrefixStore(db, []byte("p/"))

	batch := kv.NewBatch()
	assert.Nil(t, batch.Set([]byte("one"), []byte("1")))
	assert.Nil(t, batch.Write())

	raw, err := db.Get([]byte("p/one"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("1"), raw)
}
