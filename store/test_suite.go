package store

import (
	"crypto/rand"
	"testing"

	"github.com/iov-one/xsigners/weavetest/assert"
)

// TestSuite runs the same checks against any CacheableKVStore. The btree
// store and the iavl adapter both use it.
type TestSuite struct {
	makeBase TestStoreConstructor
}

// TestStoreConstructor returns a fresh store and a function releasing it.
type TestStoreConstructor func() (base CacheableKVStore, cleanup func())

func NewTestSuite(constructor TestStoreConstructor) *TestSuite {
	return &TestSuite{makeBase: constructor}
}

// GetSet follows a value through a store and two cache layers, one written
// back and one discarded.
func (s *TestSuite) GetSet(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	owners, threshold := []byte("wallet:owners"), []byte("wallet:threshold")
	s.AssertGetHas(t, base, owners, nil, false)
	assert.Nil(t, base.Set(owners, []byte("alice,bob")))
	s.AssertGetHas(t, base, owners, []byte("alice,bob"), true)

	// A call frame sees committed state and keeps its own writes private.
	frame := base.CacheWrap()
	s.AssertGetHas(t, frame, owners, []byte("alice,bob"), true)
	assert.Nil(t, frame.Set(threshold, []byte{2}))
	s.AssertGetHas(t, frame, threshold, []byte{2}, true)
	s.AssertGetHas(t, base, threshold, nil, false)

	assert.Nil(t, frame.Write())
	s.AssertGetHas(t, base, threshold, []byte{2}, true)

	// A trapped frame leaves nothing behind.
	pending := []byte("txs:0")
	trapped := base.CacheWrap()
	assert.Nil(t, trapped.Set(pending, []byte("transfer")))
	assert.Nil(t, trapped.Delete(owners))
	trapped.Discard()
	s.AssertGetHas(t, base, pending, nil, false)
	s.AssertGetHas(t, base, owners, []byte("alice,bob"), true)

	// Deletes propagate on write.
	frame = base.CacheWrap()
	assert.Nil(t, frame.Delete(threshold))
	s.AssertGetHas(t, base, threshold, []byte{2}, true)
	assert.Nil(t, frame.Write())
	s.AssertGetHas(t, base, threshold, nil, false)
}

// CacheConflicts checks that a cache layer can overwrite and delete values
// of its parent without the parent noticing until the layer is written.
func (s *TestSuite) CacheConflicts(t *testing.T) {
	ks := randKeys(10, 16)
	vs := randKeys(20, 40)

	// Model.Key is queried and Model.Value expected. A nil value means
	// absent.
	cases := map[string]struct {
		parentOps     []Op
		childOps      []Op
		parentQueries []Model
		childQueries  []Model
	}{
		"overwrite one, delete another, add a third": {
			parentOps:     []Op{SetOp(ks[1], vs[1]), SetOp(ks[2], vs[2])},
			childOps:      []Op{SetOp(ks[1], vs[11]), SetOp(ks[3], vs[7]), DelOp(ks[2])},
			parentQueries: []Model{Pair(ks[1], vs[1]), Pair(ks[2], vs[2]), Pair(ks[3], nil)},
			childQueries:  []Model{Pair(ks[1], vs[11]), Pair(ks[2], nil), Pair(ks[3], vs[7])},
		},
		"delete then set again": {
			parentOps:     []Op{SetOp(ks[4], vs[4])},
			childOps:      []Op{DelOp(ks[4]), SetOp(ks[4], vs[14])},
			parentQueries: []Model{Pair(ks[4], vs[4])},
			childQueries:  []Model{Pair(ks[4], vs[14])},
		},
		"set then delete a new key": {
			childOps:      []Op{SetOp(ks[5], vs[5]), DelOp(ks[5])},
			parentQueries: []Model{Pair(ks[5], nil)},
			childQueries:  []Model{Pair(ks[5], nil)},
		},
		"delete missing key": {
			parentOps:     []Op{SetOp(ks[6], vs[6])},
			childOps:      []Op{DelOp(ks[7])},
			parentQueries: []Model{Pair(ks[6], vs[6]), Pair(ks[7], nil)},
			childQueries:  []Model{Pair(ks[6], vs[6]), Pair(ks[7], nil)},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			parent, cleanup := s.makeBase()
			defer cleanup()

			for _, op := range tc.parentOps {
				assert.Nil(t, op.Apply(parent))
			}

			child := parent.CacheWrap()
			for _, op := range tc.childOps {
				assert.Nil(t, op.Apply(child))
			}

			for _, q := range tc.parentQueries {
				s.AssertGetHas(t, parent, q.Key, q.Value, q.Value != nil)
			}
			for _, q := range tc.childQueries {
				s.AssertGetHas(t, child, q.Key, q.Value, q.Value != nil)
			}

			assert.Nil(t, child.Write())
			for _, q := range tc.childQueries {
				s.AssertGetHas(t, parent, q.Key, q.Value, q.Value != nil)
			}
		})
	}
}

// NestedCaches checks that a discarded inner layer leaves no trace while
// the layers written back propagate all the way down.
func (s *TestSuite) NestedCaches(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	ms := randModels(3, 12, 30)
	a, b, c := ms[0], ms[1], ms[2]

	outer := base.CacheWrap()
	assert.Nil(t, outer.Set(a.Key, a.Value))

	inner := outer.CacheWrap()
	assert.Nil(t, inner.Set(b.Key, b.Value))
	assert.Nil(t, inner.Delete(a.Key))
	s.AssertGetHas(t, inner, a.Key, nil, false)
	inner.Discard()

	s.AssertGetHas(t, outer, a.Key, a.Value, true)
	s.AssertGetHas(t, outer, b.Key, nil, false)

	inner = outer.CacheWrap()
	assert.Nil(t, inner.Set(c.Key, c.Value))
	assert.Nil(t, inner.Write())
	s.AssertGetHas(t, base, c.Key, nil, false)

	assert.Nil(t, outer.Write())
	s.AssertGetHas(t, base, a.Key, a.Value, true)
	s.AssertGetHas(t, base, b.Key, nil, false)
	s.AssertGetHas(t, base, c.Key, c.Value, true)
}

// BatchWrite ensures that batched operations are only visible after the
// batch is written.
func (s *TestSuite) BatchWrite(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	ms := randModels(2, 8, 16)
	assert.Nil(t, base.Set(ms[1].Key, ms[1].Value))

	batch := base.NewBatch()
	assert.Nil(t, batch.Set(ms[0].Key, ms[0].Value))
	assert.Nil(t, batch.Delete(ms[1].Key))
	s.AssertGetHas(t, base, ms[0].Key, nil, false)
	s.AssertGetHas(t, base, ms[1].Key, ms[1].Value, true)

	assert.Nil(t, batch.Write())
	s.AssertGetHas(t, base, ms[0].Key, ms[0].Value, true)
	s.AssertGetHas(t, base, ms[1].Key, nil, false)
}

// AssertGetHas fails the test unless key reads as val and its presence
// matches has.
func (s *TestSuite) AssertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, has, exists)
}

func randBytes(length int) []byte {
	res := make([]byte, length)
	_, _ = rand.Read(res)
	return res
}

func randKeys(count, size int) [][]byte {
	res := make([][]byte, count)
	for i := 0; i < count; i++ {
		res[i] = randBytes(size)
	}
	return res
}

func randModels(count, keySize, valueSize int) []Model {
	models := make([]Model, count)
	for i := 0; i < count; i++ {
		models[i].Key = randBytes(keySize)
		models[i].Value = randBytes(valueSize)
	}
	return models
}
