package store

// prefixStore isolates a key space. Every key is transparently prefixed
// before it reaches the underlying store.
type prefixStore struct {
	prefix []byte
	kv     KVStore
}

var _ KVStore = (*prefixStore)(nil)

// NewPrefixStore returns a store that reads and writes only keys starting
// with given prefix. The prefix is not visible to the user of the returned
// store.
func NewPrefixStore(kv KVStore, prefix []byte) KVStore {
	p := make([]byte, len(prefix))
	copy(p, prefix)
	return &prefixStore{prefix: p, kv: kv}
}

func (p *prefixStore) key(k []byte) []byte {
	out := make([]byte, 0, len(p.prefix)+len(k))
	out = append(out, p.prefix...)
	return append(out, k...)
}

func (p *prefixStore) Get(key []byte) ([]byte, error) {
	return p.kv.Get(p.key(key))
}

func (p *prefixStore) Has(key []byte) (bool, error) {
	return p.kv.Has(p.key(key))
}

func (p *prefixStore) Set(key, value []byte) error {
	return p.kv.Set(p.key(key), value)
}

func (p *prefixStore) Delete(key []byte) error {
	return p.kv.Delete(p.key(key))
}

func (p *prefixStore) NewBatch() Batch {
	return &prefixBatch{prefix: p, b: p.kv.NewBatch()}
}

type prefixBatch struct {
	prefix *prefixStore
	b      Batch
}

func (b *prefixBatch) Set(key, value []byte) error {
	return b.b.Set(b.prefix.key(key), value)
}

func (b *prefixBatch) Delete(key []byte) error {
	return b.b.Delete(b.prefix.key(key))
}

func (b *prefixBatch) Write() error {
	return b.b.Write()
}
