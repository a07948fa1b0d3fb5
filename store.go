package xsigners

// ReadOnlyKVStore is the read side of a state store. Contracts querying the
// wallet only ever see this.
type ReadOnlyKVStore interface {
	// Get returns nil when the key does not exist.
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
}

// SetDeleter is the write side shared by stores and batches. Neither key
// nor value may be modified after the call.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// KVStore is the state a contract reads and writes during a call.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter
	NewBatch() Batch
}

// Batch groups writes that are applied together on Write.
type Batch interface {
	SetDeleter
	Write() error
}

// CacheableKVStore can stage writes in a layer that is later written back
// or dropped. The ledger gives every dispatched call its own layer, so a
// trapped callee leaves the caller state untouched.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap is a staging layer. Reads see staged writes first. Write
// applies them to the parent and Discard drops them. Layers nest.
type KVCacheWrap interface {
	CacheableKVStore
	Write() error
	Discard()
}

// CommitKVStore is the persistent root of the application state. Reads
// reflect the last committed version.
type CommitKVStore interface {
	ReadOnlyKVStore
	CacheWrap() KVCacheWrap

	// Commit persists the next version.
	Commit() (CommitID, error)

	// LoadLatestVersion loads the latest persisted version. After a crash
	// during commit the last stable version is loaded.
	LoadLatestVersion() error

	LatestVersion() (CommitID, error)
}

// CommitID identifies a committed state version by its number and merkle
// root.
type CommitID struct {
	Version int64
	Hash    []byte
}
