//nolint
package store

import "github.com/iov-one/xsigners"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = xsigners.ReadOnlyKVStore
type SetDeleter = xsigners.SetDeleter
type KVStore = xsigners.KVStore
type Batch = xsigners.Batch
type CacheableKVStore = xsigners.CacheableKVStore
type KVCacheWrap = xsigners.KVCacheWrap
type CommitKVStore = xsigners.CommitKVStore
type CommitID = xsigners.CommitID
