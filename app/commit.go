package app

import (
	"github.com/iov-one/xsigners"
	"github.com/iov-one/xsigners/errors"
)

// CommitStore keeps the pending changes of a block on top of a committed
// store. The check cache holds the effects of transactions accepted into the
// mempool and is reset on every commit.
type CommitStore struct {
	committed xsigners.CommitKVStore
	deliver   xsigners.KVCacheWrap
	check     xsigners.KVCacheWrap
}

// NewCommitStore loads the latest version of the store and sets up the
// deliver cache.
func NewCommitStore(store xsigners.CommitKVStore) (*CommitStore, error) {
	if err := store.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "load latest version")
	}
	return &CommitStore{
		committed: store,
		deliver:   store.CacheWrap(),
		check:     store.CacheWrap(),
	}, nil
}

// CommitInfo returns the current height and hash
func (cs *CommitStore) CommitInfo() (xsigners.CommitID, error) {
	return cs.committed.LatestVersion()
}

// Commit will flush deliver to the underlying store and commit it
// to disk. It then regenerates a new deliver cache.
func (cs *CommitStore) Commit() (xsigners.CommitID, error) {
	if err := cs.deliver.Write(); err != nil {
		return xsigners.CommitID{}, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	res, err := cs.committed.Commit()
	if err != nil {
		return res, err
	}
	cs.deliver = cs.committed.CacheWrap()
	cs.check.Discard()
	cs.check = cs.committed.CacheWrap()
	return res, nil
}

// Discard drops all changes since the last commit.
func (cs *CommitStore) Discard() {
	cs.deliver.Discard()
	cs.deliver = cs.committed.CacheWrap()
}

// DeliverStore returns the store all changes must be written to.
func (cs *CommitStore) DeliverStore() xsigners.CacheableKVStore {
	return cs.deliver
}

// CheckStore returns the store transactions are checked against.
func (cs *CommitStore) CheckStore() xsigners.CacheableKVStore {
	return cs.check
}

// CommittedStore returns a read only view of the last committed state.
func (cs *CommitStore) CommittedStore() xsigners.CacheableKVStore {
	return cs.committed.CacheWrap()
}
