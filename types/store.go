package types

import (
	"fmt"

	abci "github.com/tendermint/tendermint/abci/types"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// Iterator over a domain of keys in ascending or descending order.
type Iterator = dbm.Iterator

// KVStore is a simple interface to get/set data
type KVStore interface {
	// Get returns nil iff key doesn't exist. Panics on nil key.
	Get(key []byte) []byte

	// Has checks if a key exists. Panics on nil key.
	Has(key []byte) bool

	// Set sets the key. Panics on nil key or value.
	Set(key, value []byte)

	// Delete deletes the key. Panics on nil key.
	Delete(key []byte)

	// Iterator over a domain of keys in ascending order. End is exclusive.
	// Start must be less than end, or the Iterator is invalid.
	// CONTRACT: No writes may happen within a domain while an iterator exists over it.
	Iterator(start, end []byte) Iterator

	// Iterator over a domain of keys in descending order. End is exclusive.
	ReverseIterator(start, end []byte) Iterator
}

// CacheKVStore buffers writes to an underlying KVStore until Write is called.
type CacheKVStore interface {
	KVStore

	// Writes operations to underlying KVStore
	Write()
}

// VersionedReader answers reads against committed versions of a store. A
// version, once committed, never changes.
type VersionedReader interface {
	GetVersioned(key []byte, version int64) []byte
	VersionExists(version int64) bool
	LatestVersion() int64
	// IterateVersioned calls fn for every key under prefix as of version, in
	// key order, until fn returns true.
	IterateVersioned(prefix []byte, version int64, fn func(key, value []byte) (stop bool))
}

// MultiStore gives access to every mounted store.
type MultiStore interface {
	GetKVStore(key StoreKey) KVStore
	GetVersionedReader(key StoreKey) VersionedReader

	// CacheMultiStore branches all mounted stores; nothing reaches the
	// parent until Write is called.
	CacheMultiStore() CacheMultiStore
}

// CacheMultiStore is a branched MultiStore.
type CacheMultiStore interface {
	MultiStore

	// Writes operations to underlying KVStore
	Write()
}

// CommitMultiStore persists one version of every mounted store per Commit.
type CommitMultiStore interface {
	MultiStore

	MountStoreWithDB(key StoreKey, db dbm.DB)
	LoadLatestVersion() error
	LoadVersion(ver int64) error
	Commit() CommitID
	LastCommitID() CommitID
}

// Queryable answers raw store queries against committed versions.
type Queryable interface {
	Query(abci.RequestQuery) abci.ResponseQuery
}

// CommitID contains the tree version number and its merkle root.
type CommitID struct {
	Version int64
	Hash    []byte
}

func (cid CommitID) IsZero() bool {
	return cid.Version == 0 && len(cid.Hash) == 0
}

func (cid CommitID) String() string {
	return fmt.Sprintf("CommitID{%X:%d}", cid.Hash, cid.Version)
}

//----------------------------------------
// Keys for accessing substores

// StoreKey is a key used to index stores in a MultiStore.
type StoreKey interface {
	Name() string
	String() string
}

// KVStoreKey is used for permanent storage.
type KVStoreKey struct {
	name string
}

// NewKVStoreKey returns a new pointer to a KVStoreKey.
// Use a pointer so keys don't collide.
func NewKVStoreKey(name string) *KVStoreKey {
	return &KVStoreKey{
		name: name,
	}
}

func (key *KVStoreKey) Name() string {
	return key.name
}

func (key *KVStoreKey) String() string {
	return fmt.Sprintf("KVStoreKey{%p, %s}", key, key.name)
}

// PrefixEndBytes returns the []byte that would end a
// range query for all []byte with a certain prefix
// Deals with last byte of prefix being FF without overflowing
func PrefixEndBytes(prefix []byte) []byte {
	if len(prefix) == 0 {
		return nil
	}

	end := make([]byte, len(prefix))
	copy(end, prefix)

	for {
		if end[len(end)-1] != byte(255) {
			end[len(end)-1]++
			break
		} else {
			end = end[:len(end)-1]
			if len(end) == 0 {
				end = nil
				break
			}
		}
	}
	return end
}

// Iterator over all the keys with a certain prefix in ascending order
func KVStorePrefixIterator(kvs KVStore, prefix []byte) Iterator {
	return kvs.Iterator(prefix, PrefixEndBytes(prefix))
}

// Iterator over all the keys with a certain prefix in descending order.
func KVStoreReversePrefixIterator(kvs KVStore, prefix []byte) Iterator {
	return kvs.ReverseIterator(prefix, PrefixEndBytes(prefix))
}
