package store

import (
	"sync"

	sdk "github.com/bnb-chain/tokenvote/types"
)

// cacheMultiStore holds one cacheKVStore per substore that has been touched.
// Historical reads always go to the parent, they cannot be branched.
type cacheMultiStore struct {
	mtx    sync.Mutex
	parent sdk.MultiStore
	stores map[sdk.StoreKey]*cacheKVStore
}

var _ sdk.CacheMultiStore = (*cacheMultiStore)(nil)

func newCacheMultiStore(parent sdk.MultiStore) *cacheMultiStore {
	return &cacheMultiStore{
		parent: parent,
		stores: make(map[sdk.StoreKey]*cacheKVStore),
	}
}

// Implements MultiStore.
func (cms *cacheMultiStore) GetKVStore(key sdk.StoreKey) sdk.KVStore {
	cms.mtx.Lock()
	defer cms.mtx.Unlock()
	st, ok := cms.stores[key]
	if !ok {
		st = NewCacheKVStore(cms.parent.GetKVStore(key))
		cms.stores[key] = st
	}
	return st
}

// Implements MultiStore.
func (cms *cacheMultiStore) GetVersionedReader(key sdk.StoreKey) sdk.VersionedReader {
	return cms.parent.GetVersionedReader(key)
}

// Implements MultiStore.
func (cms *cacheMultiStore) CacheMultiStore() sdk.CacheMultiStore {
	return newCacheMultiStore(cms)
}

// Write flushes every touched substore to the parent.
func (cms *cacheMultiStore) Write() {
	cms.mtx.Lock()
	defer cms.mtx.Unlock()
	for _, st := range cms.stores {
		st.Write()
	}
}
