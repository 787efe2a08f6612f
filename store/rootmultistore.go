package store

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/crypto/merkle"
	dbm "github.com/tendermint/tendermint/libs/db"

	"github.com/bnb-chain/tokenvote/codec"
	sdk "github.com/bnb-chain/tokenvote/types"
)

const (
	latestVersionKey = "s/latest"
	storeKeyPrefix   = "s/k:"
)

// rootMultiStore is composed of many IAVL stores, all committed together so
// that one version number names the state of every module.
type rootMultiStore struct {
	db           dbm.DB
	lastCommitID sdk.CommitID
	storesParams map[sdk.StoreKey]dbm.DB
	stores       map[sdk.StoreKey]*IavlStore
	keysByName   map[string]sdk.StoreKey
}

var _ sdk.CommitMultiStore = (*rootMultiStore)(nil)
var _ sdk.Queryable = (*rootMultiStore)(nil)

// nolint
func NewCommitMultiStore(db dbm.DB) *rootMultiStore {
	return &rootMultiStore{
		db:           db,
		storesParams: make(map[sdk.StoreKey]dbm.DB),
		stores:       make(map[sdk.StoreKey]*IavlStore),
		keysByName:   make(map[string]sdk.StoreKey),
	}
}

// MountStoreWithDB mounts a store. A nil db puts the store under its own
// prefix of the root db.
func (rs *rootMultiStore) MountStoreWithDB(key sdk.StoreKey, db dbm.DB) {
	if key == nil {
		panic("MountIAVLStore() key cannot be nil")
	}
	if _, ok := rs.storesParams[key]; ok {
		panic(fmt.Sprintf("rootMultiStore duplicate store key %v", key))
	}
	if _, ok := rs.keysByName[key.Name()]; ok {
		panic(fmt.Sprintf("rootMultiStore duplicate store key name %v", key))
	}
	if db == nil {
		db = dbm.NewPrefixDB(rs.db, []byte(storeKeyPrefix+key.Name()+"/"))
	}
	rs.storesParams[key] = db
	rs.keysByName[key.Name()] = key
}

// Implements CommitMultiStore.
func (rs *rootMultiStore) LoadLatestVersion() error {
	ver := getLatestVersion(rs.db)
	return rs.LoadVersion(ver)
}

// Implements CommitMultiStore.
func (rs *rootMultiStore) LoadVersion(ver int64) error {
	newStores := make(map[sdk.StoreKey]*IavlStore)
	var hashes = make(map[string][]byte)
	for key, db := range rs.storesParams {
		st, err := LoadIAVLStore(db, ver)
		if err != nil {
			return errors.Wrapf(err, "failed to load store %s", key.Name())
		}
		newStores[key] = st
		hashes[key.Name()] = st.LastCommitID().Hash
	}

	rs.lastCommitID = sdk.CommitID{
		Version: ver,
		Hash:    merkle.SimpleHashFromMap(hashes),
	}
	rs.stores = newStores
	return nil
}

// Implements CommitMultiStore.
func (rs *rootMultiStore) LastCommitID() sdk.CommitID {
	return rs.lastCommitID
}

// Commit saves one new version of every mounted store.
func (rs *rootMultiStore) Commit() sdk.CommitID {
	version := rs.lastCommitID.Version + 1
	hashes := make(map[string][]byte)
	for key, st := range rs.stores {
		commitID := st.Commit()
		if commitID.Version != version {
			panic(fmt.Sprintf("store %s committed version %d, expected %d", key.Name(), commitID.Version, version))
		}
		hashes[key.Name()] = commitID.Hash
	}

	setLatestVersion(rs.db, version)
	rs.lastCommitID = sdk.CommitID{
		Version: version,
		Hash:    merkle.SimpleHashFromMap(hashes),
	}
	return rs.lastCommitID
}

// Implements MultiStore.
func (rs *rootMultiStore) GetKVStore(key sdk.StoreKey) sdk.KVStore {
	return rs.getStore(key)
}

// Implements MultiStore.
func (rs *rootMultiStore) GetVersionedReader(key sdk.StoreKey) sdk.VersionedReader {
	return rs.getStore(key)
}

// Implements MultiStore.
func (rs *rootMultiStore) CacheMultiStore() sdk.CacheMultiStore {
	return newCacheMultiStore(rs)
}

func (rs *rootMultiStore) getStore(key sdk.StoreKey) *IavlStore {
	st, ok := rs.stores[key]
	if !ok {
		panic(fmt.Sprintf("store %v is not mounted", key))
	}
	return st
}

// Query routes "/<storeName>/key" style paths to the named substore.
func (rs *rootMultiStore) Query(req abci.RequestQuery) abci.ResponseQuery {
	storeName, subpath, err := parsePath(req.Path)
	if err != nil {
		return queryResult(err)
	}

	key, ok := rs.keysByName[storeName]
	if !ok {
		msg := fmt.Sprintf("no such store: %s", storeName)
		return queryResult(sdk.ErrUnknownRequest(msg))
	}

	req.Path = subpath
	return rs.getStore(key).Query(req)
}

// StoreNames lists the mounted stores, sorted.
func (rs *rootMultiStore) StoreNames() []string {
	names := make([]string, 0, len(rs.keysByName))
	for name := range rs.keysByName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// parsePath expects a format like /<storeName>[/<subpath>]
// Must start with /, subpath may be empty
// Returns error if it doesn't start with /
func parsePath(path string) (storeName string, subpath string, err sdk.Error) {
	if len(path) == 0 || path[0] != '/' {
		err = sdk.ErrUnknownRequest(fmt.Sprintf("invalid path: %s", path))
		return
	}
	paths := splitPath(path[1:])
	storeName = paths[0]
	if len(paths) == 2 {
		subpath = "/" + paths[1]
	}
	return
}

func splitPath(path string) []string {
	for i := 0; i < len(path); i++ {
		if path[i] == '/' {
			return []string{path[:i], path[i+1:]}
		}
	}
	return []string{path}
}

//----------------------------------------

func getLatestVersion(db dbm.DB) int64 {
	var latest int64
	latestBytes := db.Get([]byte(latestVersionKey))
	if latestBytes == nil {
		return 0
	}

	err := codec.Cdc.UnmarshalBinaryLengthPrefixed(latestBytes, &latest)
	if err != nil {
		panic(err)
	}

	return latest
}

// Set the latest version.
func setLatestVersion(db dbm.DB, version int64) {
	latestBytes, _ := codec.Cdc.MarshalBinaryLengthPrefixed(version)
	db.SetSync([]byte(latestVersionKey), latestBytes)
}
