package store

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/tendermint/iavl"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/crypto/merkle"
	cmn "github.com/tendermint/tendermint/libs/common"
	dbm "github.com/tendermint/tendermint/libs/db"

	sdk "github.com/bnb-chain/tokenvote/types"
)

const iavlCacheSize = 10000

var (
	_ sdk.KVStore         = (*IavlStore)(nil)
	_ sdk.VersionedReader = (*IavlStore)(nil)
)

// IavlStore is a KVStore over an iavl tree. Every committed block is a tree
// version, and old versions stay readable for weight snapshots.
type IavlStore struct {
	tree *iavl.MutableTree
}

// LoadIAVLStore opens the tree in db at version, 0 meaning the latest.
func LoadIAVLStore(db dbm.DB, version int64) (*IavlStore, error) {
	tree := iavl.NewMutableTree(db, iavlCacheSize)
	if _, err := tree.LoadVersion(version); err != nil {
		return nil, errors.Wrapf(err, "failed to load iavl version %d", version)
	}
	return &IavlStore{tree: tree}, nil
}

// Commit saves the working tree as the next version. A failed save leaves
// the store unusable, so it panics.
func (st *IavlStore) Commit() sdk.CommitID {
	hash, version, err := st.tree.SaveVersion()
	if err != nil {
		panic(err)
	}
	return sdk.CommitID{Version: version, Hash: hash}
}

func (st *IavlStore) LastCommitID() sdk.CommitID {
	return sdk.CommitID{Version: st.tree.Version(), Hash: st.tree.Hash()}
}

func (st *IavlStore) VersionExists(version int64) bool {
	return st.tree.VersionExists(version)
}

func (st *IavlStore) LatestVersion() int64 {
	return st.tree.Version()
}

// GetVersioned reads key as of a committed version. Unknown versions read as
// nil, the same as an absent key.
func (st *IavlStore) GetVersioned(key []byte, version int64) []byte {
	if !st.tree.VersionExists(version) {
		return nil
	}
	_, v := st.tree.GetVersioned(key, version)
	return v
}

// IterateVersioned walks the keys under prefix as of a committed version.
// Unknown versions hold no keys.
func (st *IavlStore) IterateVersioned(prefix []byte, version int64, fn func(key, value []byte) (stop bool)) {
	if !st.tree.VersionExists(version) {
		return
	}
	tree, err := st.tree.GetImmutable(version)
	if err != nil {
		return
	}
	tree.IterateRange(prefix, sdk.PrefixEndBytes(prefix), true, fn)
}

func (st *IavlStore) CacheWrap() sdk.CacheKVStore {
	return NewCacheKVStore(st)
}

func (st *IavlStore) Get(key []byte) []byte {
	_, v := st.tree.Get(key)
	return v
}

func (st *IavlStore) Has(key []byte) bool {
	return st.tree.Has(key)
}

func (st *IavlStore) Set(key, value []byte) {
	st.tree.Set(key, value)
}

func (st *IavlStore) Delete(key []byte) {
	st.tree.Remove(key)
}

func (st *IavlStore) Iterator(start, end []byte) sdk.Iterator {
	return st.snapshot(start, end, true)
}

func (st *IavlStore) ReverseIterator(start, end []byte) sdk.Iterator {
	return st.snapshot(start, end, false)
}

// snapshot copies the range out of the working tree, so writes made while
// iterating do not disturb the iterator.
func (st *IavlStore) snapshot(start, end []byte, ascending bool) sdk.Iterator {
	var items []cmn.KVPair
	st.tree.IterateRange(start, end, ascending, func(key, value []byte) bool {
		items = append(items, cmn.KVPair{Key: key, Value: value})
		return false
	})
	return newMemIterator(cp(start), cp(end), items)
}

// Query answers "/key" lookups against a committed version, the latest one
// when req.Height is 0. Proofs are attached when req.Prove is set.
func (st *IavlStore) Query(req abci.RequestQuery) abci.ResponseQuery {
	if len(req.Data) == 0 {
		return queryResult(sdk.ErrTxDecode("query key cannot be empty"))
	}
	if req.Path != "/key" && req.Path != "/store" {
		return queryResult(sdk.ErrUnknownRequest(fmt.Sprintf("unexpected store query path %q", req.Path)))
	}

	res := abci.ResponseQuery{Key: req.Data, Height: req.Height}
	if res.Height == 0 {
		res.Height = st.tree.Version()
	}
	if !st.tree.VersionExists(res.Height) {
		res = queryResult(sdk.ErrUnknownRequest(errors.Wrapf(iavl.ErrVersionDoesNotExist, "height %d", res.Height).Error()))
		res.Height = req.Height
		return res
	}
	if !req.Prove {
		_, res.Value = st.tree.GetVersioned(req.Data, res.Height)
		return res
	}
	value, proof, err := st.tree.GetVersionedWithProof(req.Data, res.Height)
	if err != nil {
		res = queryResult(sdk.ErrInternal(err.Error()))
		res.Height = req.Height
		return res
	}
	res.Value = value
	res.Proof = &merkle.Proof{Ops: []merkle.ProofOp{iavl.NewIAVLValueOp(req.Data, proof).ProofOp()}}
	return res
}

func queryResult(err sdk.Error) abci.ResponseQuery {
	return abci.ResponseQuery{
		Code:      uint32(err.Code()),
		Codespace: fmt.Sprintf("%d", err.Codespace()),
		Log:       err.ABCILog(),
	}
}

func cp(bz []byte) []byte {
	if bz == nil {
		return nil
	}
	ret := make([]byte, len(bz))
	copy(ret, bz)
	return ret
}
