package store

import (
	"testing"

	"github.com/stretchr/testify/require"
	dbm "github.com/tendermint/tendermint/libs/db"

	sdk "github.com/bnb-chain/tokenvote/types"
)

func bz(s string) []byte { return []byte(s) }

func TestCacheKVStore(t *testing.T) {
	parent := newAlohaStore(t)
	st := NewCacheKVStore(parent)

	require.Equal(t, bz("shalom"), st.Get(bz("aloha")))

	st.Set(bz("aloha"), bz("hola"))
	st.Set(bz("new"), bz("value"))
	st.Delete(bz("hello"))

	// nothing reaches the parent before Write
	require.Equal(t, bz("shalom"), parent.Get(bz("aloha")))
	require.True(t, parent.Has(bz("hello")))
	require.False(t, parent.Has(bz("new")))

	require.Equal(t, bz("hola"), st.Get(bz("aloha")))
	require.False(t, st.Has(bz("hello")))

	st.Write()
	require.Equal(t, bz("hola"), parent.Get(bz("aloha")))
	require.False(t, parent.Has(bz("hello")))
	require.Equal(t, bz("value"), parent.Get(bz("new")))
}

func TestCacheKVStoreDiscard(t *testing.T) {
	parent := newAlohaStore(t)
	st := NewCacheKVStore(parent)
	st.Set(bz("aloha"), bz("hola"))
	st.Delete(bz("hello"))

	require.Equal(t, bz("hola"), st.Get(bz("aloha")))

	// dropping the cache without Write leaves the parent untouched
	require.Equal(t, bz("shalom"), parent.Get(bz("aloha")))
	require.Equal(t, bz("goodbye"), parent.Get(bz("hello")))
}

func TestCacheKVStoreIterator(t *testing.T) {
	parent := newAlohaStore(t)
	st := NewCacheKVStore(parent)
	st.Set(bz("bonjour"), bz("au revoir"))
	st.Delete(bz("hello"))

	var keys []string
	iter := st.Iterator(nil, nil)
	for ; iter.Valid(); iter.Next() {
		keys = append(keys, string(iter.Key()))
	}
	iter.Close()
	require.Equal(t, []string{"aloha", "bonjour"}, keys)

	keys = nil
	iter = st.ReverseIterator(nil, nil)
	for ; iter.Valid(); iter.Next() {
		keys = append(keys, string(iter.Key()))
	}
	iter.Close()
	require.Equal(t, []string{"bonjour", "aloha"}, keys)
}

func TestNestedCacheKVStore(t *testing.T) {
	parent := newAlohaStore(t)
	outer := NewCacheKVStore(parent)
	inner := NewCacheKVStore(outer)

	inner.Set(bz("aloha"), bz("hola"))
	inner.Write()
	require.Equal(t, bz("hola"), outer.Get(bz("aloha")))
	require.Equal(t, bz("shalom"), parent.Get(bz("aloha")))

	outer.Write()
	require.Equal(t, bz("hola"), parent.Get(bz("aloha")))
}

func TestMultiStoreCommitAndCache(t *testing.T) {
	db := dbm.NewMemDB()
	keyA := sdk.NewKVStoreKey("a")
	keyB := sdk.NewKVStoreKey("b")

	ms := NewCommitMultiStore(db)
	ms.MountStoreWithDB(keyA, nil)
	ms.MountStoreWithDB(keyB, nil)
	require.NoError(t, ms.LoadLatestVersion())
	require.EqualValues(t, 0, ms.LastCommitID().Version)

	ms.GetKVStore(keyA).Set(bz("k"), bz("a1"))
	ms.GetKVStore(keyB).Set(bz("k"), bz("b1"))
	cid := ms.Commit()
	require.EqualValues(t, 1, cid.Version)

	cms := ms.CacheMultiStore()
	cms.GetKVStore(keyA).Set(bz("k"), bz("a2"))
	require.Equal(t, bz("a1"), ms.GetKVStore(keyA).Get(bz("k")))
	cms.Write()
	require.Equal(t, bz("a2"), ms.GetKVStore(keyA).Get(bz("k")))

	// history is visible through the cache
	require.Equal(t, bz("a1"), cms.GetVersionedReader(keyA).GetVersioned(bz("k"), 1))

	cid = ms.Commit()
	require.EqualValues(t, 2, cid.Version)

	// reload from the same db
	ms2 := NewCommitMultiStore(db)
	ms2.MountStoreWithDB(keyA, nil)
	ms2.MountStoreWithDB(keyB, nil)
	require.NoError(t, ms2.LoadLatestVersion())
	require.EqualValues(t, 2, ms2.LastCommitID().Version)
	require.Equal(t, bz("a2"), ms2.GetKVStore(keyA).Get(bz("k")))
	require.Equal(t, bz("b1"), ms2.GetKVStore(keyB).Get(bz("k")))
	require.Equal(t, bz("a1"), ms2.GetVersionedReader(keyA).GetVersioned(bz("k"), 1))
}
