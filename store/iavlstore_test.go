package store

import (
	"testing"

	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	dbm "github.com/tendermint/tendermint/libs/db"

	sdk "github.com/bnb-chain/tokenvote/types"
)

func newAlohaStore(t *testing.T) *IavlStore {
	st, err := LoadIAVLStore(dbm.NewMemDB(), 0)
	require.NoError(t, err)
	st.Set([]byte("aloha"), []byte("shalom"))
	st.Set([]byte("hello"), []byte("goodbye"))
	return st
}

func TestIAVLStoreGetSetHasDelete(t *testing.T) {
	st := newAlohaStore(t)

	require.True(t, st.Has([]byte("aloha")))
	require.Equal(t, []byte("shalom"), st.Get([]byte("aloha")))

	st.Set([]byte("aloha"), []byte("hola"))
	require.Equal(t, []byte("hola"), st.Get([]byte("aloha")))

	st.Delete([]byte("aloha"))
	require.False(t, st.Has([]byte("aloha")))
	require.Nil(t, st.Get([]byte("aloha")))
}

func TestIAVLStoreVersionedReads(t *testing.T) {
	st := newAlohaStore(t)
	require.False(t, st.VersionExists(1))

	cid := st.Commit()
	require.EqualValues(t, 1, cid.Version)
	require.EqualValues(t, 1, st.LatestVersion())

	st.Set([]byte("aloha"), []byte("hola"))
	st.Delete([]byte("hello"))
	cid = st.Commit()
	require.EqualValues(t, 2, cid.Version)

	// committed history stays readable and never changes
	require.Equal(t, []byte("shalom"), st.GetVersioned([]byte("aloha"), 1))
	require.Equal(t, []byte("goodbye"), st.GetVersioned([]byte("hello"), 1))
	require.Equal(t, []byte("hola"), st.GetVersioned([]byte("aloha"), 2))
	require.Nil(t, st.GetVersioned([]byte("hello"), 2))

	// unknown versions read as absent
	require.Nil(t, st.GetVersioned([]byte("aloha"), 0))
	require.Nil(t, st.GetVersioned([]byte("aloha"), 3))
}

func TestIAVLStoreIterateVersioned(t *testing.T) {
	st := newAlohaStore(t)
	st.Set([]byte("hello1"), []byte("goodbye1"))
	st.Commit()
	st.Delete([]byte("hello"))
	st.Set([]byte("hello2"), []byte("goodbye2"))
	st.Commit()
	st.Set([]byte("hello3"), []byte("uncommitted"))

	collect := func(prefix []byte, version int64) []string {
		var kvs []string
		st.IterateVersioned(prefix, version, func(key, value []byte) bool {
			kvs = append(kvs, string(key)+"="+string(value))
			return false
		})
		return kvs
	}
	require.Equal(t, []string{"hello=goodbye", "hello1=goodbye1"}, collect([]byte("hello"), 1))
	require.Equal(t, []string{"hello1=goodbye1", "hello2=goodbye2"}, collect([]byte("hello"), 2))
	require.Equal(t, []string{"aloha=shalom"}, collect([]byte("a"), 2))
	require.Empty(t, collect([]byte("hello"), 3))
	require.Empty(t, collect(nil, 0))
}

func TestIAVLIterator(t *testing.T) {
	st := newAlohaStore(t)
	st.Set([]byte("hello1"), []byte("goodbye1"))

	iter := st.Iterator([]byte("aloha"), []byte("hellz"))
	expected := []string{"aloha", "hello", "hello1"}
	i := 0
	for ; iter.Valid(); iter.Next() {
		require.EqualValues(t, expected[i], string(iter.Key()))
		i++
	}
	iter.Close()
	require.Equal(t, len(expected), i)

	iter = st.ReverseIterator(nil, nil)
	expected = []string{"hello1", "hello", "aloha"}
	i = 0
	for ; iter.Valid(); iter.Next() {
		require.EqualValues(t, expected[i], string(iter.Key()))
		i++
	}
	iter.Close()
	require.Equal(t, len(expected), i)

	iter = sdk.KVStorePrefixIterator(st, []byte("hello"))
	i = 0
	for ; iter.Valid(); iter.Next() {
		i++
	}
	iter.Close()
	require.Equal(t, 2, i)
}

func TestIAVLStoreQuery(t *testing.T) {
	st := newAlohaStore(t)
	st.Commit()

	res := st.Query(abci.RequestQuery{Path: "/key", Data: []byte("aloha")})
	require.EqualValues(t, 0, res.Code)
	require.Equal(t, []byte("shalom"), res.Value)
	require.EqualValues(t, 1, res.Height)

	res = st.Query(abci.RequestQuery{Path: "/key", Data: []byte("aloha"), Height: 7})
	require.EqualValues(t, sdk.CodeUnknownRequest, res.Code)
	require.Nil(t, res.Value)
	require.Contains(t, res.Log, "height 7")

	res = st.Query(abci.RequestQuery{Path: "/key"})
	require.EqualValues(t, sdk.CodeTxDecode, res.Code)

	res = st.Query(abci.RequestQuery{Path: "/nowhere", Data: []byte("aloha")})
	require.EqualValues(t, sdk.CodeUnknownRequest, res.Code)
}
