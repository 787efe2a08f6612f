package store

import (
	cmn "github.com/tendermint/tendermint/libs/common"

	sdk "github.com/bnb-chain/tokenvote/types"
)

// Iterates over a pre-sorted snapshot of key/value pairs.
// Implements Iterator.
type memIterator struct {
	start, end []byte
	items      []cmn.KVPair
}

var _ sdk.Iterator = (*memIterator)(nil)

func newMemIterator(start, end []byte, items []cmn.KVPair) *memIterator {
	return &memIterator{
		start: start,
		end:   end,
		items: items,
	}
}

func (mi *memIterator) Domain() ([]byte, []byte) {
	return mi.start, mi.end
}

func (mi *memIterator) Valid() bool {
	return len(mi.items) > 0
}

func (mi *memIterator) assertValid() {
	if !mi.Valid() {
		panic("memIterator is invalid")
	}
}

func (mi *memIterator) Next() {
	mi.assertValid()
	mi.items = mi.items[1:]
}

func (mi *memIterator) Key() []byte {
	mi.assertValid()
	return mi.items[0].Key
}

func (mi *memIterator) Value() []byte {
	mi.assertValid()
	return mi.items[0].Value
}

func (mi *memIterator) Close() {
	mi.start = nil
	mi.end = nil
	mi.items = nil
}
