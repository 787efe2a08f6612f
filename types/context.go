package types

import (
	"time"

	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Context is the state a handler runs against: one block's header, the
// store branch it may write to and the events it emits. It is passed by
// value; the With* methods return modified copies.
type Context struct {
	ms           MultiStore
	header       abci.Header
	logger       log.Logger
	eventManager *EventManager
}

func NewContext(ms MultiStore, header abci.Header, logger log.Logger) Context {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return Context{
		ms:           ms,
		header:       header,
		logger:       logger,
		eventManager: NewEventManager(),
	}
}

func (c Context) MultiStore() MultiStore { return c.ms }
func (c Context) BlockHeader() abci.Header { return c.header }
func (c Context) BlockHeight() int64 { return c.header.Height }
func (c Context) BlockTime() time.Time { return c.header.Time }
func (c Context) ChainID() string { return c.header.ChainID }
func (c Context) Logger() log.Logger { return c.logger }
func (c Context) EventManager() *EventManager { return c.eventManager }

// KVStore fetches a KVStore from the MultiStore.
func (c Context) KVStore(key StoreKey) KVStore {
	return c.ms.GetKVStore(key)
}

// VersionedStore fetches the committed history of a store from the MultiStore.
func (c Context) VersionedStore(key StoreKey) VersionedReader {
	return c.ms.GetVersionedReader(key)
}

func (c Context) WithMultiStore(ms MultiStore) Context {
	c.ms = ms
	return c
}

func (c Context) WithBlockHeader(header abci.Header) Context {
	c.header = header
	return c
}

func (c Context) WithBlockHeight(height int64) Context {
	c.header.Height = height
	return c
}

func (c Context) WithBlockTime(t time.Time) Context {
	c.header.Time = t
	return c
}

func (c Context) WithLogger(logger log.Logger) Context {
	c.logger = logger
	return c
}

func (c Context) WithEventManager(em *EventManager) Context {
	c.eventManager = em
	return c
}

// CacheContext branches the multistore. Writes and events on the returned
// context reach the parent only when writeCache is called.
func (c Context) CacheContext() (cc Context, writeCache func()) {
	cms := c.ms.CacheMultiStore()
	cc = c.WithMultiStore(cms).WithEventManager(NewEventManager())
	writeCache = func() {
		cms.Write()
		c.eventManager.EmitEvents(cc.eventManager.Events())
	}
	return cc, writeCache
}
