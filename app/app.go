package app

import (
	"fmt"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	dbm "github.com/tendermint/tendermint/libs/db"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/bnb-chain/tokenvote/codec"
	"github.com/bnb-chain/tokenvote/pubsub"
	"github.com/bnb-chain/tokenvote/store"
	sdk "github.com/bnb-chain/tokenvote/types"
	"github.com/bnb-chain/tokenvote/x/acl"
	"github.com/bnb-chain/tokenvote/x/token"
	"github.com/bnb-chain/tokenvote/x/voting"
)

const appName = "tokenvote"

// Key to store the last block header in the DB itself.
// Use the db directly instead of a store to avoid
// conflicts with handlers writing to the store
// and to avoid affecting the Merkle root.
var dbHeaderKey = []byte("header")

// TokenVoteApp is a single node application: it owns the multistore, routes
// messages to the module handlers and commits one version per block.
type TokenVoteApp struct {
	// initialized on creation
	Logger      log.Logger
	name        string
	db          dbm.DB
	cms         sdk.CommitMultiStore
	cdc         *codec.Codec
	router      *Router
	queryRouter *QueryRouter

	keyACL    *sdk.KVStoreKey
	keyToken  *sdk.KVStoreKey
	keyVoting *sdk.KVStoreKey

	ACLKeeper    acl.Keeper
	TokenKeeper  token.Keeper
	VotingKeeper voting.Keeper
	actionRouter *voting.Router

	// may be nil
	publisher *pubsub.Publisher

	weightCacheSize int
	metrics         *voting.Metrics

	//--------------------
	// Volatile
	// deliverState is set in BeginBlock and cleared on Commit. Queries hold
	// mtx for reading, everything touching the stores holds it for writing.
	blockMtx      sync.Mutex
	mtx           sync.RWMutex
	deliverState  *state
	pendingEvents sdk.Events
	lastHeader    abci.Header
}

type state struct {
	ms  sdk.CacheMultiStore
	Ctx sdk.Context
}

// lastBlock is what survives of a header between runs.
type lastBlock struct {
	ChainID string    `json:"chain_id"`
	Height  int64     `json:"height"`
	Time    time.Time `json:"time"`
}

// SetPublisher publishes committed voting events on p.
func SetPublisher(p *pubsub.Publisher) func(*TokenVoteApp) {
	return func(app *TokenVoteApp) { app.publisher = p }
}

// SetMetrics records voting metrics on m instead of discarding them.
func SetMetrics(m *voting.Metrics) func(*TokenVoteApp) {
	return func(app *TokenVoteApp) { app.metrics = m }
}

// SetWeightCacheSize sizes the historical weight cache of the token ledger.
func SetWeightCacheSize(size int) func(*TokenVoteApp) {
	return func(app *TokenVoteApp) { app.weightCacheSize = size }
}

// NewTokenVoteApp returns a reference to an initialized app. Call
// LoadLatestVersion before use.
func NewTokenVoteApp(logger log.Logger, db dbm.DB, options ...func(*TokenVoteApp)) *TokenVoteApp {
	app := &TokenVoteApp{
		Logger:          logger,
		name:            appName,
		db:              db,
		cms:             store.NewCommitMultiStore(db),
		cdc:             MakeCodec(),
		router:          NewRouter(),
		queryRouter:     NewQueryRouter(),
		keyACL:          sdk.NewKVStoreKey(acl.StoreKey),
		keyToken:        sdk.NewKVStoreKey(token.StoreKey),
		keyVoting:       sdk.NewKVStoreKey(voting.StoreKey),
		weightCacheSize: token.DefaultWeightCacheSize,
		metrics:         voting.NopMetrics(),
	}
	for _, option := range options {
		option(app)
	}

	app.ACLKeeper = acl.NewKeeper(app.keyACL, acl.DefaultCodespace)
	app.TokenKeeper = token.NewKeeper(app.cdc, app.keyToken, app.weightCacheSize, token.DefaultCodespace)
	app.actionRouter = voting.NewRouter()
	app.VotingKeeper = voting.NewKeeper(app.cdc, app.keyVoting, app.TokenKeeper, app.ACLKeeper,
		app.actionRouter, app.metrics, voting.DefaultCodespace)

	app.actionRouter.
		AddRoute(voting.ActionTarget, voting.NewActionHandler(app.VotingKeeper)).
		AddRoute(token.ActionTarget, token.NewActionHandler(app.TokenKeeper)).
		AddRoute(acl.ActionTarget, acl.NewActionHandler(app.ACLKeeper))
	app.actionRouter.Seal()

	app.router.
		AddRoute(acl.RouterKey, acl.NewHandler(app.ACLKeeper)).
		AddRoute(token.RouterKey, token.NewHandler(app.TokenKeeper, app.ACLKeeper)).
		AddRoute(voting.RouterKey, voting.NewHandler(app.VotingKeeper))
	app.queryRouter.
		AddRoute(acl.QuerierRoute, acl.NewQuerier(app.ACLKeeper)).
		AddRoute(token.QuerierRoute, token.NewQuerier(app.TokenKeeper)).
		AddRoute(voting.QuerierRoute, voting.NewQuerier(app.VotingKeeper))

	app.cms.MountStoreWithDB(app.keyACL, nil)
	app.cms.MountStoreWithDB(app.keyToken, nil)
	app.cms.MountStoreWithDB(app.keyVoting, nil)
	return app
}

// MakeCodec registers the messages, actions and genesis types of every module.
func MakeCodec() *codec.Codec {
	cdc := codec.New()
	cdc.RegisterInterface((*sdk.Msg)(nil), nil)
	cdc.RegisterInterface((*voting.ScriptAction)(nil), nil)
	acl.RegisterCodec(cdc)
	token.RegisterCodec(cdc)
	voting.RegisterCodec(cdc)
	return cdc
}

func (app *TokenVoteApp) Name() string {
	return app.name
}

func (app *TokenVoteApp) Codec() *codec.Codec {
	return app.cdc
}

// load latest application version
func (app *TokenVoteApp) LoadLatestVersion() error {
	if err := app.cms.LoadLatestVersion(); err != nil {
		return err
	}
	return app.initFromStore()
}

// initializes the remaining logic from app.cms
func (app *TokenVoteApp) initFromStore() error {
	app.lastHeader = abci.Header{}
	bz := app.db.Get(dbHeaderKey)
	if bz == nil {
		if app.lastBlockHeight() != 0 {
			return errors.Errorf("store is at height %d but has no block header", app.lastBlockHeight())
		}
		return nil
	}
	var last lastBlock
	if err := app.cdc.UnmarshalBinaryBare(bz, &last); err != nil {
		return errors.Wrap(err, "failed to decode last block header")
	}
	if last.Height != app.lastBlockHeight() {
		return errors.Errorf("block header height %d does not match store height %d", last.Height, app.lastBlockHeight())
	}
	app.lastHeader = abci.Header{ChainID: last.ChainID, Height: last.Height, Time: last.Time}
	return nil
}

// the last CommitID of the multistore
func (app *TokenVoteApp) LastCommitID() sdk.CommitID {
	app.mtx.RLock()
	defer app.mtx.RUnlock()
	return app.cms.LastCommitID()
}

// the last committed block height
func (app *TokenVoteApp) LastBlockHeight() int64 {
	app.mtx.RLock()
	defer app.mtx.RUnlock()
	return app.lastBlockHeight()
}

// caller holds mtx
func (app *TokenVoteApp) lastBlockHeight() int64 {
	return app.cms.LastCommitID().Version
}

// LastHeader is the header of the last committed block.
func (app *TokenVoteApp) LastHeader() abci.Header {
	app.mtx.RLock()
	defer app.mtx.RUnlock()
	return app.lastHeader
}

func (app *TokenVoteApp) setDeliverState(header abci.Header) {
	ms := app.cms.CacheMultiStore()
	app.deliverState = &state{
		ms:  ms,
		Ctx: sdk.NewContext(ms, header, app.Logger),
	}
}

// InitChain runs every module's genesis and commits it as block 1, so that
// genesis balances are history from the next block on.
func (app *TokenVoteApp) InitChain(genesis GenesisState) (sdk.CommitID, error) {
	if err := ValidateGenesis(genesis); err != nil {
		return sdk.CommitID{}, err
	}

	app.mtx.Lock()
	if height := app.lastBlockHeight(); height != 0 {
		app.mtx.Unlock()
		return sdk.CommitID{}, errors.Errorf("chain already initialized at height %d", height)
	}
	app.setDeliverState(abci.Header{ChainID: genesis.ChainID, Height: 1, Time: genesis.GenesisTime})
	ctx := app.deliverState.Ctx
	acl.InitGenesis(ctx, app.ACLKeeper, genesis.ACL)
	token.InitGenesis(ctx, app.TokenKeeper, genesis.Token)
	voting.InitGenesis(ctx, app.VotingKeeper, genesis.Voting)
	app.mtx.Unlock()

	return app.Commit(), nil
}

// ExportGenesis dumps the committed state of every module.
func (app *TokenVoteApp) ExportGenesis() GenesisState {
	app.mtx.RLock()
	defer app.mtx.RUnlock()
	ctx := sdk.NewContext(app.cms.CacheMultiStore(), app.lastHeader, app.Logger)
	return GenesisState{
		ChainID:     app.lastHeader.ChainID,
		GenesisTime: app.lastHeader.Time,
		ACL:         acl.ExportGenesis(ctx, app.ACLKeeper),
		Token:       token.ExportGenesis(ctx, app.TokenKeeper),
		Voting:      voting.ExportGenesis(ctx, app.VotingKeeper),
	}
}

// BeginBlock opens the next block. Heights advance by one and block time
// never goes backwards.
func (app *TokenVoteApp) BeginBlock(header abci.Header) error {
	app.mtx.Lock()
	defer app.mtx.Unlock()

	if app.deliverState != nil {
		return errors.Errorf("block %d is still open", app.deliverState.Ctx.BlockHeight())
	}
	if expected := app.lastBlockHeight() + 1; header.Height != expected {
		return errors.Errorf("invalid block height %d, expected %d", header.Height, expected)
	}
	if header.Time.Before(app.lastHeader.Time) {
		return errors.Errorf("block time %s is before last block time %s", header.Time, app.lastHeader.Time)
	}
	if header.ChainID == "" {
		header.ChainID = app.lastHeader.ChainID
	}
	app.setDeliverState(header)
	return nil
}

// NextBlock opens the block after the last committed one at time t.
func (app *TokenVoteApp) NextBlock(t time.Time) error {
	return app.BeginBlock(abci.Header{Height: app.LastBlockHeight() + 1, Time: t})
}

// Basic validator for msgs
func validateBasicMsg(msg sdk.Msg) sdk.Error {
	if msg == nil {
		return sdk.ErrInternal("no message provided")
	}
	return msg.ValidateBasic()
}

// Deliver runs msg in the open block. State changes and events are kept only
// if the handler succeeds.
func (app *TokenVoteApp) Deliver(msg sdk.Msg) (result sdk.Result) {
	app.mtx.Lock()
	defer app.mtx.Unlock()

	if app.deliverState == nil {
		return sdk.ErrInternal("no open block, call BeginBlock first").Result()
	}

	defer func() {
		if r := recover(); r != nil {
			log := fmt.Sprintf("recovered: %v\nstack:\n%v", r, string(debug.Stack()))
			result = sdk.ErrInternal(log).Result()
		}
	}()

	if err := validateBasicMsg(msg); err != nil {
		return err.Result()
	}

	handler := app.router.Route(msg.Route())
	if handler == nil {
		return sdk.ErrUnknownRequest("Unrecognized Msg type: " + msg.Route()).Result()
	}

	// Keep the state in a transient CacheWrap in case processing the message
	// fails.
	msCache := app.deliverState.ms.CacheMultiStore()
	ctx := app.deliverState.Ctx.WithMultiStore(msCache).WithEventManager(sdk.NewEventManager())
	result = handler(ctx, msg)

	// only update state if the message passes
	if result.IsOK() {
		msCache.Write()
		app.pendingEvents = app.pendingEvents.AppendEvents(result.Events)
	} else {
		app.Logger.Debug("Msg failed", "route", msg.Route(), "type", msg.Type(), "log", result.Log)
	}
	return result
}

// Commit writes the open block and persists it as the next version.
// Events of the block are published once the block is durable.
func (app *TokenVoteApp) Commit() sdk.CommitID {
	app.mtx.Lock()
	if app.deliverState == nil {
		app.mtx.Unlock()
		panic("Commit called without an open block")
	}
	header := app.deliverState.Ctx.BlockHeader()

	// Write the Deliver state and commit the MultiStore
	app.deliverState.ms.Write()
	commitID := app.cms.Commit()
	app.db.SetSync(dbHeaderKey, app.cdc.MustMarshalBinaryBare(lastBlock{
		ChainID: header.ChainID,
		Height:  commitID.Version,
		Time:    header.Time,
	}))
	app.Logger.Debug("Commit synced", "commit", commitID)

	app.lastHeader = header
	events := app.pendingEvents
	app.pendingEvents = nil
	app.deliverState = nil
	app.mtx.Unlock()

	if app.publisher != nil {
		for _, event := range toPubsubEvents(commitID.Version, events) {
			app.publisher.Publish(event)
		}
	}
	return commitID
}

// Splits a string path using the delimter '/'.  i.e. "this/is/funny" becomes []string{"this", "is", "funny"}
func SplitPath(requestPath string) (path []string) {
	path = strings.Split(requestPath, "/")
	// first element is empty string
	if len(path) > 0 && path[0] == "" {
		path = path[1:]
	}
	return path
}

// Query answers against the last committed block. "custom/<module>/..."
// goes to the module querier and "store/<store>/key" reads raw keys.
func (app *TokenVoteApp) Query(req abci.RequestQuery) (res abci.ResponseQuery) {
	path := SplitPath(req.Path)
	if len(path) == 0 {
		msg := "no query path provided"
		return queryResult(sdk.ErrUnknownRequest(msg))
	}
	switch path[0] {
	case "store":
		return handleQueryStore(app, path, req)
	case "custom":
		return handleQueryCustom(app, path, req)
	}

	msg := "unknown query path"
	return queryResult(sdk.ErrUnknownRequest(msg))
}

func handleQueryStore(app *TokenVoteApp, path []string, req abci.RequestQuery) (res abci.ResponseQuery) {
	// "/store" prefix for store queries
	queryable, ok := app.cms.(sdk.Queryable)
	if !ok {
		msg := "multistore doesn't support queries"
		return queryResult(sdk.ErrUnknownRequest(msg))
	}
	req.Path = "/" + strings.Join(path[1:], "/")
	app.mtx.RLock()
	defer app.mtx.RUnlock()
	return queryable.Query(req)
}

func handleQueryCustom(app *TokenVoteApp, path []string, req abci.RequestQuery) (res abci.ResponseQuery) {
	// path[0] should be "custom" because "/custom" prefix is required for keeper queries.
	// the queryRouter routes using path[1]. For example, in the path "custom/voting/proposal", queryRouter routes using "voting"
	if len(path) < 2 || path[1] == "" {
		return queryResult(sdk.ErrUnknownRequest("No route for custom query specified"))
	}
	querier := app.queryRouter.Route(path[1])
	if querier == nil {
		return queryResult(sdk.ErrUnknownRequest(fmt.Sprintf("no custom querier found for route %s", path[1])))
	}

	// the querier reads the trees, so Commit must wait until it returns
	app.mtx.RLock()
	defer app.mtx.RUnlock()
	header := app.lastHeader
	ctx := sdk.NewContext(app.cms.CacheMultiStore(), header, app.Logger)

	// Passes the rest of the path as an argument to the querier.
	// For example, in the path "custom/voting/proposal/test", the voting querier gets []string{"proposal", "test"} as the path
	resBytes, err := querier(ctx, path[2:], req)
	if err != nil {
		return queryResult(err)
	}
	return abci.ResponseQuery{
		Code:   uint32(sdk.CodeOK),
		Value:  resBytes,
		Height: header.Height,
	}
}

func queryResult(err sdk.Error) abci.ResponseQuery {
	return abci.ResponseQuery{
		Code:      uint32(err.Code()),
		Codespace: fmt.Sprintf("%d", err.Codespace()),
		Log:       err.ABCILog(),
	}
}
