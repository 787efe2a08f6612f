package voting

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	dbm "github.com/tendermint/tendermint/libs/db"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/bnb-chain/tokenvote/codec"
	"github.com/bnb-chain/tokenvote/store"
	sdk "github.com/bnb-chain/tokenvote/types"
	"github.com/bnb-chain/tokenvote/x/acl"
	"github.com/bnb-chain/tokenvote/x/token"
)

// RecorderTarget is the action target of the recording handler used in tests.
const RecorderTarget = "recorder"

var (
	// dummy addresses used for testing
	Addrs = createTestAddrs(5)

	genesisTime = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
)

func createTestAddrs(n int) []sdk.AccAddress {
	addrs := make([]sdk.AccAddress, 0, n)
	for i := 0; i < n; i++ {
		addrs = append(addrs, sdk.AccAddressFromName(strings.Repeat("holder", i+1)))
	}
	return addrs
}

// create a codec used only for testing
func MakeTestCodec() *codec.Codec {
	var cdc = codec.New()
	RegisterCodec(cdc)
	return cdc
}

// TestInput is a voting keeper wired to a real token ledger and acl gate on an
// in-memory multistore.
type TestInput struct {
	Ctx         sdk.Context
	MS          sdk.CommitMultiStore
	Cdc         *codec.Codec
	Keeper      Keeper
	TokenKeeper token.Keeper
	ACLKeeper   acl.Keeper
	Router      *Router
	RecorderKey sdk.StoreKey

	keys []sdk.StoreKey
}

// CreateTestInput mints the given balances, in order, to Addrs, configures the
// engine and commits one block so that the balances are visible as history.
func CreateTestInput(t *testing.T, config GovernanceConfig, balances ...int64) *TestInput {
	keyVoting := sdk.NewKVStoreKey(StoreKey)
	keyToken := sdk.NewKVStoreKey(token.StoreKey)
	keyACL := sdk.NewKVStoreKey(acl.StoreKey)
	keyRecorder := sdk.NewKVStoreKey(RecorderTarget)

	db := dbm.NewMemDB()
	ms := store.NewCommitMultiStore(db)
	ms.MountStoreWithDB(keyVoting, nil)
	ms.MountStoreWithDB(keyToken, nil)
	ms.MountStoreWithDB(keyACL, nil)
	ms.MountStoreWithDB(keyRecorder, nil)
	err := ms.LoadLatestVersion()
	require.Nil(t, err)

	ctx := sdk.NewContext(ms, abci.Header{ChainID: "foochainid", Height: 1, Time: genesisTime}, log.NewNopLogger())
	cdc := MakeTestCodec()

	tokenKeeper := token.NewKeeper(cdc, keyToken, 0, token.DefaultCodespace)
	aclKeeper := acl.NewKeeper(keyACL, acl.DefaultCodespace)
	router := NewRouter()
	keeper := NewKeeper(cdc, keyVoting, tokenKeeper, aclKeeper, router, NopMetrics(), DefaultCodespace)

	router.
		AddRoute(ActionTarget, NewActionHandler(keeper)).
		AddRoute(token.ActionTarget, token.NewActionHandler(tokenKeeper)).
		AddRoute(acl.ActionTarget, acl.NewActionHandler(aclKeeper)).
		AddRoute(RecorderTarget, NewRecordingHandler(keyRecorder))
	router.Seal()

	for i, amount := range balances {
		require.NoError(t, tokenKeeper.Mint(ctx, Addrs[i], amount))
		require.NoError(t, aclKeeper.Grant(ctx, Addrs[i], acl.CapCreateProposal))
	}
	if config != (GovernanceConfig{}) {
		require.NoError(t, keeper.configure(ctx, config))
	}

	input := &TestInput{
		Ctx:         ctx,
		MS:          ms,
		Cdc:         cdc,
		Keeper:      keeper,
		TokenKeeper: tokenKeeper,
		ACLKeeper:   aclKeeper,
		Router:      router,
		RecorderKey: keyRecorder,
		keys:        []sdk.StoreKey{keyVoting, keyToken, keyACL, keyRecorder},
	}
	input.NextBlock(time.Second)
	return input
}

// NextBlock commits the current block and moves the context to the next
// height, d later.
func (in *TestInput) NextBlock(d time.Duration) {
	cid := in.MS.Commit()
	header := in.Ctx.BlockHeader()
	header.Height = cid.Version + 1
	header.Time = header.Time.Add(d)
	in.Ctx = in.Ctx.WithBlockHeader(header).WithBlockHeight(header.Height).WithEventManager(sdk.NewEventManager())
}

// StateDump lists every key and value of every mounted store, so two dumps
// are equal only if the state is byte for byte the same.
func (in *TestInput) StateDump() []string {
	var dump []string
	for _, key := range in.keys {
		iterator := in.Ctx.KVStore(key).Iterator(nil, nil)
		for ; iterator.Valid(); iterator.Next() {
			dump = append(dump, fmt.Sprintf("%s/%X=%X", key.Name(), iterator.Key(), iterator.Value()))
		}
		iterator.Close()
	}
	return dump
}

// RecordedWrites lists the keys written by recording actions, in key order.
func (in *TestInput) RecordedWrites() []string {
	var keys []string
	iterator := in.Ctx.KVStore(in.RecorderKey).Iterator(nil, nil)
	defer iterator.Close()
	for ; iterator.Valid(); iterator.Next() {
		keys = append(keys, string(iterator.Key()))
	}
	return keys
}

// RecordSet is an action that records key in the recorder store.
func RecordSet(key string) Action {
	return NewAction(RecorderTarget, []byte("set:"+key))
}

// RecordFail is an action whose handler returns an error.
func RecordFail() Action {
	return NewAction(RecorderTarget, []byte("fail"))
}

// RecordPanic is an action whose handler panics.
func RecordPanic() Action {
	return NewAction(RecorderTarget, []byte("panic"))
}

// NewRecordingHandler returns the recording handler behind RecorderTarget. Each
// "set:<key>" payload writes key; a key written twice makes the action fail,
// which catches scripts that run more than once.
func NewRecordingHandler(key sdk.StoreKey) ActionHandler {
	return func(ctx sdk.Context, payload []byte) sdk.Error {
		cmd := string(payload)
		switch {
		case strings.HasPrefix(cmd, "set:"):
			k := []byte(strings.TrimPrefix(cmd, "set:"))
			kvStore := ctx.KVStore(key)
			if kvStore.Has(k) {
				return sdk.ErrInternal("key recorded twice: " + string(k))
			}
			kvStore.Set(k, []byte{0x01})
			ctx.EventManager().EmitEvent(sdk.NewEvent("record", sdk.NewAttribute("key", string(k))))
			return nil
		case cmd == "fail":
			return sdk.ErrInternal("recorder failure")
		case cmd == "panic":
			panic(errors.New("recorder panic"))
		default:
			return sdk.ErrUnknownRequest("unknown recorder command " + cmd)
		}
	}
}
