package app

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	dbm "github.com/tendermint/tendermint/libs/db"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/bnb-chain/tokenvote/pubsub"
	sdk "github.com/bnb-chain/tokenvote/types"
	"github.com/bnb-chain/tokenvote/x/acl"
	"github.com/bnb-chain/tokenvote/x/token"
	"github.com/bnb-chain/tokenvote/x/voting"
)

var (
	admin   = sdk.AccAddressFromName("admin")
	holderA = sdk.AccAddressFromName("holderA")
	holderB = sdk.AccAddressFromName("holderB")
	outside = sdk.AccAddressFromName("outside")

	genesisTime = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
)

func testGenesis() GenesisState {
	genesis := NewDefaultGenesisState("test-chain", admin, 19)
	genesis.GenesisTime = genesisTime
	genesis.Token.Balances = append(genesis.Token.Balances,
		token.Balance{Address: holderA, Amount: 31},
		token.Balance{Address: holderB, Amount: 50},
	)
	genesis.ACL.Grants = append(genesis.ACL.Grants,
		acl.Grant{Address: holderB, Capability: acl.CapCreateProposal},
	)
	return genesis
}

func newTestApp(t *testing.T, db dbm.DB, options ...func(*TokenVoteApp)) *TokenVoteApp {
	app := NewTokenVoteApp(log.NewNopLogger(), db, options...)
	require.NoError(t, app.LoadLatestVersion())
	return app
}

func setupApp(t *testing.T, options ...func(*TokenVoteApp)) (*TokenVoteApp, dbm.DB) {
	db := dbm.NewMemDB()
	app := newTestApp(t, db, options...)
	_, err := app.InitChain(testGenesis())
	require.NoError(t, err)
	return app, db
}

func queryCustom(t *testing.T, app *TokenVoteApp, path string, data []byte) string {
	res := app.Query(abci.RequestQuery{Path: path, Data: data})
	require.Equal(t, uint32(sdk.CodeOK), res.Code, res.Log)
	return strings.TrimSpace(string(res.Value))
}

func balanceOf(t *testing.T, app *TokenVoteApp, addr sdk.AccAddress) string {
	data := app.Codec().MustMarshalJSON(token.QueryBalanceParams{Address: addr})
	return queryCustom(t, app, "custom/token/balance", data)
}

func TestInitChain(t *testing.T) {
	app, _ := setupApp(t)
	require.Equal(t, int64(1), app.LastBlockHeight())
	require.Equal(t, genesisTime, app.LastHeader().Time)
	require.Equal(t, `"100"`, queryCustom(t, app, "custom/token/supply", nil))
	require.Equal(t, `"31"`, balanceOf(t, app, holderA))

	_, err := app.InitChain(testGenesis())
	require.Error(t, err)
}

func TestInitChainRejectsInvalidGenesis(t *testing.T) {
	app := newTestApp(t, dbm.NewMemDB())
	genesis := testGenesis()
	genesis.Voting.Config.MinAcceptQuorumPct = 0
	_, err := app.InitChain(genesis)
	require.Error(t, err)
	require.Equal(t, int64(0), app.LastBlockHeight())
}

func TestBeginBlock(t *testing.T) {
	app, _ := setupApp(t)

	require.Error(t, app.BeginBlock(abci.Header{Height: 3, Time: genesisTime}))
	require.Error(t, app.BeginBlock(abci.Header{Height: 2, Time: genesisTime.Add(-time.Second)}))
	require.NoError(t, app.BeginBlock(abci.Header{Height: 2, Time: genesisTime}))
	require.Error(t, app.NextBlock(genesisTime), "block 2 is still open")
	app.Commit()
	require.Equal(t, int64(2), app.LastBlockHeight())
	require.Equal(t, "test-chain", app.LastHeader().ChainID)
}

func TestDeliverWithoutBlock(t *testing.T) {
	app, _ := setupApp(t)
	res := app.Deliver(token.NewMsgTransfer(holderA, outside, 1))
	require.Equal(t, sdk.CodeInternal, res.Code)
}

func TestDeliverRoutesAndRollsBack(t *testing.T) {
	app, _ := setupApp(t)
	require.NoError(t, app.NextBlock(genesisTime.Add(time.Second)))

	res := app.Deliver(token.NewMsgTransfer(holderA, outside, 40))
	require.Equal(t, token.CodeInsufficientBalance, res.Code)

	res = app.Deliver(token.NewMsgTransfer(holderA, outside, 1))
	require.True(t, res.IsOK(), res.Log)

	// failed ValidateBasic never reaches the handler
	res = app.Deliver(token.NewMsgTransfer(holderA, outside, 0))
	require.False(t, res.IsOK())

	// holderA has no mint capability
	res = app.Deliver(token.NewMsgMint(holderA, holderA, 5))
	require.Equal(t, sdk.CodeUnauthorized, res.Code)
	app.Commit()

	require.Equal(t, `"30"`, balanceOf(t, app, holderA))
	require.Equal(t, `"1"`, balanceOf(t, app, outside))
}

func TestProposalLifecycle(t *testing.T) {
	app, _ := setupApp(t)
	require.NoError(t, app.NextBlock(genesisTime.Add(time.Second)))

	script := voting.Script{
		voting.NewAction(token.ActionTarget, token.EncodeAction(token.MintAction{To: outside, Amount: 7})),
	}
	// 19 of 100 is below the 50% needed to decide early
	res := app.Deliver(voting.NewMsgNewVote(admin, script, "mint to outside", true, true))
	require.True(t, res.IsOK(), res.Log)
	require.Equal(t, int64(1), sdk.BigEndianToInt64(res.Data))
	require.Len(t, res.Events.OfType(voting.EventTypeProposalCreated), 1)
	require.Len(t, res.Events.OfType(voting.EventTypeExecuted), 0)
	app.Commit()

	require.NoError(t, app.NextBlock(genesisTime.Add(2*time.Second)))
	res = app.Deliver(voting.NewMsgVote(holderB, 1, true, true))
	require.True(t, res.IsOK(), res.Log)
	require.Len(t, res.Events.OfType(voting.EventTypeExecuted), 1)

	res = app.Deliver(voting.NewMsgExecute(holderA, 1))
	require.Equal(t, voting.CodeAlreadyExecuted, res.Code)
	app.Commit()

	require.Equal(t, `"7"`, balanceOf(t, app, outside))
	// executed proposals are no longer executable
	require.Equal(t, "false", queryCustom(t, app, "custom/voting/can_execute",
		app.Codec().MustMarshalJSON(voting.QueryProposalParams{ProposalID: 1})))
}

func TestFailedAutoExecutionIsNotCommitted(t *testing.T) {
	app, _ := setupApp(t)
	require.NoError(t, app.NextBlock(genesisTime.Add(time.Second)))

	// burning more than outside holds fails at execution
	script := voting.Script{
		voting.NewAction(token.ActionTarget, token.EncodeAction(token.BurnAction{From: outside, Amount: 1})),
	}
	res := app.Deliver(voting.NewMsgNewVote(holderB, script, "", true, true))
	require.Equal(t, voting.CodeExecutionFailed, res.Code)
	app.Commit()

	qres := app.Query(abci.RequestQuery{
		Path: "custom/voting/proposal",
		Data: app.Codec().MustMarshalJSON(voting.QueryProposalParams{ProposalID: 1}),
	})
	require.Equal(t, voting.CodeNoSuchProposal, sdk.CodeType(qres.Code))
}

func TestQueryPaths(t *testing.T) {
	app, _ := setupApp(t)

	res := app.Query(abci.RequestQuery{Path: ""})
	require.Equal(t, uint32(sdk.CodeUnknownRequest), res.Code)
	res = app.Query(abci.RequestQuery{Path: "custom/nope/x"})
	require.Equal(t, uint32(sdk.CodeUnknownRequest), res.Code)
	res = app.Query(abci.RequestQuery{Path: "custom"})
	require.Equal(t, uint32(sdk.CodeUnknownRequest), res.Code)
	res = app.Query(abci.RequestQuery{Path: "p2p/filter"})
	require.Equal(t, uint32(sdk.CodeUnknownRequest), res.Code)

	res = app.Query(abci.RequestQuery{Path: "/store/token/key", Data: token.GetBalanceKey(holderB), Height: 1})
	require.Equal(t, uint32(sdk.CodeOK), res.Code, res.Log)
	require.NotEmpty(t, res.Value)
}

func TestReloadFromDB(t *testing.T) {
	app, db := setupApp(t)
	require.NoError(t, app.NextBlock(genesisTime.Add(time.Minute)))
	res := app.Deliver(token.NewMsgTransfer(holderB, outside, 10))
	require.True(t, res.IsOK(), res.Log)
	commitID := app.Commit()
	exported := app.ExportGenesis()

	reloaded := newTestApp(t, db)
	require.Equal(t, commitID, reloaded.LastCommitID())
	require.Equal(t, genesisTime.Add(time.Minute), reloaded.LastHeader().Time)
	require.Equal(t, "test-chain", reloaded.LastHeader().ChainID)
	require.Equal(t, `"10"`, balanceOf(t, reloaded, outside))
	require.Equal(t, exported, reloaded.ExportGenesis())
}

func TestCommittedEventsArePublished(t *testing.T) {
	publisher := pubsub.NewPublisher("test", nil)
	require.NoError(t, publisher.Start())
	defer publisher.Stop()

	app, _ := setupApp(t, SetPublisher(publisher))
	sub, err := publisher.NewSubscriber("indexer")
	require.NoError(t, err)

	var mtx sync.Mutex
	var got []pubsub.Event
	record := func(e pubsub.Event) {
		mtx.Lock()
		got = append(got, e)
		mtx.Unlock()
	}
	require.NoError(t, sub.Subscribe(pubsub.ProposalCreatedTopic, record))
	require.NoError(t, sub.Subscribe(pubsub.VoteCastTopic, record))
	require.NoError(t, sub.Subscribe(pubsub.ProposalExecutedTopic, record))

	require.NoError(t, app.NextBlock(genesisTime.Add(time.Second)))
	res := app.Deliver(voting.NewMsgNewVote(holderB, voting.Script{}, "empty", true, true))
	require.True(t, res.IsOK(), res.Log)
	// a failed message publishes nothing
	res = app.Deliver(voting.NewMsgVote(outside, 1, true, false))
	require.False(t, res.IsOK())

	mtx.Lock()
	require.Empty(t, got, "nothing is published before commit")
	mtx.Unlock()
	app.Commit()

	require.Eventually(t, func() bool {
		mtx.Lock()
		defer mtx.Unlock()
		return len(got) == 3
	}, 2*time.Second, 10*time.Millisecond)

	mtx.Lock()
	defer mtx.Unlock()
	var created pubsub.ProposalCreatedEvent
	var cast pubsub.VoteCastEvent
	for _, e := range got {
		switch e := e.(type) {
		case pubsub.ProposalCreatedEvent:
			created = e
		case pubsub.VoteCastEvent:
			cast = e
		}
	}
	require.Equal(t, pubsub.ProposalCreatedEvent{
		Height: 2, ProposalID: 1, Creator: holderB.String(), SnapshotPoint: 1, Metadata: "empty",
	}, created)
	require.Equal(t, pubsub.VoteCastEvent{
		Height: 2, ProposalID: 1, Voter: holderB.String(), Supports: true, Weight: 50,
	}, cast)
}

func TestRouterPanics(t *testing.T) {
	rtr := NewRouter()
	h := func(ctx sdk.Context, msg sdk.Msg) sdk.Result { return sdk.Result{} }
	rtr.AddRoute("bank", h)
	require.Panics(t, func() { rtr.AddRoute("bank", h) })
	require.Panics(t, func() { rtr.AddRoute("bad/route", h) })
	require.Nil(t, rtr.Route("nope"))
}

func TestExecuteBlock(t *testing.T) {
	app, _ := setupApp(t)

	// a clock behind the last block is clamped to the last block time
	results, commitID, err := app.ExecuteBlock(genesisTime.Add(-time.Hour),
		token.NewMsgTransfer(holderA, outside, 1),
		token.NewMsgTransfer(outside, holderA, 5),
		token.NewMsgTransfer(holderA, outside, 2),
	)
	require.NoError(t, err)
	require.Equal(t, int64(2), commitID.Version)
	require.Len(t, results, 3)
	require.True(t, results[0].IsOK())
	require.Equal(t, token.CodeInsufficientBalance, results[1].Code)
	require.True(t, results[2].IsOK())
	require.Equal(t, genesisTime, app.LastHeader().Time)
	require.Equal(t, `"3"`, balanceOf(t, app, outside))

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := app.ExecuteBlock(time.Now(), token.NewMsgTransfer(holderB, outside, 1))
			require.NoError(t, err)
		}()
	}
	wg.Wait()
	require.Equal(t, int64(6), app.LastBlockHeight())
	require.Equal(t, `"7"`, balanceOf(t, app, outside))
}

func TestQueriesDuringCommits(t *testing.T) {
	app, _ := setupApp(t)

	const blocks = 50
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < blocks; i++ {
			_, _, err := app.ExecuteBlock(genesisTime.Add(time.Duration(i+1)*time.Second),
				token.NewMsgTransfer(holderB, outside, 1))
			require.NoError(t, err)
		}
	}()

	balanceQuery := abci.RequestQuery{
		Path: "custom/token/balance",
		Data: app.Codec().MustMarshalJSON(token.QueryBalanceParams{Address: outside}),
	}
	storeQuery := abci.RequestQuery{Path: "/store/token/key", Data: token.GetBalanceKey(holderB)}
	for running := true; running; {
		select {
		case <-done:
			running = false
		default:
		}
		res := app.Query(balanceQuery)
		require.Equal(t, uint32(sdk.CodeOK), res.Code, res.Log)
		res = app.Query(storeQuery)
		require.Equal(t, uint32(sdk.CodeOK), res.Code, res.Log)
	}

	require.Equal(t, int64(blocks+1), app.LastBlockHeight())
	require.Equal(t, `"50"`, balanceOf(t, app, outside))
}

func TestExportedOpenProposalKeepsSnapshot(t *testing.T) {
	app, _ := setupApp(t)
	require.NoError(t, app.NextBlock(genesisTime.Add(time.Second)))
	res := app.Deliver(voting.NewMsgNewVote(holderB, nil, "", false, false))
	require.True(t, res.IsOK(), res.Log)
	// holderA sells out after the snapshot
	res = app.Deliver(token.NewMsgTransfer(holderA, outside, 31))
	require.True(t, res.IsOK(), res.Log)
	app.Commit()

	exported := app.ExportGenesis()
	require.NoError(t, ValidateGenesis(exported))

	fresh := newTestApp(t, dbm.NewMemDB())
	_, err := fresh.InitChain(exported)
	require.NoError(t, err)
	require.NoError(t, fresh.NextBlock(exported.GenesisTime.Add(time.Second)))

	res = fresh.Deliver(voting.NewMsgVote(outside, 1, true, false))
	require.Equal(t, voting.CodeZeroWeight, res.Code)
	res = fresh.Deliver(voting.NewMsgVote(holderA, 1, false, false))
	require.True(t, res.IsOK(), res.Log)
	fresh.Commit()

	var voter voting.VoterOutput
	bz := queryCustom(t, fresh, "custom/voting/voter",
		fresh.Codec().MustMarshalJSON(voting.QueryVoterParams{ProposalID: 1, Voter: holderA}))
	require.NoError(t, fresh.Codec().UnmarshalJSON([]byte(bz), &voter))
	require.Equal(t, voting.VoterStateNay, voter.State)
	require.EqualValues(t, 31, voter.Weight)
}
