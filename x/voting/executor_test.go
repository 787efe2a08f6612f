package voting

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	sdk "github.com/bnb-chain/tokenvote/types"
	"github.com/bnb-chain/tokenvote/x/token"
)

func TestExecutorEmptyScript(t *testing.T) {
	input := createPopulation(t)
	executor := NewExecutor(input.Router)

	failedAt, err := executor.Run(input.Ctx, nil)
	require.NoError(t, err)
	require.Equal(t, -1, failedAt)
	require.Empty(t, input.RecordedWrites())
}

func TestExecutorRunsInOrder(t *testing.T) {
	input := createPopulation(t)
	executor := NewExecutor(input.Router)

	script := Script{RecordSet("c"), RecordSet("a"), RecordSet("b")}
	_, err := executor.Run(input.Ctx, script)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, input.RecordedWrites())

	var order []string
	for _, event := range input.Ctx.EventManager().Events().OfType("record") {
		v, _ := event.GetAttribute("key")
		order = append(order, v)
	}
	require.Equal(t, []string{"c", "a", "b"}, order)
}

func TestExecutorAtomicAtEveryPosition(t *testing.T) {
	const n = 5
	failures := map[string]Action{
		"error":   RecordFail(),
		"panic":   RecordPanic(),
		"unknown": NewAction("nowhere", nil),
	}
	for name, failing := range failures {
		for pos := 0; pos < n; pos++ {
			t.Run(fmt.Sprintf("%s_at_%d", name, pos), func(t *testing.T) {
				input := createPopulation(t)
				executor := NewExecutor(input.Router)

				script := make(Script, 0, n)
				for i := 0; i < n; i++ {
					if i == pos {
						script = append(script, failing)
						continue
					}
					script = append(script, RecordSet(fmt.Sprintf("k%d", i)))
				}

				failedAt, err := executor.Run(input.Ctx, script)
				require.NotNil(t, err)
				require.Equal(t, pos, failedAt)
				require.Empty(t, input.RecordedWrites())
				require.Empty(t, input.Ctx.EventManager().Events().OfType("record"))
			})
		}
	}
}

func TestExecutorFailureThroughKeeper(t *testing.T) {
	for pos := 0; pos < 3; pos++ {
		input := createPopulation(t)
		keeper := input.Keeper

		script := Script{RecordSet("a"), RecordSet("b"), RecordSet("c")}
		script[pos] = RecordFail()

		id, err := keeper.NewVote(input.Ctx, Addrs[0], script, "", false, false)
		require.NoError(t, err)
		require.NoError(t, keeper.Vote(input.Ctx, id, Addrs[2], true, false))

		err = keeper.ExecuteVote(input.Ctx, id)
		require.Equal(t, CodeExecutionFailed, err.Code())
		require.Contains(t, err.ABCILog(), fmt.Sprintf("action %d failed", pos))
		require.Empty(t, input.RecordedWrites())
		require.Empty(t, input.Ctx.EventManager().Events().OfType(EventTypeExecuted))

		proposal, _ := keeper.GetVote(input.Ctx, id)
		require.False(t, proposal.Executed)
	}
}

func TestExecutorTouchesRealModules(t *testing.T) {
	input := createPopulation(t)
	executor := NewExecutor(input.Router)
	holder := Addrs[0]

	// the burn fails, so the mint before it must not stick
	script := Script{
		NewAction(token.ActionTarget, token.EncodeAction(token.MintAction{To: holder, Amount: 5})),
		NewAction(token.ActionTarget, token.EncodeAction(token.BurnAction{From: holder, Amount: 1000})),
	}
	failedAt, err := executor.Run(input.Ctx, script)
	require.NotNil(t, err)
	require.Equal(t, 1, failedAt)
	require.EqualValues(t, 19, input.TokenKeeper.BalanceOf(input.Ctx, holder))
	require.EqualValues(t, 100, input.TokenKeeper.TotalSupply(input.Ctx))
}

func TestRouter(t *testing.T) {
	router := NewRouter()
	noop := func(ctx sdk.Context, payload []byte) sdk.Error { return nil }

	router.AddRoute("a", noop)
	require.True(t, router.HasRoute("a"))
	require.NotNil(t, router.Route("a"))
	require.Nil(t, router.Route("b"))

	require.Panics(t, func() { router.AddRoute("a", noop) })
	require.Panics(t, func() { router.AddRoute("bad target", noop) })

	router.Seal()
	require.Panics(t, func() { router.AddRoute("c", noop) })
}
