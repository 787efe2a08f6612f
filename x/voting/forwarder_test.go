package voting

import (
	"testing"

	"github.com/stretchr/testify/require"

	sdk "github.com/bnb-chain/tokenvote/types"
)

func TestForward(t *testing.T) {
	input := createPopulation(t)
	keeper := input.Keeper
	require.True(t, keeper.IsForwarder())

	outsider := Addrs[4]
	require.False(t, keeper.CanForward(input.Ctx, outsider))
	_, err := keeper.Forward(input.Ctx, outsider, Script{RecordSet("x")})
	require.Equal(t, sdk.CodeUnauthorized, err.Code())
	require.EqualValues(t, 0, keeper.LastProposalID(input.Ctx))

	// a small holder opens the vote and backs it, nothing runs yet
	require.True(t, keeper.CanForward(input.Ctx, Addrs[0]))
	id, err := keeper.Forward(input.Ctx, Addrs[0], Script{RecordSet("a")})
	require.NoError(t, err)
	proposal, _ := keeper.GetVote(input.Ctx, id)
	require.EqualValues(t, 19, proposal.Yea)
	require.Equal(t, "", proposal.Metadata)
	require.False(t, proposal.Executed)
	require.Empty(t, input.RecordedWrites())

	// the majority holder decides and executes in one call
	id, err = keeper.Forward(input.Ctx, Addrs[2], Script{RecordSet("b")})
	require.NoError(t, err)
	proposal, _ = keeper.GetVote(input.Ctx, id)
	require.True(t, proposal.Executed)
	require.Equal(t, []string{"b"}, input.RecordedWrites())
}
