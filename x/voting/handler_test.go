package voting

import (
	"testing"

	"github.com/stretchr/testify/require"

	sdk "github.com/bnb-chain/tokenvote/types"
	"github.com/bnb-chain/tokenvote/x/acl"
)

func TestHandlerLifecycle(t *testing.T) {
	input := createPopulation(t)
	handler := NewHandler(input.Keeper)

	res := handler(input.Ctx, NewMsgNewVote(Addrs[0], Script{RecordSet("a")}, "upgrade", false, false))
	require.True(t, res.IsOK(), res.Log)
	id := sdk.BigEndianToInt64(res.Data)
	require.EqualValues(t, 1, id)
	require.Len(t, res.Events.OfType(EventTypeProposalCreated), 1)

	res = handler(input.Ctx, NewMsgVote(Addrs[1], id, true, false))
	require.True(t, res.IsOK(), res.Log)
	require.Len(t, res.Events.OfType(EventTypeVoteCast), 1)

	res = handler(input.Ctx, NewMsgExecute(Addrs[4], id))
	require.Equal(t, CodeNotDecided, res.Code)
	require.Equal(t, DefaultCodespace, res.Codespace)

	res = handler(input.Ctx, NewMsgVote(Addrs[2], id, true, true))
	require.True(t, res.IsOK(), res.Log)
	require.Len(t, res.Events.OfType(EventTypeExecuted), 1)
	require.Len(t, res.Events.OfType("record"), 1)

	res = handler(input.Ctx, NewMsgExecute(Addrs[4], id))
	require.Equal(t, CodeAlreadyExecuted, res.Code)
}

func TestHandlerConfigMessages(t *testing.T) {
	input := createPopulation(t)
	handler := NewHandler(input.Keeper)
	admin := Addrs[4]

	res := handler(input.Ctx, NewMsgConfigure(admin, testConfig()))
	require.Equal(t, sdk.CodeUnauthorized, res.Code)

	require.NoError(t, input.ACLKeeper.Grant(input.Ctx, admin, acl.CapConfigure))
	res = handler(input.Ctx, NewMsgConfigure(admin, testConfig()))
	require.Equal(t, CodeAlreadyConfigured, res.Code)

	require.NoError(t, input.ACLKeeper.Grant(input.Ctx, admin, acl.CapModifyQuorum))
	require.NoError(t, input.ACLKeeper.Grant(input.Ctx, admin, acl.CapModifySupport))

	res = handler(input.Ctx, NewMsgChangeQuorum(admin, PctBase/4))
	require.True(t, res.IsOK(), res.Log)
	require.Len(t, res.Events.OfType(EventTypeQuorumChanged), 1)

	res = handler(input.Ctx, NewMsgChangeSupport(admin, PctBase/5))
	require.Equal(t, CodeInvalidConfig, res.Code)

	res = handler(input.Ctx, NewMsgChangeSupport(admin, PctBase*2/3))
	require.True(t, res.IsOK(), res.Log)

	config, _ := input.Keeper.GetConfig(input.Ctx)
	require.Equal(t, NewGovernanceConfig(PctBase*2/3, PctBase/4, testHour), config)
}

func TestHandlerForward(t *testing.T) {
	input := createPopulation(t)
	handler := NewHandler(input.Keeper)

	res := handler(input.Ctx, NewMsgForward(Addrs[2], Script{RecordSet("a")}))
	require.True(t, res.IsOK(), res.Log)
	id := sdk.BigEndianToInt64(res.Data)
	proposal, _ := input.Keeper.GetVote(input.Ctx, id)
	require.True(t, proposal.Executed)

	res = handler(input.Ctx, NewMsgForward(Addrs[4], nil))
	require.Equal(t, sdk.CodeUnauthorized, res.Code)
}

func TestMsgValidateBasic(t *testing.T) {
	require.NoError(t, NewMsgNewVote(Addrs[0], nil, "", true, true).ValidateBasic())
	require.NotNil(t, NewMsgNewVote(nil, nil, "", true, true).ValidateBasic())
	require.NotNil(t, NewMsgNewVote(Addrs[0], Script{NewAction("", nil)}, "", true, true).ValidateBasic())

	require.NoError(t, NewMsgVote(Addrs[0], 1, true, false).ValidateBasic())
	require.NotNil(t, NewMsgVote(Addrs[0], 0, true, false).ValidateBasic())
	require.NotNil(t, NewMsgVote(nil, 1, true, false).ValidateBasic())

	require.NotNil(t, NewMsgChangeQuorum(Addrs[0], 0).ValidateBasic())
	require.NotNil(t, NewMsgChangeSupport(Addrs[0], PctBase+1).ValidateBasic())
	require.NotNil(t, NewMsgConfigure(Addrs[0], GovernanceConfig{}).ValidateBasic())

	msg := NewMsgVote(Addrs[0], 1, true, false)
	require.Equal(t, []sdk.AccAddress{Addrs[0]}, msg.GetSigners())
	require.NotEmpty(t, msg.GetSignBytes())
}

func TestUnknownMsg(t *testing.T) {
	input := createPopulation(t)
	res := NewHandler(input.Keeper)(input.Ctx, acl.NewMsgGrant(Addrs[0], Addrs[1], acl.CapMint))
	require.Equal(t, sdk.CodeUnknownRequest, res.Code)
}
