package voting

import (
	sdk "github.com/bnb-chain/tokenvote/types"
)

// NewHandler handles all "voting" type messages.
func NewHandler(keeper Keeper) sdk.Handler {
	return func(ctx sdk.Context, msg sdk.Msg) sdk.Result {
		ctx = ctx.WithEventManager(sdk.NewEventManager())
		switch msg := msg.(type) {
		case MsgConfigure:
			return handleMsgConfigure(ctx, keeper, msg)
		case MsgNewVote:
			return handleMsgNewVote(ctx, keeper, msg)
		case MsgVote:
			return handleMsgVote(ctx, keeper, msg)
		case MsgExecute:
			return handleMsgExecute(ctx, keeper, msg)
		case MsgChangeQuorum:
			return handleMsgChangeQuorum(ctx, keeper, msg)
		case MsgChangeSupport:
			return handleMsgChangeSupport(ctx, keeper, msg)
		case MsgForward:
			return handleMsgForward(ctx, keeper, msg)
		default:
			errMsg := "Unrecognized voting msg type"
			return sdk.ErrUnknownRequest(errMsg).Result()
		}
	}
}

func handleMsgConfigure(ctx sdk.Context, keeper Keeper, msg MsgConfigure) sdk.Result {
	if err := keeper.Configure(ctx, msg.Sender, msg.Config); err != nil {
		return err.Result()
	}
	return sdk.Result{Events: ctx.EventManager().Events()}
}

func handleMsgNewVote(ctx sdk.Context, keeper Keeper, msg MsgNewVote) sdk.Result {
	id, err := keeper.NewVote(ctx, msg.Creator, msg.Script, msg.Metadata, msg.CastVote, msg.ExecuteIfDecided)
	if err != nil {
		return err.Result()
	}
	return sdk.Result{
		Data:   sdk.Int64ToBigEndian(id),
		Events: ctx.EventManager().Events(),
	}
}

func handleMsgVote(ctx sdk.Context, keeper Keeper, msg MsgVote) sdk.Result {
	if err := keeper.Vote(ctx, msg.ProposalID, msg.Voter, msg.Supports, msg.ExecuteIfDecided); err != nil {
		return err.Result()
	}
	return sdk.Result{Events: ctx.EventManager().Events()}
}

func handleMsgExecute(ctx sdk.Context, keeper Keeper, msg MsgExecute) sdk.Result {
	if err := keeper.ExecuteVote(ctx, msg.ProposalID); err != nil {
		return err.Result()
	}
	return sdk.Result{Events: ctx.EventManager().Events()}
}

func handleMsgChangeQuorum(ctx sdk.Context, keeper Keeper, msg MsgChangeQuorum) sdk.Result {
	if err := keeper.ChangeMinAcceptQuorumPct(ctx, msg.Sender, msg.Pct); err != nil {
		return err.Result()
	}
	return sdk.Result{Events: ctx.EventManager().Events()}
}

func handleMsgChangeSupport(ctx sdk.Context, keeper Keeper, msg MsgChangeSupport) sdk.Result {
	if err := keeper.ChangeSupportRequiredPct(ctx, msg.Sender, msg.Pct); err != nil {
		return err.Result()
	}
	return sdk.Result{Events: ctx.EventManager().Events()}
}

func handleMsgForward(ctx sdk.Context, keeper Keeper, msg MsgForward) sdk.Result {
	id, err := keeper.Forward(ctx, msg.Sender, msg.Script)
	if err != nil {
		return err.Result()
	}
	return sdk.Result{
		Data:   sdk.Int64ToBigEndian(id),
		Events: ctx.EventManager().Events(),
	}
}
