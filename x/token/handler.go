package token

import (
	sdk "github.com/bnb-chain/tokenvote/types"
	"github.com/bnb-chain/tokenvote/x/acl"
)

// NewHandler handles all "token" type messages.
func NewHandler(k Keeper, gate CapabilityGate) sdk.Handler {
	return func(ctx sdk.Context, msg sdk.Msg) sdk.Result {
		ctx = ctx.WithEventManager(sdk.NewEventManager())
		switch msg := msg.(type) {
		case MsgMint:
			return handleMsgMint(ctx, k, gate, msg)
		case MsgTransfer:
			return handleMsgTransfer(ctx, k, msg)
		default:
			errMsg := "Unrecognized token msg type"
			return sdk.ErrUnknownRequest(errMsg).Result()
		}
	}
}

func handleMsgMint(ctx sdk.Context, k Keeper, gate CapabilityGate, msg MsgMint) sdk.Result {
	if !gate.HasCapability(ctx, msg.Minter, acl.CapMint) {
		return acl.ErrMissingCapability(msg.Minter, acl.CapMint).Result()
	}
	if err := k.Mint(ctx, msg.To, msg.Amount); err != nil {
		return err.Result()
	}
	return sdk.Result{Events: ctx.EventManager().Events()}
}

func handleMsgTransfer(ctx sdk.Context, k Keeper, msg MsgTransfer) sdk.Result {
	if err := k.Transfer(ctx, msg.From, msg.To, msg.Amount); err != nil {
		return err.Result()
	}
	return sdk.Result{Events: ctx.EventManager().Events()}
}
