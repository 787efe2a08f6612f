package acl

import (
	sdk "github.com/bnb-chain/tokenvote/types"
)

// NewHandler handles all "acl" type messages.
func NewHandler(k Keeper) sdk.Handler {
	return func(ctx sdk.Context, msg sdk.Msg) sdk.Result {
		ctx = ctx.WithEventManager(sdk.NewEventManager())
		switch msg := msg.(type) {
		case MsgGrant:
			return handleMsgGrant(ctx, k, msg)
		case MsgRevoke:
			return handleMsgRevoke(ctx, k, msg)
		default:
			errMsg := "Unrecognized acl msg type"
			return sdk.ErrUnknownRequest(errMsg).Result()
		}
	}
}

func handleMsgGrant(ctx sdk.Context, k Keeper, msg MsgGrant) sdk.Result {
	if !k.HasCapability(ctx, msg.Granter, CapManageACL) {
		return ErrMissingCapability(msg.Granter, CapManageACL).Result()
	}
	if err := k.Grant(ctx, msg.Grantee, msg.Capability); err != nil {
		return err.Result()
	}
	return sdk.Result{Events: ctx.EventManager().Events()}
}

func handleMsgRevoke(ctx sdk.Context, k Keeper, msg MsgRevoke) sdk.Result {
	if !k.HasCapability(ctx, msg.Revoker, CapManageACL) {
		return ErrMissingCapability(msg.Revoker, CapManageACL).Result()
	}
	if err := k.Revoke(ctx, msg.Revokee, msg.Capability); err != nil {
		return err.Result()
	}
	return sdk.Result{Events: ctx.EventManager().Events()}
}
