package voting

import (
	sdk "github.com/bnb-chain/tokenvote/types"
	"github.com/bnb-chain/tokenvote/x/acl"
)

// IsForwarder reports that the engine accepts forwarded scripts.
func (k Keeper) IsForwarder() bool {
	return true
}

// CanForward reports whether sender may wrap a script in a new proposal.
func (k Keeper) CanForward(ctx sdk.Context, sender sdk.AccAddress) bool {
	return k.gate.HasCapability(ctx, sender, acl.CapCreateProposal)
}

// Forward opens a proposal for script on behalf of sender, with sender voting
// yea and the script executing at once if that already decides it.
func (k Keeper) Forward(ctx sdk.Context, sender sdk.AccAddress, script Script) (int64, sdk.Error) {
	if !k.CanForward(ctx, sender) {
		return 0, acl.ErrMissingCapability(sender, acl.CapCreateProposal)
	}
	return k.NewVote(ctx, sender, script, "", true, true)
}
