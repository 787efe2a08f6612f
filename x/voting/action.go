package voting

import (
	"fmt"

	sdk "github.com/bnb-chain/tokenvote/types"
)

// ActionTarget is the target name under which governance scripts reach the
// voting engine itself.
const ActionTarget = "voting"

// GovAction is a payload a governance script can carry for the voting engine.
type GovAction interface {
	ValidateBasic() sdk.Error
}

// ChangeQuorumAction sets the min accept quorum once the carrying proposal executes.
type ChangeQuorumAction struct {
	Pct int64 `json:"pct"`
}

func (a ChangeQuorumAction) ValidateBasic() sdk.Error {
	if a.Pct <= 0 || a.Pct > PctBase {
		return ErrInvalidConfig(DefaultCodespace, fmt.Sprintf("quorum %d out of range", a.Pct))
	}
	return nil
}

// ChangeSupportAction sets the required support once the carrying proposal executes.
type ChangeSupportAction struct {
	Pct int64 `json:"pct"`
}

func (a ChangeSupportAction) ValidateBasic() sdk.Error {
	if a.Pct <= 0 || a.Pct > PctBase {
		return ErrInvalidConfig(DefaultCodespace, fmt.Sprintf("support %d out of range", a.Pct))
	}
	return nil
}

// EncodeAction serializes an action into a script payload.
func EncodeAction(a GovAction) []byte {
	return msgCdc.MustMarshalBinaryLengthPrefixed(a)
}

// NewActionHandler lets executed proposals change the engine config. The
// proposal itself is the authorization, so no capability is checked.
func NewActionHandler(k Keeper) ActionHandler {
	return func(ctx sdk.Context, payload []byte) sdk.Error {
		var action GovAction
		if err := msgCdc.UnmarshalBinaryLengthPrefixed(payload, &action); err != nil {
			return ErrInvalidAction(k.codespace, fmt.Sprintf("cannot decode voting action: %v", err))
		}
		if err := action.ValidateBasic(); err != nil {
			return err
		}
		switch a := action.(type) {
		case ChangeQuorumAction:
			return k.changeMinAcceptQuorumPct(ctx, a.Pct)
		case ChangeSupportAction:
			return k.changeSupportRequiredPct(ctx, a.Pct)
		default:
			return ErrInvalidAction(k.codespace, fmt.Sprintf("unrecognized voting action %T", action))
		}
	}
}
