package token

import (
	"fmt"

	sdk "github.com/bnb-chain/tokenvote/types"
)

// ActionTarget is the target name under which governance scripts reach this module.
const ActionTarget = "token"

// Action is a payload a governance script can carry for the token module.
type Action interface {
	ValidateBasic() sdk.Error
}

// MintAction mints once the carrying proposal executes.
type MintAction struct {
	To     sdk.AccAddress `json:"to"`
	Amount int64          `json:"amount"`
}

func (a MintAction) ValidateBasic() sdk.Error {
	if a.To.Empty() {
		return sdk.ErrInvalidAddress("recipient is empty")
	}
	if a.Amount <= 0 {
		return ErrNonPositiveAmount(a.Amount)
	}
	return nil
}

// BurnAction burns from a holder once the carrying proposal executes.
type BurnAction struct {
	From   sdk.AccAddress `json:"from"`
	Amount int64          `json:"amount"`
}

func (a BurnAction) ValidateBasic() sdk.Error {
	if a.From.Empty() {
		return sdk.ErrInvalidAddress("holder is empty")
	}
	if a.Amount <= 0 {
		return ErrNonPositiveAmount(a.Amount)
	}
	return nil
}

// EncodeAction serializes an action into a script payload.
func EncodeAction(a Action) []byte {
	return msgCdc.MustMarshalBinaryLengthPrefixed(a)
}

// NewActionHandler decodes token payloads and applies them.
func NewActionHandler(k Keeper) func(ctx sdk.Context, payload []byte) sdk.Error {
	return func(ctx sdk.Context, payload []byte) sdk.Error {
		var action Action
		if err := msgCdc.UnmarshalBinaryLengthPrefixed(payload, &action); err != nil {
			return ErrInvalidAction(k.codespace, fmt.Sprintf("cannot decode token action: %v", err))
		}
		if err := action.ValidateBasic(); err != nil {
			return err
		}
		switch a := action.(type) {
		case MintAction:
			return k.Mint(ctx, a.To, a.Amount)
		case BurnAction:
			return k.Burn(ctx, a.From, a.Amount)
		default:
			return ErrInvalidAction(k.codespace, fmt.Sprintf("unrecognized token action %T", action))
		}
	}
}
