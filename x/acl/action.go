package acl

import (
	"fmt"

	sdk "github.com/bnb-chain/tokenvote/types"
)

// ActionTarget is the target name under which governance scripts reach this module.
const ActionTarget = "acl"

// Action is a payload a governance script can carry for the acl module.
type Action interface {
	ValidateBasic() sdk.Error
}

// GrantAction grants a capability once the carrying proposal executes.
type GrantAction struct {
	Grantee    sdk.AccAddress `json:"grantee"`
	Capability Capability     `json:"capability"`
}

func (a GrantAction) ValidateBasic() sdk.Error {
	if a.Grantee.Empty() {
		return sdk.ErrInvalidAddress("grantee is empty")
	}
	if !a.Capability.Valid() {
		return ErrInvalidCapability(DefaultCodespace, a.Capability)
	}
	return nil
}

// RevokeAction revokes a capability once the carrying proposal executes.
type RevokeAction struct {
	Revokee    sdk.AccAddress `json:"revokee"`
	Capability Capability     `json:"capability"`
}

func (a RevokeAction) ValidateBasic() sdk.Error {
	if a.Revokee.Empty() {
		return sdk.ErrInvalidAddress("revokee is empty")
	}
	if !a.Capability.Valid() {
		return ErrInvalidCapability(DefaultCodespace, a.Capability)
	}
	return nil
}

// EncodeAction serializes an action into a script payload.
func EncodeAction(a Action) []byte {
	return msgCdc.MustMarshalBinaryLengthPrefixed(a)
}

// NewActionHandler decodes acl payloads and applies them. Scripts only run
// after a vote has been decided, so no caller capability is checked here.
func NewActionHandler(k Keeper) func(ctx sdk.Context, payload []byte) sdk.Error {
	return func(ctx sdk.Context, payload []byte) sdk.Error {
		var action Action
		if err := msgCdc.UnmarshalBinaryLengthPrefixed(payload, &action); err != nil {
			return ErrInvalidAction(k.codespace, fmt.Sprintf("cannot decode acl action: %v", err))
		}
		if err := action.ValidateBasic(); err != nil {
			return err
		}
		switch a := action.(type) {
		case GrantAction:
			return k.Grant(ctx, a.Grantee, a.Capability)
		case RevokeAction:
			return k.Revoke(ctx, a.Revokee, a.Capability)
		default:
			return ErrInvalidAction(k.codespace, fmt.Sprintf("unrecognized acl action %T", action))
		}
	}
}
