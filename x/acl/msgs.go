package acl

import (
	sdk "github.com/bnb-chain/tokenvote/types"
)

const (
	TypeMsgGrant  = "grant"
	TypeMsgRevoke = "revoke"
)

var _, _ sdk.Msg = MsgGrant{}, MsgRevoke{}

// MsgGrant gives a capability to an address. The granter must hold ManageACL.
type MsgGrant struct {
	Granter    sdk.AccAddress `json:"granter"`
	Grantee    sdk.AccAddress `json:"grantee"`
	Capability Capability     `json:"capability"`
}

func NewMsgGrant(granter, grantee sdk.AccAddress, cap Capability) MsgGrant {
	return MsgGrant{
		Granter:    granter,
		Grantee:    grantee,
		Capability: cap,
	}
}

func (msg MsgGrant) Route() string                { return RouterKey }
func (msg MsgGrant) Type() string                 { return TypeMsgGrant }
func (msg MsgGrant) GetSigners() []sdk.AccAddress { return []sdk.AccAddress{msg.Granter} }
func (msg MsgGrant) GetSignBytes() []byte {
	return sdk.MustSortJSON(msgCdc.MustMarshalJSON(msg))
}
func (msg MsgGrant) ValidateBasic() sdk.Error {
	return validateGrant(msg.Granter, msg.Grantee, msg.Capability)
}

// MsgRevoke takes a capability away from an address. The revoker must hold ManageACL.
type MsgRevoke struct {
	Revoker    sdk.AccAddress `json:"revoker"`
	Revokee    sdk.AccAddress `json:"revokee"`
	Capability Capability     `json:"capability"`
}

func NewMsgRevoke(revoker, revokee sdk.AccAddress, cap Capability) MsgRevoke {
	return MsgRevoke{
		Revoker:    revoker,
		Revokee:    revokee,
		Capability: cap,
	}
}

func (msg MsgRevoke) Route() string                { return RouterKey }
func (msg MsgRevoke) Type() string                 { return TypeMsgRevoke }
func (msg MsgRevoke) GetSigners() []sdk.AccAddress { return []sdk.AccAddress{msg.Revoker} }
func (msg MsgRevoke) GetSignBytes() []byte {
	return sdk.MustSortJSON(msgCdc.MustMarshalJSON(msg))
}
func (msg MsgRevoke) ValidateBasic() sdk.Error {
	return validateGrant(msg.Revoker, msg.Revokee, msg.Capability)
}

func validateGrant(signer, target sdk.AccAddress, cap Capability) sdk.Error {
	if signer.Empty() {
		return sdk.ErrInvalidAddress("signer is empty")
	}
	if target.Empty() {
		return sdk.ErrInvalidAddress("target address is empty")
	}
	if !cap.Valid() {
		return ErrInvalidCapability(DefaultCodespace, cap)
	}
	return nil
}
