package token

import (
	sdk "github.com/bnb-chain/tokenvote/types"
)

const (
	TypeMsgMint     = "mint"
	TypeMsgTransfer = "transfer"
)

var _, _ sdk.Msg = MsgMint{}, MsgTransfer{}

// MsgMint creates new tokens. The minter must hold the Mint capability.
type MsgMint struct {
	Minter sdk.AccAddress `json:"minter"`
	To     sdk.AccAddress `json:"to"`
	Amount int64          `json:"amount"`
}

func NewMsgMint(minter, to sdk.AccAddress, amount int64) MsgMint {
	return MsgMint{Minter: minter, To: to, Amount: amount}
}

func (msg MsgMint) Route() string                { return RouterKey }
func (msg MsgMint) Type() string                 { return TypeMsgMint }
func (msg MsgMint) GetSigners() []sdk.AccAddress { return []sdk.AccAddress{msg.Minter} }
func (msg MsgMint) GetSignBytes() []byte {
	return sdk.MustSortJSON(msgCdc.MustMarshalJSON(msg))
}
func (msg MsgMint) ValidateBasic() sdk.Error {
	if msg.Minter.Empty() {
		return sdk.ErrInvalidAddress("minter is empty")
	}
	if msg.To.Empty() {
		return sdk.ErrInvalidAddress("recipient is empty")
	}
	if msg.Amount <= 0 {
		return ErrNonPositiveAmount(msg.Amount)
	}
	return nil
}

// MsgTransfer moves tokens between holders.
type MsgTransfer struct {
	From   sdk.AccAddress `json:"from"`
	To     sdk.AccAddress `json:"to"`
	Amount int64          `json:"amount"`
}

func NewMsgTransfer(from, to sdk.AccAddress, amount int64) MsgTransfer {
	return MsgTransfer{From: from, To: to, Amount: amount}
}

func (msg MsgTransfer) Route() string                { return RouterKey }
func (msg MsgTransfer) Type() string                 { return TypeMsgTransfer }
func (msg MsgTransfer) GetSigners() []sdk.AccAddress { return []sdk.AccAddress{msg.From} }
func (msg MsgTransfer) GetSignBytes() []byte {
	return sdk.MustSortJSON(msgCdc.MustMarshalJSON(msg))
}
func (msg MsgTransfer) ValidateBasic() sdk.Error {
	if msg.From.Empty() {
		return sdk.ErrInvalidAddress("sender is empty")
	}
	if msg.To.Empty() {
		return sdk.ErrInvalidAddress("recipient is empty")
	}
	if msg.Amount <= 0 {
		return ErrNonPositiveAmount(msg.Amount)
	}
	return nil
}
