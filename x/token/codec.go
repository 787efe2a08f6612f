package token

import (
	"github.com/bnb-chain/tokenvote/codec"
)

// generic sealed codec to be used throughout module
var msgCdc *codec.Codec

func init() {
	cdc := codec.New()
	RegisterCodec(cdc)
	msgCdc = cdc.Seal()
}

// Register concrete types on codec codec
func RegisterCodec(cdc *codec.Codec) {
	cdc.RegisterConcrete(MsgMint{}, "tokenvote/token/MsgMint", nil)
	cdc.RegisterConcrete(MsgTransfer{}, "tokenvote/token/MsgTransfer", nil)

	cdc.RegisterInterface((*Action)(nil), nil)
	cdc.RegisterConcrete(MintAction{}, "tokenvote/token/MintAction", nil)
	cdc.RegisterConcrete(BurnAction{}, "tokenvote/token/BurnAction", nil)
}
