package acl

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
	cdc.RegisterConcrete(MsgGrant{}, "tokenvote/acl/MsgGrant", nil)
	cdc.RegisterConcrete(MsgRevoke{}, "tokenvote/acl/MsgRevoke", nil)

	cdc.RegisterInterface((*Action)(nil), nil)
	cdc.RegisterConcrete(GrantAction{}, "tokenvote/acl/GrantAction", nil)
	cdc.RegisterConcrete(RevokeAction{}, "tokenvote/acl/RevokeAction", nil)
}
