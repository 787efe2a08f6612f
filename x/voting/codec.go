package voting

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
	cdc.RegisterConcrete(MsgConfigure{}, "tokenvote/voting/MsgConfigure", nil)
	cdc.RegisterConcrete(MsgNewVote{}, "tokenvote/voting/MsgNewVote", nil)
	cdc.RegisterConcrete(MsgVote{}, "tokenvote/voting/MsgVote", nil)
	cdc.RegisterConcrete(MsgExecute{}, "tokenvote/voting/MsgExecute", nil)
	cdc.RegisterConcrete(MsgChangeQuorum{}, "tokenvote/voting/MsgChangeQuorum", nil)
	cdc.RegisterConcrete(MsgChangeSupport{}, "tokenvote/voting/MsgChangeSupport", nil)
	cdc.RegisterConcrete(MsgForward{}, "tokenvote/voting/MsgForward", nil)

	cdc.RegisterInterface((*GovAction)(nil), nil)
	cdc.RegisterConcrete(ChangeQuorumAction{}, "tokenvote/voting/ChangeQuorumAction", nil)
	cdc.RegisterConcrete(ChangeSupportAction{}, "tokenvote/voting/ChangeSupportAction", nil)
}
