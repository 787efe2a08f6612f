package voting

import (
	"fmt"

	sdk "github.com/bnb-chain/tokenvote/types"
)

// voting message types
const (
	TypeMsgConfigure     = "configure"
	TypeMsgNewVote       = "new_vote"
	TypeMsgVote          = "vote"
	TypeMsgExecute       = "execute"
	TypeMsgChangeQuorum  = "change_quorum"
	TypeMsgChangeSupport = "change_support"
	TypeMsgForward       = "forward"

	MaxMetadataLength = 1024 * 16
)

var (
	_ sdk.Msg = MsgConfigure{}
	_ sdk.Msg = MsgNewVote{}
	_ sdk.Msg = MsgVote{}
	_ sdk.Msg = MsgExecute{}
	_ sdk.Msg = MsgChangeQuorum{}
	_ sdk.Msg = MsgChangeSupport{}
	_ sdk.Msg = MsgForward{}
)

func mustSignBytes(msg sdk.Msg) []byte {
	return sdk.MustSortJSON(msgCdc.MustMarshalJSON(msg))
}

//-----------------------------------------------------------
// MsgConfigure
type MsgConfigure struct {
	Sender sdk.AccAddress   `json:"sender"`
	Config GovernanceConfig `json:"config"`
}

func NewMsgConfigure(sender sdk.AccAddress, config GovernanceConfig) MsgConfigure {
	return MsgConfigure{Sender: sender, Config: config}
}

func (msg MsgConfigure) Route() string                { return RouterKey }
func (msg MsgConfigure) Type() string                 { return TypeMsgConfigure }
func (msg MsgConfigure) GetSigners() []sdk.AccAddress { return []sdk.AccAddress{msg.Sender} }
func (msg MsgConfigure) GetSignBytes() []byte         { return mustSignBytes(msg) }
func (msg MsgConfigure) ValidateBasic() sdk.Error {
	if msg.Sender.Empty() {
		return sdk.ErrInvalidAddress("sender is empty")
	}
	return msg.Config.Validate()
}

//-----------------------------------------------------------
// MsgNewVote
type MsgNewVote struct {
	Creator          sdk.AccAddress `json:"creator"`
	Script           Script         `json:"script"`
	Metadata         string         `json:"metadata"`
	CastVote         bool           `json:"cast_vote"`
	ExecuteIfDecided bool           `json:"execute_if_decided"`
}

func NewMsgNewVote(creator sdk.AccAddress, script Script, metadata string, castVote, executeIfDecided bool) MsgNewVote {
	return MsgNewVote{
		Creator:          creator,
		Script:           script,
		Metadata:         metadata,
		CastVote:         castVote,
		ExecuteIfDecided: executeIfDecided,
	}
}

func (msg MsgNewVote) Route() string                { return RouterKey }
func (msg MsgNewVote) Type() string                 { return TypeMsgNewVote }
func (msg MsgNewVote) GetSigners() []sdk.AccAddress { return []sdk.AccAddress{msg.Creator} }
func (msg MsgNewVote) GetSignBytes() []byte         { return mustSignBytes(msg) }
func (msg MsgNewVote) ValidateBasic() sdk.Error {
	if msg.Creator.Empty() {
		return sdk.ErrInvalidAddress("creator is empty")
	}
	if len(msg.Metadata) > MaxMetadataLength {
		return sdk.ErrUnknownRequest(fmt.Sprintf("metadata is longer than %d bytes", MaxMetadataLength))
	}
	return msg.Script.ValidateBasic()
}

//-----------------------------------------------------------
// MsgVote
type MsgVote struct {
	ProposalID       int64          `json:"proposal_id"`
	Voter            sdk.AccAddress `json:"voter"`
	Supports         bool           `json:"supports"`
	ExecuteIfDecided bool           `json:"execute_if_decided"`
}

func NewMsgVote(voter sdk.AccAddress, proposalID int64, supports, executeIfDecided bool) MsgVote {
	return MsgVote{
		ProposalID:       proposalID,
		Voter:            voter,
		Supports:         supports,
		ExecuteIfDecided: executeIfDecided,
	}
}

func (msg MsgVote) Route() string                { return RouterKey }
func (msg MsgVote) Type() string                 { return TypeMsgVote }
func (msg MsgVote) GetSigners() []sdk.AccAddress { return []sdk.AccAddress{msg.Voter} }
func (msg MsgVote) GetSignBytes() []byte         { return mustSignBytes(msg) }
func (msg MsgVote) ValidateBasic() sdk.Error {
	if msg.Voter.Empty() {
		return sdk.ErrInvalidAddress("voter is empty")
	}
	if msg.ProposalID <= 0 {
		return ErrNoSuchProposal(DefaultCodespace, msg.ProposalID)
	}
	return nil
}

//-----------------------------------------------------------
// MsgExecute
type MsgExecute struct {
	Sender     sdk.AccAddress `json:"sender"`
	ProposalID int64          `json:"proposal_id"`
}

func NewMsgExecute(sender sdk.AccAddress, proposalID int64) MsgExecute {
	return MsgExecute{Sender: sender, ProposalID: proposalID}
}

func (msg MsgExecute) Route() string                { return RouterKey }
func (msg MsgExecute) Type() string                 { return TypeMsgExecute }
func (msg MsgExecute) GetSigners() []sdk.AccAddress { return []sdk.AccAddress{msg.Sender} }
func (msg MsgExecute) GetSignBytes() []byte         { return mustSignBytes(msg) }
func (msg MsgExecute) ValidateBasic() sdk.Error {
	if msg.Sender.Empty() {
		return sdk.ErrInvalidAddress("sender is empty")
	}
	if msg.ProposalID <= 0 {
		return ErrNoSuchProposal(DefaultCodespace, msg.ProposalID)
	}
	return nil
}

//-----------------------------------------------------------
// MsgChangeQuorum
type MsgChangeQuorum struct {
	Sender sdk.AccAddress `json:"sender"`
	Pct    int64          `json:"pct"`
}

func NewMsgChangeQuorum(sender sdk.AccAddress, pct int64) MsgChangeQuorum {
	return MsgChangeQuorum{Sender: sender, Pct: pct}
}

func (msg MsgChangeQuorum) Route() string                { return RouterKey }
func (msg MsgChangeQuorum) Type() string                 { return TypeMsgChangeQuorum }
func (msg MsgChangeQuorum) GetSigners() []sdk.AccAddress { return []sdk.AccAddress{msg.Sender} }
func (msg MsgChangeQuorum) GetSignBytes() []byte         { return mustSignBytes(msg) }
func (msg MsgChangeQuorum) ValidateBasic() sdk.Error {
	if msg.Sender.Empty() {
		return sdk.ErrInvalidAddress("sender is empty")
	}
	if msg.Pct <= 0 || msg.Pct > PctBase {
		return ErrInvalidConfig(DefaultCodespace, fmt.Sprintf("quorum %d out of range", msg.Pct))
	}
	return nil
}

//-----------------------------------------------------------
// MsgChangeSupport
type MsgChangeSupport struct {
	Sender sdk.AccAddress `json:"sender"`
	Pct    int64          `json:"pct"`
}

func NewMsgChangeSupport(sender sdk.AccAddress, pct int64) MsgChangeSupport {
	return MsgChangeSupport{Sender: sender, Pct: pct}
}

func (msg MsgChangeSupport) Route() string                { return RouterKey }
func (msg MsgChangeSupport) Type() string                 { return TypeMsgChangeSupport }
func (msg MsgChangeSupport) GetSigners() []sdk.AccAddress { return []sdk.AccAddress{msg.Sender} }
func (msg MsgChangeSupport) GetSignBytes() []byte         { return mustSignBytes(msg) }
func (msg MsgChangeSupport) ValidateBasic() sdk.Error {
	if msg.Sender.Empty() {
		return sdk.ErrInvalidAddress("sender is empty")
	}
	if msg.Pct <= 0 || msg.Pct > PctBase {
		return ErrInvalidConfig(DefaultCodespace, fmt.Sprintf("support %d out of range", msg.Pct))
	}
	return nil
}

//-----------------------------------------------------------
// MsgForward
type MsgForward struct {
	Sender sdk.AccAddress `json:"sender"`
	Script Script         `json:"script"`
}

func NewMsgForward(sender sdk.AccAddress, script Script) MsgForward {
	return MsgForward{Sender: sender, Script: script}
}

func (msg MsgForward) Route() string                { return RouterKey }
func (msg MsgForward) Type() string                 { return TypeMsgForward }
func (msg MsgForward) GetSigners() []sdk.AccAddress { return []sdk.AccAddress{msg.Sender} }
func (msg MsgForward) GetSignBytes() []byte         { return mustSignBytes(msg) }
func (msg MsgForward) ValidateBasic() sdk.Error {
	if msg.Sender.Empty() {
		return sdk.ErrInvalidAddress("sender is empty")
	}
	return msg.Script.ValidateBasic()
}
