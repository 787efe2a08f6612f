package voting

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	sdk "github.com/bnb-chain/tokenvote/types"
)

// Action is one step of a script: a payload addressed to a registered target.
type Action struct {
	Target  string `json:"target"`
	Payload []byte `json:"payload"`
}

func NewAction(target string, payload []byte) Action {
	return Action{Target: target, Payload: payload}
}

func (a Action) String() string {
	return fmt.Sprintf("%s(%X)", a.Target, a.Payload)
}

// ScriptAction is a typed action as written in a script file, before it is
// encoded into the payload of its target. Codecs that read script files
// register it as an interface next to every module's action types.
type ScriptAction interface {
	ValidateBasic() sdk.Error
}

// Script is the ordered list of actions a proposal executes once decided.
type Script []Action

// ValidateBasic checks that every action names a target.
func (s Script) ValidateBasic() sdk.Error {
	for i, a := range s {
		if strings.TrimSpace(a.Target) == "" {
			return ErrInvalidScript(DefaultCodespace, fmt.Sprintf("action %d has no target", i))
		}
	}
	return nil
}

// VoterState is the ballot an address has on record for a proposal.
type VoterState byte

const (
	VoterStateAbsent VoterState = 0x00
	VoterStateYea    VoterState = 0x01
	VoterStateNay    VoterState = 0x02
)

func VoterStateFromSupport(supports bool) VoterState {
	if supports {
		return VoterStateYea
	}
	return VoterStateNay
}

func (vs VoterState) String() string {
	switch vs {
	case VoterStateYea:
		return "Yea"
	case VoterStateNay:
		return "Nay"
	default:
		return "Absent"
	}
}

func (vs VoterState) MarshalJSON() ([]byte, error) {
	return json.Marshal(vs.String())
}

func (vs *VoterState) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "Yea":
		*vs = VoterStateYea
	case "Nay":
		*vs = VoterStateNay
	case "Absent", "":
		*vs = VoterStateAbsent
	default:
		return fmt.Errorf("'%s' is not a valid voter state", s)
	}
	return nil
}

// Proposal is a vote together with the script it executes.
type Proposal struct {
	ID                 int64          `json:"id"`
	Creator            sdk.AccAddress `json:"creator"`
	OpenedAt           time.Time      `json:"opened_at"`      // block time of the opening block
	SnapshotPoint      int64          `json:"snapshot_point"` // weights are read at this committed height
	SupportRequiredPct int64          `json:"support_required_pct"`
	MinAcceptQuorumPct int64          `json:"min_accept_quorum_pct"`
	TotalVotingPower   int64          `json:"total_voting_power"`
	Yea                int64          `json:"yea"`
	Nay                int64          `json:"nay"`
	Executed           bool           `json:"executed"`
	SnapshotImported   bool           `json:"snapshot_imported"` // weights come from the table exported with the proposal
	Script             Script         `json:"script"`
	Metadata           string         `json:"metadata"`
}

// ClosesAt is the first instant at which no more ballots are accepted.
func (p Proposal) ClosesAt(voteDuration time.Duration) time.Time {
	return p.OpenedAt.Add(voteDuration)
}

func (p Proposal) String() string {
	return fmt.Sprintf(`Proposal %d:
  Creator:            %s
  Opened At:          %s
  Snapshot Point:     %d
  Support Required:   %s
  Min Accept Quorum:  %s
  Total Voting Power: %d
  Yea:                %d
  Nay:                %d
  Executed:           %t
  Actions:            %d
  Metadata:           %s`,
		p.ID, p.Creator, p.OpenedAt.UTC().Format(time.RFC3339Nano), p.SnapshotPoint,
		FormatPct(p.SupportRequiredPct), FormatPct(p.MinAcceptQuorumPct),
		p.TotalVotingPower, p.Yea, p.Nay, p.Executed, len(p.Script), p.Metadata)
}

// ProposalStatus is a view derived from a proposal and the current time.
type ProposalStatus byte

const (
	StatusNil      ProposalStatus = 0x00
	StatusOpen     ProposalStatus = 0x01
	StatusDecided  ProposalStatus = 0x02
	StatusExecuted ProposalStatus = 0x03
	StatusRejected ProposalStatus = 0x04
)

// ProposalStatusFromString turns a string into a ProposalStatus
func ProposalStatusFromString(str string) (ProposalStatus, error) {
	switch str {
	case "Open":
		return StatusOpen, nil
	case "Decided":
		return StatusDecided, nil
	case "Executed":
		return StatusExecuted, nil
	case "Rejected":
		return StatusRejected, nil
	case "":
		return StatusNil, nil
	default:
		return ProposalStatus(0xff), fmt.Errorf("'%s' is not a valid proposal status", str)
	}
}

func (status ProposalStatus) String() string {
	switch status {
	case StatusOpen:
		return "Open"
	case StatusDecided:
		return "Decided"
	case StatusExecuted:
		return "Executed"
	case StatusRejected:
		return "Rejected"
	default:
		return ""
	}
}

func (status ProposalStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(status.String())
}

func (status *ProposalStatus) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	bz, err := ProposalStatusFromString(s)
	if err != nil {
		return err
	}
	*status = bz
	return nil
}
