package voting

import (
	"fmt"

	sdk "github.com/bnb-chain/tokenvote/types"
)

// Ballot is one voter's recorded choice on a proposal, with the weight it
// was counted with.
type Ballot struct {
	ProposalID int64          `json:"proposal_id"`
	Voter      sdk.AccAddress `json:"voter"`
	State      VoterState     `json:"state"`
	Weight     int64          `json:"weight"`
}

// SnapshotWeight is one row of the weight table a proposal carries across
// an export, since the new chain has no history to read it from.
type SnapshotWeight struct {
	ProposalID int64          `json:"proposal_id"`
	Holder     sdk.AccAddress `json:"holder"`
	Weight     int64          `json:"weight"`
}

// GenesisState - all voting state that must be provided at genesis. A zero
// Config leaves the engine unconfigured.
type GenesisState struct {
	Config          GovernanceConfig `json:"config"`
	Proposals       []Proposal       `json:"proposals"`
	Ballots         []Ballot         `json:"ballots"`
	SnapshotWeights []SnapshotWeight `json:"snapshot_weights"`
}

func NewGenesisState(config GovernanceConfig) GenesisState {
	return GenesisState{
		Config:          config,
		Proposals:       []Proposal{},
		Ballots:         []Ballot{},
		SnapshotWeights: []SnapshotWeight{},
	}
}

func DefaultGenesisState() GenesisState {
	return NewGenesisState(DefaultGovernanceConfig())
}

func (data GenesisState) configured() bool {
	return data.Config != GovernanceConfig{}
}

// ValidateGenesis checks the voting section on its own. Proposals that are
// not executed yet may still take ballots, so they must carry their weight
// table, and their tallies must be the sum of their ballots.
func ValidateGenesis(data GenesisState) error {
	if data.configured() {
		if err := data.Config.Validate(); err != nil {
			return fmt.Errorf("invalid voting config: %s", err.ABCILog())
		}
	} else if len(data.Proposals) > 0 {
		return fmt.Errorf("proposals exist but voting is not configured")
	}
	proposals := make(map[int64]Proposal, len(data.Proposals))
	for _, p := range data.Proposals {
		if p.ID <= 0 {
			return fmt.Errorf("invalid proposal id %d", p.ID)
		}
		if _, ok := proposals[p.ID]; ok {
			return fmt.Errorf("duplicate proposal id %d", p.ID)
		}
		proposals[p.ID] = p
		if p.Yea < 0 || p.Nay < 0 || p.Yea > p.TotalVotingPower-p.Nay {
			return fmt.Errorf("proposal %d tallies exceed its voting power", p.ID)
		}
		if err := p.Script.ValidateBasic(); err != nil {
			return fmt.Errorf("proposal %d: %s", p.ID, err.ABCILog())
		}
		if !p.Executed && !p.SnapshotImported {
			return fmt.Errorf("proposal %d is not executed but has no snapshot weights", p.ID)
		}
	}

	weights := make(map[int64]map[string]int64)
	sums := make(map[int64]int64)
	for _, w := range data.SnapshotWeights {
		p, ok := proposals[w.ProposalID]
		if !ok || p.Executed {
			return fmt.Errorf("snapshot weight for unknown or executed proposal %d", w.ProposalID)
		}
		if w.Holder.Empty() || w.Weight <= 0 {
			return fmt.Errorf("invalid snapshot weight on proposal %d", w.ProposalID)
		}
		if weights[w.ProposalID] == nil {
			weights[w.ProposalID] = make(map[string]int64)
		}
		if _, ok := weights[w.ProposalID][w.Holder.String()]; ok {
			return fmt.Errorf("duplicate snapshot weight of %s on proposal %d", w.Holder, w.ProposalID)
		}
		weights[w.ProposalID][w.Holder.String()] = w.Weight
		sum, ok := sdk.Add64(sums[w.ProposalID], w.Weight)
		if !ok {
			return fmt.Errorf("snapshot weights of proposal %d overflow", w.ProposalID)
		}
		sums[w.ProposalID] = sum
	}

	voted := make(map[int64]map[string]bool)
	yea := make(map[int64]int64)
	nay := make(map[int64]int64)
	for _, b := range data.Ballots {
		p, ok := proposals[b.ProposalID]
		if !ok {
			return fmt.Errorf("ballot for unknown proposal %d", b.ProposalID)
		}
		if b.Voter.Empty() || b.State == VoterStateAbsent || b.Weight <= 0 {
			return fmt.Errorf("invalid ballot on proposal %d", b.ProposalID)
		}
		if voted[b.ProposalID] == nil {
			voted[b.ProposalID] = make(map[string]bool)
		}
		if voted[b.ProposalID][b.Voter.String()] {
			return fmt.Errorf("duplicate ballot of %s on proposal %d", b.Voter, b.ProposalID)
		}
		voted[b.ProposalID][b.Voter.String()] = true
		if p.Executed {
			continue
		}
		if weights[b.ProposalID][b.Voter.String()] != b.Weight {
			return fmt.Errorf("ballot of %s on proposal %d does not match its snapshot weight", b.Voter, b.ProposalID)
		}
		// weights of one proposal sum to its voting power, so these cannot overflow
		if b.State == VoterStateYea {
			yea[b.ProposalID] += b.Weight
		} else {
			nay[b.ProposalID] += b.Weight
		}
	}

	for _, p := range data.Proposals {
		if p.Executed {
			continue
		}
		if sums[p.ID] != p.TotalVotingPower {
			return fmt.Errorf("snapshot weights of proposal %d sum to %d, not its voting power %d",
				p.ID, sums[p.ID], p.TotalVotingPower)
		}
		if yea[p.ID] != p.Yea || nay[p.ID] != p.Nay {
			return fmt.Errorf("ballots of proposal %d do not add up to its tallies", p.ID)
		}
	}
	return nil
}

// InitGenesis - store genesis config, proposals and their weight tables
func InitGenesis(ctx sdk.Context, k Keeper, data GenesisState) {
	if data.configured() {
		if err := k.configure(ctx, data.Config); err != nil {
			panic(err)
		}
	}
	var lastID int64
	for _, p := range data.Proposals {
		k.setProposal(ctx, p)
		if p.ID > lastID {
			lastID = p.ID
		}
	}
	for _, w := range data.SnapshotWeights {
		k.setSnapshotWeight(ctx, w.ProposalID, w.Holder, w.Weight)
	}
	for _, b := range data.Ballots {
		k.setBallot(ctx, b)
	}
	ctx.KVStore(k.storeKey).Set(NextProposalIDKey, sdk.Int64ToBigEndian(lastID+1))
}

// ExportGenesis - output the whole voting state. Proposals that are not
// executed are exported with the weight table of their snapshot, so they
// keep counting the same holders once imported.
func ExportGenesis(ctx sdk.Context, k Keeper) GenesisState {
	config, _ := k.GetConfig(ctx)
	data := NewGenesisState(config)
	k.IterateProposals(ctx, func(p Proposal) bool {
		if !p.Executed {
			k.IterateSnapshotWeights(ctx, p, func(holder sdk.AccAddress, weight int64) bool {
				data.SnapshotWeights = append(data.SnapshotWeights,
					SnapshotWeight{ProposalID: p.ID, Holder: holder, Weight: weight})
				return false
			})
			p.SnapshotImported = true
		}
		data.Proposals = append(data.Proposals, p)
		k.IterateBallots(ctx, p.ID, func(b Ballot) bool {
			data.Ballots = append(data.Ballots, b)
			return false
		})
		return false
	})
	return data
}
