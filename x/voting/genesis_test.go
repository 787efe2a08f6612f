package voting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenesisExportImport(t *testing.T) {
	input := createPopulation(t)
	keeper := input.Keeper

	id, err := keeper.NewVote(input.Ctx, Addrs[0], Script{RecordSet("a")}, "first", true, false)
	require.NoError(t, err)
	require.NoError(t, keeper.Vote(input.Ctx, id, Addrs[1], false, false))
	_, err = keeper.NewVote(input.Ctx, Addrs[1], nil, "second", false, false)
	require.NoError(t, err)

	exported := ExportGenesis(input.Ctx, keeper)
	require.NoError(t, ValidateGenesis(exported))
	require.Len(t, exported.Proposals, 2)
	require.Len(t, exported.Ballots, 2)
	require.Len(t, exported.SnapshotWeights, 6)
	require.Equal(t, testConfig(), exported.Config)

	fresh := CreateTestInput(t, GovernanceConfig{}, 19, 31, 50)
	InitGenesis(fresh.Ctx, fresh.Keeper, exported)

	config, ok := fresh.Keeper.GetConfig(fresh.Ctx)
	require.True(t, ok)
	require.Equal(t, testConfig(), config)
	require.EqualValues(t, 2, fresh.Keeper.LastProposalID(fresh.Ctx))
	require.Equal(t, VoterStateNay, fresh.Keeper.GetVoterState(fresh.Ctx, id, Addrs[1]))
	proposal, err := fresh.Keeper.GetVote(fresh.Ctx, id)
	require.NoError(t, err)
	require.Equal(t, "first", proposal.Metadata)

	// ids continue after the imported ones
	next, err := fresh.Keeper.NewVote(fresh.Ctx, Addrs[0], nil, "", false, false)
	require.NoError(t, err)
	require.EqualValues(t, 3, next)
}

func TestExportedProposalKeepsItsSnapshot(t *testing.T) {
	input := createPopulation(t)
	keeper := input.Keeper

	id, err := keeper.NewVote(input.Ctx, Addrs[0], nil, "", false, false)
	require.NoError(t, err)
	require.NoError(t, keeper.Vote(input.Ctx, id, Addrs[1], false, false))

	// the largest holder leaves after the snapshot
	require.NoError(t, input.TokenKeeper.Transfer(input.Ctx, Addrs[2], Addrs[3], 50))
	input.NextBlock(time.Minute)
	err = keeper.Vote(input.Ctx, id, Addrs[3], true, false)
	require.Equal(t, CodeZeroWeight, err.Code())

	exported := ExportGenesis(input.Ctx, keeper)
	require.NoError(t, ValidateGenesis(exported))
	require.True(t, exported.Proposals[0].SnapshotImported)
	require.Equal(t, []Ballot{{ProposalID: id, Voter: Addrs[1], State: VoterStateNay, Weight: 31}}, exported.Ballots)
	weights := make(map[string]int64)
	for _, w := range exported.SnapshotWeights {
		weights[w.Holder.String()] = w.Weight
	}
	require.Equal(t, map[string]int64{
		Addrs[0].String(): 19,
		Addrs[1].String(): 31,
		Addrs[2].String(): 50,
	}, weights)

	// the new chain starts from today's balances, its history knows nothing
	// of the old snapshot
	fresh := CreateTestInput(t, GovernanceConfig{})
	require.NoError(t, fresh.TokenKeeper.Mint(fresh.Ctx, Addrs[0], 19))
	require.NoError(t, fresh.TokenKeeper.Mint(fresh.Ctx, Addrs[1], 31))
	require.NoError(t, fresh.TokenKeeper.Mint(fresh.Ctx, Addrs[3], 50))
	InitGenesis(fresh.Ctx, fresh.Keeper, exported)
	fresh.NextBlock(time.Second)

	err = fresh.Keeper.Vote(fresh.Ctx, id, Addrs[3], true, false)
	require.Equal(t, CodeZeroWeight, err.Code())
	require.False(t, fresh.Keeper.CanVote(fresh.Ctx, id, Addrs[3]))

	require.True(t, fresh.Keeper.CanVote(fresh.Ctx, id, Addrs[2]))
	require.NoError(t, fresh.Keeper.Vote(fresh.Ctx, id, Addrs[2], true, false))
	proposal, err := fresh.Keeper.GetVote(fresh.Ctx, id)
	require.NoError(t, err)
	require.EqualValues(t, 50, proposal.Yea)
	require.EqualValues(t, 31, proposal.Nay)

	// the imported ballot is replaced with the weight it was counted with
	require.NoError(t, fresh.Keeper.Vote(fresh.Ctx, id, Addrs[1], true, false))
	proposal, _ = fresh.Keeper.GetVote(fresh.Ctx, id)
	require.EqualValues(t, 81, proposal.Yea)
	require.EqualValues(t, 0, proposal.Nay)

	// a second export carries the same table
	again := ExportGenesis(fresh.Ctx, fresh.Keeper)
	require.NoError(t, ValidateGenesis(again))
	require.Equal(t, exported.SnapshotWeights, again.SnapshotWeights)
}

func TestValidateGenesis(t *testing.T) {
	require.NoError(t, ValidateGenesis(DefaultGenesisState()))
	require.NoError(t, ValidateGenesis(GenesisState{}))

	bad := DefaultGenesisState()
	bad.Config.MinAcceptQuorumPct = 0
	require.Error(t, ValidateGenesis(bad))

	unconfigured := GenesisState{Proposals: []Proposal{{ID: 1, TotalVotingPower: 1}}}
	require.Error(t, ValidateGenesis(unconfigured))

	dup := DefaultGenesisState()
	dup.Proposals = []Proposal{{ID: 1, TotalVotingPower: 1}, {ID: 1, TotalVotingPower: 1}}
	require.Error(t, ValidateGenesis(dup))

	overTally := DefaultGenesisState()
	overTally.Proposals = []Proposal{{ID: 1, TotalVotingPower: 10, Yea: 6, Nay: 5}}
	require.Error(t, ValidateGenesis(overTally))

	orphan := DefaultGenesisState()
	orphan.Ballots = []Ballot{{ProposalID: 7, Voter: Addrs[0], State: VoterStateYea, Weight: 1}}
	require.Error(t, ValidateGenesis(orphan))

	noSnapshot := DefaultGenesisState()
	noSnapshot.Proposals = []Proposal{{ID: 1, TotalVotingPower: 10}}
	require.Error(t, ValidateGenesis(noSnapshot))

	executed := DefaultGenesisState()
	executed.Proposals = []Proposal{{ID: 1, TotalVotingPower: 10, Yea: 6, Executed: true}}
	executed.Ballots = []Ballot{{ProposalID: 1, Voter: Addrs[0], State: VoterStateYea, Weight: 6}}
	require.NoError(t, ValidateGenesis(executed))

	imported := func() GenesisState {
		data := DefaultGenesisState()
		data.Proposals = []Proposal{{ID: 1, TotalVotingPower: 10, Yea: 4, SnapshotImported: true}}
		data.SnapshotWeights = []SnapshotWeight{
			{ProposalID: 1, Holder: Addrs[0], Weight: 4},
			{ProposalID: 1, Holder: Addrs[1], Weight: 6},
		}
		data.Ballots = []Ballot{{ProposalID: 1, Voter: Addrs[0], State: VoterStateYea, Weight: 4}}
		return data
	}
	require.NoError(t, ValidateGenesis(imported()))

	cases := map[string]func(data *GenesisState){
		"weights short of voting power": func(data *GenesisState) { data.SnapshotWeights[1].Weight = 5 },
		"duplicate holder":              func(data *GenesisState) { data.SnapshotWeights[1].Holder = Addrs[0] },
		"non-positive weight":           func(data *GenesisState) { data.SnapshotWeights[0].Weight = 0 },
		"weights of executed proposal":  func(data *GenesisState) { data.Proposals[0].Executed = true },
		"weights of unknown proposal":   func(data *GenesisState) { data.SnapshotWeights[1].ProposalID = 2 },
		"ballot heavier than snapshot":  func(data *GenesisState) { data.Ballots[0].Weight = 6 },
		"tally without ballots":         func(data *GenesisState) { data.Proposals[0].Yea = 0 },
		"duplicate ballot":              func(data *GenesisState) { data.Ballots = append(data.Ballots, data.Ballots[0]) },
		"voter without weight":          func(data *GenesisState) { data.Ballots[0].Voter = Addrs[2] },
	}
	for name, corrupt := range cases {
		data := imported()
		corrupt(&data)
		require.Error(t, ValidateGenesis(data), name)
	}
}
