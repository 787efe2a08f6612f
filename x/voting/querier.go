package voting

import (
	"fmt"

	abci "github.com/tendermint/tendermint/abci/types"

	"github.com/bnb-chain/tokenvote/codec"
	sdk "github.com/bnb-chain/tokenvote/types"
)

// query endpoints supported by the voting Querier
const (
	QueryConfig     = "config"
	QueryProposal   = "proposal"
	QueryProposals  = "proposals"
	QueryVoter      = "voter"
	QueryCanExecute = "can_execute"
	QueryCanVote    = "can_vote"
)

// Params for queries:
// - 'custom/voting/proposal'
// - 'custom/voting/can_execute'
type QueryProposalParams struct {
	ProposalID int64 `json:"proposal_id"`
}

// Params for query 'custom/voting/proposals'
type QueryProposalsParams struct {
	Status ProposalStatus `json:"status"`
	Limit  int64          `json:"limit"`
}

// Params for queries:
// - 'custom/voting/voter'
// - 'custom/voting/can_vote'
type QueryVoterParams struct {
	ProposalID int64          `json:"proposal_id"`
	Voter      sdk.AccAddress `json:"voter"`
}

// ProposalOutput is a proposal with its status at query time.
type ProposalOutput struct {
	Proposal Proposal       `json:"proposal"`
	Status   ProposalStatus `json:"status"`
}

// VoterOutput is the answer to 'custom/voting/voter'.
type VoterOutput struct {
	ProposalID int64          `json:"proposal_id"`
	Voter      sdk.AccAddress `json:"voter"`
	State      VoterState     `json:"state"`
	Weight     int64          `json:"weight"`
}

func NewQuerier(keeper Keeper) sdk.Querier {
	return func(ctx sdk.Context, path []string, req abci.RequestQuery) ([]byte, sdk.Error) {
		if len(path) == 0 {
			return nil, sdk.ErrUnknownRequest("empty voting query path")
		}
		switch path[0] {
		case QueryConfig:
			return queryConfig(ctx, keeper)
		case QueryProposal:
			return queryProposal(ctx, req, keeper)
		case QueryProposals:
			return queryProposals(ctx, req, keeper)
		case QueryVoter:
			return queryVoter(ctx, req, keeper)
		case QueryCanExecute:
			return queryCanExecute(ctx, req, keeper)
		case QueryCanVote:
			return queryCanVote(ctx, req, keeper)
		default:
			return nil, sdk.ErrUnknownRequest("unknown voting query endpoint")
		}
	}
}

func queryConfig(ctx sdk.Context, keeper Keeper) ([]byte, sdk.Error) {
	config, ok := keeper.GetConfig(ctx)
	if !ok {
		return nil, ErrNotConfigured(keeper.codespace)
	}
	return marshalResult(config)
}

func queryProposal(ctx sdk.Context, req abci.RequestQuery, keeper Keeper) ([]byte, sdk.Error) {
	var params QueryProposalParams
	if err := unmarshalParams(req, &params); err != nil {
		return nil, err
	}
	proposal, err := keeper.GetVote(ctx, params.ProposalID)
	if err != nil {
		return nil, err
	}
	return marshalResult(ProposalOutput{Proposal: proposal, Status: keeper.GetStatus(ctx, proposal)})
}

func queryProposals(ctx sdk.Context, req abci.RequestQuery, keeper Keeper) ([]byte, sdk.Error) {
	var params QueryProposalsParams
	if err := unmarshalParams(req, &params); err != nil {
		return nil, err
	}
	proposals := keeper.GetProposals(ctx, params.Status, int(params.Limit))
	outputs := make([]ProposalOutput, 0, len(proposals))
	for _, p := range proposals {
		outputs = append(outputs, ProposalOutput{Proposal: p, Status: keeper.GetStatus(ctx, p)})
	}
	return marshalResult(outputs)
}

func queryVoter(ctx sdk.Context, req abci.RequestQuery, keeper Keeper) ([]byte, sdk.Error) {
	var params QueryVoterParams
	if err := unmarshalParams(req, &params); err != nil {
		return nil, err
	}
	proposal, err := keeper.GetVote(ctx, params.ProposalID)
	if err != nil {
		return nil, err
	}
	return marshalResult(VoterOutput{
		ProposalID: params.ProposalID,
		Voter:      params.Voter,
		State:      keeper.GetVoterState(ctx, params.ProposalID, params.Voter),
		Weight:     keeper.SnapshotWeightOf(ctx, proposal, params.Voter),
	})
}

func queryCanExecute(ctx sdk.Context, req abci.RequestQuery, keeper Keeper) ([]byte, sdk.Error) {
	var params QueryProposalParams
	if err := unmarshalParams(req, &params); err != nil {
		return nil, err
	}
	return marshalResult(keeper.CanExecute(ctx, params.ProposalID))
}

func queryCanVote(ctx sdk.Context, req abci.RequestQuery, keeper Keeper) ([]byte, sdk.Error) {
	var params QueryVoterParams
	if err := unmarshalParams(req, &params); err != nil {
		return nil, err
	}
	return marshalResult(keeper.CanVote(ctx, params.ProposalID, params.Voter))
}

func unmarshalParams(req abci.RequestQuery, params interface{}) sdk.Error {
	if err := msgCdc.UnmarshalJSON(req.Data, params); err != nil {
		return sdk.ErrUnknownRequest(fmt.Sprintf("incorrectly formatted request data: %s", err.Error()))
	}
	return nil
}

func marshalResult(v interface{}) ([]byte, sdk.Error) {
	bz, err := codec.MarshalJSONIndent(msgCdc, v)
	if err != nil {
		return nil, sdk.ErrInternal(sdk.AppendMsgToErr("could not marshal result to JSON", err.Error()))
	}
	return bz, nil
}
