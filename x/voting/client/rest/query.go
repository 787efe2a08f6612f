package rest

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/bnb-chain/tokenvote/client/context"
	"github.com/bnb-chain/tokenvote/client/utils"
	"github.com/bnb-chain/tokenvote/codec"
	"github.com/bnb-chain/tokenvote/x/voting"
)

func registerQueryRoutes(cliCtx context.CLIContext, r *mux.Router, cdc *codec.Codec) {
	r.HandleFunc("/voting/config", queryConfigHandlerFn(cliCtx)).Methods("GET")
	r.HandleFunc("/voting/proposals", queryProposalsHandlerFn(cliCtx)).Methods("GET")
	r.HandleFunc("/voting/proposals/{proposalID}", queryProposalHandlerFn(cliCtx, voting.QueryProposal)).Methods("GET")
	r.HandleFunc("/voting/proposals/{proposalID}/can_execute", queryProposalHandlerFn(cliCtx, voting.QueryCanExecute)).Methods("GET")
	r.HandleFunc("/voting/proposals/{proposalID}/voters/{voter}", queryVoterHandlerFn(cliCtx, voting.QueryVoter)).Methods("GET")
	r.HandleFunc("/voting/proposals/{proposalID}/voters/{voter}/can_vote", queryVoterHandlerFn(cliCtx, voting.QueryCanVote)).Methods("GET")
}

func queryConfigHandlerFn(cliCtx context.CLIContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.WriteQueryResponse(w, cliCtx, customPath(voting.QueryConfig), nil)
	}
}

func queryProposalsHandlerFn(cliCtx context.CLIContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params voting.QueryProposalsParams
		if s := r.URL.Query().Get(RestStatus); s != "" {
			status, err := voting.ProposalStatusFromString(s)
			if err != nil {
				utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
				return
			}
			params.Status = status
		}
		limit, ok := utils.ParseQueryInt64(w, r, RestLimit, 0)
		if !ok {
			return
		}
		params.Limit = limit

		utils.WriteQueryResponse(w, cliCtx, customPath(voting.QueryProposals), params)
	}
}

func queryProposalHandlerFn(cliCtx context.CLIContext, endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		proposalID, ok := utils.ParseInt64OrReturnBadRequest(w, mux.Vars(r)[RestProposalID])
		if !ok {
			return
		}
		params := voting.QueryProposalParams{ProposalID: proposalID}
		utils.WriteQueryResponse(w, cliCtx, customPath(endpoint), params)
	}
}

func queryVoterHandlerFn(cliCtx context.CLIContext, endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		proposalID, ok := utils.ParseInt64OrReturnBadRequest(w, vars[RestProposalID])
		if !ok {
			return
		}
		voter, err := context.ParseAddress(vars[RestVoter])
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		params := voting.QueryVoterParams{ProposalID: proposalID, Voter: voter}
		utils.WriteQueryResponse(w, cliCtx, customPath(endpoint), params)
	}
}
