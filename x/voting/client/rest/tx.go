package rest

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/bnb-chain/tokenvote/client/context"
	"github.com/bnb-chain/tokenvote/client/utils"
	"github.com/bnb-chain/tokenvote/codec"
	sdk "github.com/bnb-chain/tokenvote/types"
	"github.com/bnb-chain/tokenvote/x/voting"
	"github.com/bnb-chain/tokenvote/x/voting/client/cli"
)

func registerTxRoutes(cliCtx context.CLIContext, r *mux.Router, cdc *codec.Codec) {
	r.HandleFunc("/voting/config", postConfigureHandlerFn(cdc, cliCtx)).Methods("POST")
	r.HandleFunc("/voting/proposals", postNewVoteHandlerFn(cdc, cliCtx)).Methods("POST")
	r.HandleFunc("/voting/proposals/{proposalID}/votes", postVoteHandlerFn(cdc, cliCtx)).Methods("POST")
	r.HandleFunc("/voting/proposals/{proposalID}/execute", postExecuteHandlerFn(cdc, cliCtx)).Methods("POST")
	r.HandleFunc("/voting/quorum", postChangeQuorumHandlerFn(cdc, cliCtx)).Methods("POST")
	r.HandleFunc("/voting/support", postChangeSupportHandlerFn(cdc, cliCtx)).Methods("POST")
	r.HandleFunc("/voting/forward", postForwardHandlerFn(cdc, cliCtx)).Methods("POST")
}

type ConfigureReq struct {
	BaseReq      utils.BaseReq `json:"base_req"`
	Support      string        `json:"support"`       // "50%" or a scaled integer
	Quorum       string        `json:"quorum"`        // "20%" or a scaled integer
	VoteDuration string        `json:"vote_duration"` // e.g. "24h"
}

type NewVoteReq struct {
	BaseReq          utils.BaseReq   `json:"base_req"`
	Script           json.RawMessage `json:"script"`
	Metadata         string          `json:"metadata"`
	CastVote         bool            `json:"cast_vote"`
	ExecuteIfDecided bool            `json:"execute_if_decided"`
}

type VoteReq struct {
	BaseReq          utils.BaseReq `json:"base_req"`
	Supports         bool          `json:"supports"`
	ExecuteIfDecided bool          `json:"execute_if_decided"`
}

type ExecuteReq struct {
	BaseReq utils.BaseReq `json:"base_req"`
}

type ChangePctReq struct {
	BaseReq utils.BaseReq `json:"base_req"`
	Pct     string        `json:"pct"`
}

type ForwardReq struct {
	BaseReq utils.BaseReq   `json:"base_req"`
	Script  json.RawMessage `json:"script"`
}

func postConfigureHandlerFn(cdc *codec.Codec, cliCtx context.CLIContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ConfigureReq
		txCtx, ok := readTxReq(w, r, cliCtx, &req)
		if !ok {
			return
		}
		support, err := voting.ParsePct(req.Support)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		quorum, err := voting.ParsePct(req.Quorum)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		duration, err := time.ParseDuration(req.VoteDuration)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		from, ok := fromAddress(w, txCtx)
		if !ok {
			return
		}

		msg := voting.NewMsgConfigure(from, voting.NewGovernanceConfig(support, quorum, duration))
		utils.WriteTxResponse(w, r, txCtx, msg)
	}
}

func postNewVoteHandlerFn(cdc *codec.Codec, cliCtx context.CLIContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req NewVoteReq
		txCtx, ok := readTxReq(w, r, cliCtx, &req)
		if !ok {
			return
		}
		script, ok := parseScript(w, cdc, req.Script)
		if !ok {
			return
		}
		from, ok := fromAddress(w, txCtx)
		if !ok {
			return
		}

		msg := voting.NewMsgNewVote(from, script, req.Metadata, req.CastVote, req.ExecuteIfDecided)
		utils.WriteTxResponse(w, r, txCtx, msg)
	}
}

func postVoteHandlerFn(cdc *codec.Codec, cliCtx context.CLIContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		proposalID, ok := utils.ParseInt64OrReturnBadRequest(w, mux.Vars(r)[RestProposalID])
		if !ok {
			return
		}
		var req VoteReq
		txCtx, ok := readTxReq(w, r, cliCtx, &req)
		if !ok {
			return
		}
		from, ok := fromAddress(w, txCtx)
		if !ok {
			return
		}

		msg := voting.NewMsgVote(from, proposalID, req.Supports, req.ExecuteIfDecided)
		utils.WriteTxResponse(w, r, txCtx, msg)
	}
}

func postExecuteHandlerFn(cdc *codec.Codec, cliCtx context.CLIContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		proposalID, ok := utils.ParseInt64OrReturnBadRequest(w, mux.Vars(r)[RestProposalID])
		if !ok {
			return
		}
		var req ExecuteReq
		txCtx, ok := readTxReq(w, r, cliCtx, &req)
		if !ok {
			return
		}
		from, ok := fromAddress(w, txCtx)
		if !ok {
			return
		}

		utils.WriteTxResponse(w, r, txCtx, voting.NewMsgExecute(from, proposalID))
	}
}

func postChangeQuorumHandlerFn(cdc *codec.Codec, cliCtx context.CLIContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ChangePctReq
		txCtx, ok := readTxReq(w, r, cliCtx, &req)
		if !ok {
			return
		}
		pct, err := voting.ParsePct(req.Pct)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		from, ok := fromAddress(w, txCtx)
		if !ok {
			return
		}

		utils.WriteTxResponse(w, r, txCtx, voting.NewMsgChangeQuorum(from, pct))
	}
}

func postChangeSupportHandlerFn(cdc *codec.Codec, cliCtx context.CLIContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ChangePctReq
		txCtx, ok := readTxReq(w, r, cliCtx, &req)
		if !ok {
			return
		}
		pct, err := voting.ParsePct(req.Pct)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		from, ok := fromAddress(w, txCtx)
		if !ok {
			return
		}

		utils.WriteTxResponse(w, r, txCtx, voting.NewMsgChangeSupport(from, pct))
	}
}

func postForwardHandlerFn(cdc *codec.Codec, cliCtx context.CLIContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ForwardReq
		txCtx, ok := readTxReq(w, r, cliCtx, &req)
		if !ok {
			return
		}
		script, ok := parseScript(w, cdc, req.Script)
		if !ok {
			return
		}
		from, ok := fromAddress(w, txCtx)
		if !ok {
			return
		}

		utils.WriteTxResponse(w, r, txCtx, voting.NewMsgForward(from, script))
	}
}

type txReq interface {
	baseReq() utils.BaseReq
}

func (req *ConfigureReq) baseReq() utils.BaseReq { return req.BaseReq }
func (req *NewVoteReq) baseReq() utils.BaseReq   { return req.BaseReq }
func (req *VoteReq) baseReq() utils.BaseReq      { return req.BaseReq }
func (req *ExecuteReq) baseReq() utils.BaseReq   { return req.BaseReq }
func (req *ChangePctReq) baseReq() utils.BaseReq { return req.BaseReq }
func (req *ForwardReq) baseReq() utils.BaseReq   { return req.BaseReq }

// readTxReq decodes the body into req and returns cliCtx acting for the
// request's sender.
func readTxReq(w http.ResponseWriter, r *http.Request, cliCtx context.CLIContext, req txReq) (context.CLIContext, bool) {
	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return cliCtx, false
	}
	if err := json.Unmarshal(body, req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return cliCtx, false
	}
	baseReq := req.baseReq().Sanitize()
	if !baseReq.ValidateBasic(w) {
		return cliCtx, false
	}
	return cliCtx.WithFrom(baseReq.From), true
}

func fromAddress(w http.ResponseWriter, cliCtx context.CLIContext) (sdk.AccAddress, bool) {
	from, err := cliCtx.GetFromAddress()
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return from, true
}

func parseScript(w http.ResponseWriter, cdc *codec.Codec, raw json.RawMessage) (voting.Script, bool) {
	if len(raw) == 0 {
		return voting.Script{}, true
	}
	script, err := cli.ParseScript(cdc, raw)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return script, true
}
