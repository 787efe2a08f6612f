package rest

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/bnb-chain/tokenvote/client/context"
	"github.com/bnb-chain/tokenvote/client/utils"
	"github.com/bnb-chain/tokenvote/codec"
	"github.com/bnb-chain/tokenvote/x/token"
)

// RegisterRoutes registers token-related REST handlers to a router
func RegisterRoutes(cliCtx context.CLIContext, r *mux.Router, cdc *codec.Codec) {
	r.HandleFunc("/token/supply", supplyHandlerFn(cliCtx)).Methods("GET")
	r.HandleFunc("/token/balances/{address}", balanceHandlerFn(cliCtx)).Methods("GET")
	r.HandleFunc("/token/weights/{height}", weightAtHandlerFn(cliCtx)).Methods("GET")

	r.HandleFunc("/token/mint", mintHandlerFn(cdc, cliCtx)).Methods("POST")
	r.HandleFunc("/token/transfers", transferHandlerFn(cdc, cliCtx)).Methods("POST")
}

// AmountReq is the body of both mint and transfer requests.
type AmountReq struct {
	BaseReq utils.BaseReq `json:"base_req"`
	To      string        `json:"to"`
	Amount  int64         `json:"amount"`
}

func supplyHandlerFn(cliCtx context.CLIContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.WriteQueryResponse(w, cliCtx, customPath(token.QuerySupply), nil)
	}
}

func balanceHandlerFn(cliCtx context.CLIContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		addr, err := context.ParseAddress(mux.Vars(r)["address"])
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		params := token.QueryBalanceParams{Address: addr}
		utils.WriteQueryResponse(w, cliCtx, customPath(token.QueryBalance), params)
	}
}

// weightAtHandlerFn serves /token/weights/{height}?address=..., the total
// weight when no address is given.
func weightAtHandlerFn(cliCtx context.CLIContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		point, ok := utils.ParseInt64OrReturnBadRequest(w, mux.Vars(r)["height"])
		if !ok {
			return
		}
		params := token.QueryWeightAtParams{Point: point}
		if s := r.URL.Query().Get("address"); s != "" {
			addr, err := context.ParseAddress(s)
			if err != nil {
				utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
				return
			}
			params.Address = addr
		}
		utils.WriteQueryResponse(w, cliCtx, customPath(token.QueryWeightAt), params)
	}
}

func mintHandlerFn(cdc *codec.Codec, cliCtx context.CLIContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AmountReq
		if !utils.ReadRESTReq(w, r, cdc, &req) {
			return
		}
		baseReq := req.BaseReq.Sanitize()
		if !baseReq.ValidateBasic(w) {
			return
		}
		txCtx := cliCtx.WithFrom(baseReq.From)
		from, err := txCtx.GetFromAddress()
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		to, err := context.ParseAddress(req.To)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}

		utils.WriteTxResponse(w, r, txCtx, token.NewMsgMint(from, to, req.Amount))
	}
}

func transferHandlerFn(cdc *codec.Codec, cliCtx context.CLIContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AmountReq
		if !utils.ReadRESTReq(w, r, cdc, &req) {
			return
		}
		baseReq := req.BaseReq.Sanitize()
		if !baseReq.ValidateBasic(w) {
			return
		}
		txCtx := cliCtx.WithFrom(baseReq.From)
		from, err := txCtx.GetFromAddress()
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		to, err := context.ParseAddress(req.To)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}

		utils.WriteTxResponse(w, r, txCtx, token.NewMsgTransfer(from, to, req.Amount))
	}
}

func customPath(endpoint string) string {
	return fmt.Sprintf("custom/%s/%s", token.QuerierRoute, endpoint)
}
