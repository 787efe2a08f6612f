package rest

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/bnb-chain/tokenvote/client/context"
	"github.com/bnb-chain/tokenvote/client/utils"
	"github.com/bnb-chain/tokenvote/codec"
	sdk "github.com/bnb-chain/tokenvote/types"
	"github.com/bnb-chain/tokenvote/x/acl"
)

// RegisterRoutes registers acl-related REST handlers to a router
func RegisterRoutes(cliCtx context.CLIContext, r *mux.Router, cdc *codec.Codec) {
	r.HandleFunc("/acl/capabilities/{capability}/holders", holdersHandlerFn(cliCtx)).Methods("GET")
	r.HandleFunc("/acl/capabilities/{capability}/holders/{address}", hasHandlerFn(cliCtx)).Methods("GET")

	r.HandleFunc("/acl/grants", grantChangeHandlerFn(cdc, cliCtx, grant)).Methods("POST")
	r.HandleFunc("/acl/revocations", grantChangeHandlerFn(cdc, cliCtx, revoke)).Methods("POST")
}

// GrantReq is the body of grant and revoke requests.
type GrantReq struct {
	BaseReq    utils.BaseReq `json:"base_req"`
	Address    string        `json:"address"`
	Capability string        `json:"capability"`
}

func grant(from, addr sdk.AccAddress, capability acl.Capability) sdk.Msg {
	return acl.NewMsgGrant(from, addr, capability)
}

func revoke(from, addr sdk.AccAddress, capability acl.Capability) sdk.Msg {
	return acl.NewMsgRevoke(from, addr, capability)
}

func holdersHandlerFn(cliCtx context.CLIContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		capability, err := acl.CapabilityFromString(mux.Vars(r)["capability"])
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		params := acl.QueryHoldersParams{Capability: capability}
		utils.WriteQueryResponse(w, cliCtx, customPath(acl.QueryHolders), params)
	}
}

func hasHandlerFn(cliCtx context.CLIContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		capability, err := acl.CapabilityFromString(vars["capability"])
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		addr, err := context.ParseAddress(vars["address"])
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		params := acl.QueryHasCapabilityParams{Address: addr, Capability: capability}
		utils.WriteQueryResponse(w, cliCtx, customPath(acl.QueryHasCapability), params)
	}
}

func grantChangeHandlerFn(cdc *codec.Codec, cliCtx context.CLIContext,
	newMsg func(from, addr sdk.AccAddress, capability acl.Capability) sdk.Msg) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GrantReq
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
		addr, err := context.ParseAddress(req.Address)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		capability, err := acl.CapabilityFromString(req.Capability)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}

		utils.WriteTxResponse(w, r, txCtx, newMsg(from, addr, capability))
	}
}

func customPath(endpoint string) string {
	return fmt.Sprintf("custom/%s/%s", acl.QuerierRoute, endpoint)
}
