package rest

import (
	"fmt"

	"github.com/gorilla/mux"

	"github.com/bnb-chain/tokenvote/client/context"
	"github.com/bnb-chain/tokenvote/codec"
	"github.com/bnb-chain/tokenvote/x/voting"
)

// REST Variable names
const (
	RestProposalID = "proposalID"
	RestVoter      = "voter"
	RestStatus     = "status"
	RestLimit      = "limit"
)

// RegisterRoutes registers voting-related REST handlers to a router
func RegisterRoutes(cliCtx context.CLIContext, r *mux.Router, cdc *codec.Codec) {
	registerQueryRoutes(cliCtx, r, cdc)
	registerTxRoutes(cliCtx, r, cdc)
}

func customPath(endpoint string) string {
	return fmt.Sprintf("custom/%s/%s", voting.QuerierRoute, endpoint)
}
