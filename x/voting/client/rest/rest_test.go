package rest

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	dbm "github.com/tendermint/tendermint/libs/db"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/bnb-chain/tokenvote/app"
	"github.com/bnb-chain/tokenvote/client/context"
	sdk "github.com/bnb-chain/tokenvote/types"
	"github.com/bnb-chain/tokenvote/x/token"
)

var (
	admin   = sdk.AccAddressFromName("admin")
	holderB = sdk.AccAddressFromName("holderB")
	outside = sdk.AccAddressFromName("outside")
)

func setupRouter(t *testing.T) (*mux.Router, *app.TokenVoteApp) {
	tvApp := app.NewTokenVoteApp(log.NewNopLogger(), dbm.NewMemDB())
	require.NoError(t, tvApp.LoadLatestVersion())

	genesis := app.NewDefaultGenesisState("test-chain", admin, 19)
	genesis.GenesisTime = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	genesis.Token.Balances = append(genesis.Token.Balances, token.Balance{Address: holderB, Amount: 81})
	_, err := tvApp.InitChain(genesis)
	require.NoError(t, err)

	cdc := tvApp.Codec()
	cliCtx := context.NewCLIContext().
		WithCodec(cdc).
		WithNode(context.StaticNode(tvApp))
	r := mux.NewRouter()
	RegisterRoutes(cliCtx, r, cdc)
	return r, tvApp
}

func do(r *mux.Router, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestQueryConfig(t *testing.T) {
	r, _ := setupRouter(t)

	w := do(r, "GET", "/voting/config", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"support_required_pct": "500000000000000000"`)
}

func TestProposalFlow(t *testing.T) {
	r, tvApp := setupRouter(t)

	body := fmt.Sprintf(`{
		"base_req": {"from": "admin"},
		"script": {"actions": [{"target": "token", "action": {"type": "tokenvote/token/MintAction", "value": {"to": "%s", "amount": "7"}}}]},
		"metadata": "mint to outside",
		"cast_vote": true,
		"execute_if_decided": true
	}`, outside)
	w := do(r, "POST", "/voting/proposals", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Contains(t, w.Body.String(), `"data":"1"`)

	w = do(r, "GET", "/voting/proposals/1", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Contains(t, w.Body.String(), `"status": "Open"`)

	w = do(r, "GET", fmt.Sprintf("/voting/proposals/1/voters/%s/can_vote", holderB), "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(t, "true", w.Body.String())

	w = do(r, "POST", "/voting/proposals/1/votes", `{"base_req": {"from": "holderB"}, "supports": true, "execute_if_decided": true}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(r, "GET", "/voting/proposals/1/can_execute", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(t, "false", w.Body.String())

	w = do(r, "GET", "/voting/proposals?status=Executed", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Contains(t, w.Body.String(), `"metadata": "mint to outside"`)

	require.Equal(t, int64(3), tvApp.LastBlockHeight())
}

func TestTxErrors(t *testing.T) {
	r, tvApp := setupRouter(t)

	// no sender
	w := do(r, "POST", "/voting/quorum", `{"base_req": {"from": " "}, "pct": "10%"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, "POST", "/voting/quorum", `{"base_req": {"from": "admin"}, "pct": "ten"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// outside holds no capability, the msg is rejected but the block commits
	w = do(r, "POST", "/voting/quorum", `{"base_req": {"from": "outside"}, "pct": "10%"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, int64(2), tvApp.LastBlockHeight())

	w = do(r, "POST", "/voting/quorum?dry_run=true", `{"base_req": {"from": "admin"}, "pct": "10%"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "tokenvote/voting/MsgChangeQuorum")
	require.Equal(t, int64(2), tvApp.LastBlockHeight())

	w = do(r, "POST", "/voting/proposals/x/execute", `{"base_req": {"from": "admin"}}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQueryErrors(t *testing.T) {
	r, _ := setupRouter(t)

	w := do(r, "GET", "/voting/proposals/9", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, "GET", "/voting/proposals?status=Pending", "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, "GET", "/voting/proposals?limit=many", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}
