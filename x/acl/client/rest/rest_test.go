package rest

import (
	"bytes"
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
)

func TestGrantAndRevoke(t *testing.T) {
	tvApp := app.NewTokenVoteApp(log.NewNopLogger(), dbm.NewMemDB())
	require.NoError(t, tvApp.LoadLatestVersion())
	genesis := app.NewDefaultGenesisState("test-chain", sdk.AccAddressFromName("admin"), 10)
	genesis.GenesisTime = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := tvApp.InitChain(genesis)
	require.NoError(t, err)

	cdc := tvApp.Codec()
	r := mux.NewRouter()
	RegisterRoutes(context.NewCLIContext().WithCodec(cdc).WithNode(context.StaticNode(tvApp)), r, cdc)
	do := func(method, path, body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(method, path, bytes.NewBufferString(body)))
		return w
	}

	w := do("GET", "/acl/capabilities/mint/holders/carol", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(t, "false", w.Body.String())

	w = do("POST", "/acl/grants", `{"base_req": {"from": "admin"}, "address": "carol", "capability": "mint"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do("GET", "/acl/capabilities/mint/holders/carol", "")
	require.Equal(t, "true", w.Body.String())
	w = do("GET", "/acl/capabilities/mint/holders", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), sdk.AccAddressFromName("carol").String())

	// carol cannot manage the acl
	w = do("POST", "/acl/revocations", `{"base_req": {"from": "carol"}, "address": "admin", "capability": "mint"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = do("POST", "/acl/revocations", `{"base_req": {"from": "admin"}, "address": "carol", "capability": "mint"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = do("GET", "/acl/capabilities/mint/holders/carol", "")
	require.Equal(t, "false", w.Body.String())

	w = do("POST", "/acl/grants", `{"base_req": {"from": "admin"}, "address": "carol", "capability": "fly"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	w = do("GET", "/acl/capabilities/fly/holders", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}
