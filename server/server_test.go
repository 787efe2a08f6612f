package server

import (
	"fmt"
	"io/ioutil"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	dbm "github.com/tendermint/tendermint/libs/db"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/bnb-chain/tokenvote/app"
	clientctx "github.com/bnb-chain/tokenvote/client/context"
	sdk "github.com/bnb-chain/tokenvote/types"
)

func get(t *testing.T, url string) (int, string) {
	res, err := http.Get(url)
	require.NoError(t, err)
	defer res.Body.Close()
	bz, err := ioutil.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, string(bz)
}

func TestRestServer(t *testing.T) {
	tvApp := app.NewTokenVoteApp(log.NewNopLogger(), dbm.NewMemDB())
	require.NoError(t, tvApp.LoadLatestVersion())
	genesis := app.NewDefaultGenesisState("test-chain", sdk.AccAddressFromName("admin"), 10)
	genesis.GenesisTime = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := tvApp.InitChain(genesis)
	require.NoError(t, err)

	cdc := tvApp.Codec()
	cliCtx := clientctx.NewCLIContext().WithCodec(cdc).WithNode(clientctx.StaticNode(tvApp))
	rs := NewRestServer(cliCtx, cdc, "tcp://127.0.0.1:0", true, log.NewNopLogger())
	require.NoError(t, rs.Start())
	defer rs.Stop()

	base := fmt.Sprintf("http://%s", rs.Addr())

	code, body := get(t, base+"/token/supply")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, `"10"`, body)

	code, body = get(t, base+"/version")
	require.Equal(t, http.StatusOK, code)
	require.Contains(t, body, Version)

	code, body = get(t, base+"/metrics")
	require.Equal(t, http.StatusOK, code)
	require.Contains(t, body, "go_goroutines")

	code, _ = get(t, base+"/nothing")
	require.Equal(t, http.StatusNotFound, code)
}

func TestRestServerWithoutMetrics(t *testing.T) {
	cdc := app.MakeCodec()
	rs := NewRestServer(clientctx.NewCLIContext().WithCodec(cdc), cdc, "tcp://127.0.0.1:0", false, log.NewNopLogger())
	require.NoError(t, rs.Start())
	defer rs.Stop()

	code, _ := get(t, fmt.Sprintf("http://%s/metrics", rs.Addr()))
	require.Equal(t, http.StatusNotFound, code)

	// no node behind the context
	code, _ = get(t, fmt.Sprintf("http://%s/voting/config", rs.Addr()))
	require.Equal(t, http.StatusNotFound, code)
}

func TestRestServerBadAddr(t *testing.T) {
	cdc := app.MakeCodec()
	rs := NewRestServer(clientctx.NewCLIContext().WithCodec(cdc), cdc, "tcp://256.0.0.1:1", false, log.NewNopLogger())
	require.Error(t, rs.Start())
}
