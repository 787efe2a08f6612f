package main

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/bnb-chain/tokenvote/app"
	"github.com/bnb-chain/tokenvote/config"
	sdk "github.com/bnb-chain/tokenvote/types"
	"github.com/bnb-chain/tokenvote/x/token"
)

func run(t *testing.T, home string, args ...string) (string, error) {
	cmd := NewRootCmd(app.MakeCodec())
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetArgs(append(args, "--home", home))
	err := cmd.Execute()
	return out.String(), err
}

func balance(t *testing.T, home string, name string) string {
	cfg, err := config.LoadConfig(home)
	require.NoError(t, err)
	tvApp, db, err := openApp(cfg, log.NewNopLogger())
	require.NoError(t, err)
	defer db.Close()

	data := tvApp.Codec().MustMarshalJSON(token.QueryBalanceParams{Address: sdk.AccAddressFromName(name)})
	res := tvApp.Query(abci.RequestQuery{Path: "custom/token/balance", Data: data})
	require.True(t, sdk.CodeType(res.Code).IsOK(), res.Log)
	return strings.TrimSpace(string(res.Value))
}

func TestInitTxAndExport(t *testing.T) {
	home, err := ioutil.TempDir("", "tvd")
	require.NoError(t, err)
	defer os.RemoveAll(home)

	_, err = run(t, home, "init", "--chain-id", "test-chain", "--admin", "admin", "--supply", "100")
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(home, "config", "config.toml"))
	require.FileExists(t, filepath.Join(home, "config", "genesis.json"))

	// a second init needs --overwrite
	_, err = run(t, home, "init")
	require.Error(t, err)

	_, err = run(t, home, "tx", "token", "transfer", "bob", "30", "--from", "admin", "--yes")
	require.NoError(t, err)
	require.Equal(t, `"70"`, balance(t, home, "admin"))
	require.Equal(t, `"30"`, balance(t, home, "bob"))

	// rejected msgs fail the command but still commit an empty block
	_, err = run(t, home, "tx", "token", "transfer", "admin", "31", "--from", "bob", "--yes")
	require.Error(t, err)

	scriptPath := filepath.Join(home, "script.json")
	require.NoError(t, ioutil.WriteFile(scriptPath, []byte(fmt.Sprintf(
		`{"actions": [{"target": "token", "action": {"type": "tokenvote/token/MintAction", "value": {"to": "%s", "amount": "5"}}}]}`,
		sdk.AccAddressFromName("carol"))), 0644))
	// admin's 70 of 100 decides the proposal at once
	_, err = run(t, home, "tx", "voting", "new-vote", "--script", scriptPath, "--metadata", "mint", "--from", "admin", "--yes")
	require.NoError(t, err)
	require.Equal(t, `"5"`, balance(t, home, "carol"))

	out, err := run(t, home, "export")
	require.NoError(t, err)
	var genesis app.GenesisState
	require.NoError(t, app.MakeCodec().UnmarshalJSON([]byte(out), &genesis))
	require.Equal(t, "test-chain", genesis.ChainID)
	require.Len(t, genesis.Voting.Proposals, 1)
	require.True(t, genesis.Voting.Proposals[0].Executed)

	_, err = run(t, home, "init", "--overwrite", "--supply", "7")
	require.NoError(t, err)
	require.Equal(t, `"7"`, balance(t, home, "admin"))
}

func TestTxWithoutInit(t *testing.T) {
	home, err := ioutil.TempDir("", "tvd")
	require.NoError(t, err)
	defer os.RemoveAll(home)

	_, err = run(t, home, "tx", "token", "transfer", "bob", "1", "--from", "admin", "--yes")
	require.Error(t, err)
}
